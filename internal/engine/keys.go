package engine

import (
	"fmt"

	"github.com/evanschultz/kanmouse/internal/domain"
)

// Key is a keyboard action routed into the board.
type Key int

// Keyboard actions.
const (
	KeyUp Key = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeyShiftEnter
)

// HandleKey applies a keyboard action. Column switches keep the selection's
// vertical index; enter moves the selected card one column forward, shift+enter
// one column back.
func (e *Engine) HandleKey(k Key) error {
	b := e.board
	switch k {
	case KeyUp:
		_, err := b.SelectCardAbove(nil)
		return err
	case KeyDown:
		_, err := b.SelectCardBelow(nil)
		return err
	case KeyLeft:
		return b.SetActiveColumn(b.PreviousColumn(nil))
	case KeyRight:
		return b.SetActiveColumn(b.NextColumn(nil))
	case KeyEscape:
		e.CloseMenu()
		return nil
	case KeyEnter:
		return e.shiftSelected(b.NextColumn)
	case KeyShiftEnter:
		return e.shiftSelected(b.PreviousColumn)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKey, k)
	}
}

func (e *Engine) shiftSelected(step func(*domain.Column) *domain.Column) error {
	card := e.board.Selected()
	if card == nil {
		return nil
	}
	return e.board.MoveCard(card, step(card.Column()))
}
