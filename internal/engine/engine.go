// Package engine turns pointer events and key presses into board mutations.
package engine

import (
	"github.com/evanschultz/kanmouse/internal/domain"
	"github.com/evanschultz/kanmouse/internal/pointer"
)

// Logger is the subset of the runtime logger the engine writes to.
type Logger interface {
	Debug(msg any, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine transitions to l.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

type phase int

const (
	phaseIdle phase = iota
	phaseArmed
	phaseDragging
)

// pressState is the button-down lifecycle. Armed keeps the press position,
// dragging keeps the grab offset from the card's top-left cell.
type pressState struct {
	phase   phase
	card    *domain.Card
	downX   int
	downY   int
	offsetX int
	offsetY int
}

// Engine owns the interaction state for one board.
type Engine struct {
	board *domain.Board
	mouse pointer.Mouse
	press pressState

	hovering    *domain.Card
	menu        *ContextMenu
	highlighted *MenuOption

	log Logger
}

// New constructs an engine around board.
func New(board *domain.Board, opts ...Option) *Engine {
	e := &Engine{board: board, log: nopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Board returns the board the engine mutates.
func (e *Engine) Board() *domain.Board {
	return e.board
}

// Mouse returns the pointer tracker state.
func (e *Engine) Mouse() pointer.Mouse {
	return e.mouse
}

// Hovering returns the card under the pointer, if any.
func (e *Engine) Hovering() *domain.Card {
	return e.hovering
}

// Armed returns the card a button went down on, before any drag motion.
func (e *Engine) Armed() *domain.Card {
	if e.press.phase != phaseArmed {
		return nil
	}
	return e.press.card
}

// Dragging returns the card being dragged, if any.
func (e *Engine) Dragging() *domain.Card {
	if e.press.phase != phaseDragging {
		return nil
	}
	return e.press.card
}

// DragOffset returns the grab point relative to the dragged card's top-left cell.
func (e *Engine) DragOffset() (int, int) {
	if e.press.phase != phaseDragging {
		return 0, 0
	}
	return e.press.offsetX, e.press.offsetY
}

// Menu returns the open context menu, or nil.
func (e *Engine) Menu() *ContextMenu {
	return e.menu
}

// Highlighted returns the menu option under the pointer while the menu is open.
func (e *Engine) Highlighted() *MenuOption {
	return e.highlighted
}

// CloseMenu dismisses the context menu.
func (e *Engine) CloseMenu() {
	e.menu = nil
	e.highlighted = nil
}

// AddCard appends a card to the active column. The new card is selected only
// when nothing else is.
func (e *Engine) AddCard(title, description string) (*domain.Card, error) {
	card, err := e.board.AddCard(e.board.Active(), title, description)
	if err != nil {
		return nil, err
	}
	if e.board.Selected() == nil {
		_ = e.board.Select(card)
	}
	e.log.Debug("card added", "id", card.ID, "column", card.Column().Title)
	return card, nil
}

// HandleSequence decodes one raw pointer report and dispatches it.
// A malformed report is dropped without touching any state.
func (e *Engine) HandleSequence(seq []byte) error {
	ev, err := e.mouse.Decode(seq)
	if err != nil {
		e.log.Debug("pointer report dropped", "err", err)
		return err
	}
	return e.dispatch(ev)
}

// HandlePointer dispatches an already decoded event, tracking it first.
func (e *Engine) HandlePointer(ev pointer.Event) error {
	e.mouse.Track(ev)
	return e.dispatch(ev)
}

func (e *Engine) dispatch(ev pointer.Event) error {
	if ev.Kind == pointer.Released {
		defer e.endPress()
	}

	var (
		col  *domain.Column
		card *domain.Card
	)
	option := e.MenuOptionAt(ev.X, ev.Y)
	if option == nil {
		col = e.ColumnAt(ev.X, ev.Y)
		card = e.CardAt(ev.X, ev.Y)
	}

	if e.menu != nil {
		switch {
		case option == nil && !ev.Kind.IsMotion():
			e.CloseMenu()
		case option != nil && ev.Kind == pointer.MotionNone:
			e.highlighted = option
		case option != nil && ev.Kind == pointer.Released && e.mouse.LastButtonDown == pointer.Left:
			e.CloseMenu()
			e.log.Debug("menu command", "command", option.Command.Kind, "card", option.Command.Card.ID)
			return e.apply(option.Command)
		default:
			e.highlighted = nil
		}
	}

	if col != nil && col.IsActive() && ev.Kind.IsWheel() {
		if ev.Kind == pointer.WheelUp {
			_, err := e.board.SelectCardAbove(col)
			return err
		}
		_, err := e.board.SelectCardBelow(col)
		return err
	}

	dragging := e.press.phase == phaseDragging

	if col != nil && !col.IsActive() && card == nil && !dragging &&
		ev.Kind == pointer.Released && e.mouse.LastButtonDown == pointer.Left {
		e.log.Debug("column activated", "column", col.Title)
		return e.board.SetActiveColumn(col)
	}

	if col != nil && ev.Kind == pointer.MotionWithLeft && e.press.phase == phaseArmed {
		e.startDrag()
		return nil
	}

	if col != nil && ev.Kind == pointer.Released && dragging {
		return e.drop(col)
	}

	if card == nil {
		if ev.Kind == pointer.MotionNone && !dragging {
			e.hovering = nil
		}
		return nil
	}

	switch ev.Kind {
	case pointer.Left:
		if !dragging {
			e.press = pressState{phase: phaseArmed, card: card, downX: ev.X, downY: ev.Y}
		}
	case pointer.MotionNone:
		if e.menu != nil {
			e.hovering = nil
		} else {
			e.hovering = card
		}
	case pointer.Released:
		switch e.mouse.LastButtonDown {
		case pointer.Left:
			e.log.Debug("card advanced", "id", card.ID)
			return e.board.MoveCard(card, e.board.NextColumn(card.Column()))
		case pointer.Right:
			if err := e.board.Select(card); err != nil {
				return err
			}
			e.menu = newContextMenu(e.board, card, ev.X, ev.Y)
			e.highlighted = nil
			e.log.Debug("menu opened", "id", card.ID, "x", ev.X, "y", ev.Y)
		}
	}
	return nil
}

func (e *Engine) startDrag() {
	card := e.press.card
	b := card.Bounds()
	e.press = pressState{
		phase:   phaseDragging,
		card:    card,
		offsetX: e.press.downX - b.StartCol,
		offsetY: e.press.downY - b.StartRow,
	}
	_ = e.board.Select(card)
	e.hovering = card
	e.log.Debug("drag started", "id", card.ID, "offset_x", e.press.offsetX, "offset_y", e.press.offsetY)
}

// drop ends a drag over col. A release outside every column never gets
// here, so the drag stays live until the button comes up over a column.
func (e *Engine) drop(col *domain.Column) error {
	card := e.press.card
	e.press = pressState{}
	e.hovering = nil
	if col == card.Column() {
		return nil
	}
	e.log.Debug("card dropped", "id", card.ID, "column", col.Title)
	return e.board.MoveCard(card, col)
}

// endPress runs after every release: the button is up, so nothing stays armed.
func (e *Engine) endPress() {
	e.mouse.ClearLastButton()
	if e.press.phase == phaseArmed {
		e.press = pressState{}
	}
}

// forget drops every interaction reference to a card leaving the board.
func (e *Engine) forget(card *domain.Card) {
	if e.hovering == card {
		e.hovering = nil
	}
	if e.press.card == card {
		e.press = pressState{}
	}
}
