package engine

import (
	"fmt"

	"github.com/evanschultz/kanmouse/internal/domain"
)

// CommandKind enumerates the context menu actions.
type CommandKind int

// Menu command kinds.
const (
	CommandMarkDone CommandKind = iota + 1
	CommandMarkInProgress
	CommandDelete
)

// String returns the command name for logs.
func (k CommandKind) String() string {
	switch k {
	case CommandMarkDone:
		return "mark-done"
	case CommandMarkInProgress:
		return "mark-in-progress"
	case CommandDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Command is a menu action bound to the card it was opened on.
type Command struct {
	Kind CommandKind
	Card *domain.Card
}

// MenuOption is one clickable row of the context menu.
type MenuOption struct {
	domain.Frame

	Label   string
	Command Command
}

// ContextMenu is the open right-click menu, anchored at the pointer.
type ContextMenu struct {
	domain.Frame

	AnchorX int
	AnchorY int
	Options []*MenuOption
}

// Menu labels.
const (
	LabelMarkDone       = "Mark as done"
	LabelMarkInProgress = "Mark in progress"
	LabelDelete         = "Delete"
)

// newContextMenu builds the two-option menu for card: a status move that
// depends on whether the card is already done, then delete.
func newContextMenu(board *domain.Board, card *domain.Card, x, y int) *ContextMenu {
	status := &MenuOption{Label: LabelMarkDone, Command: Command{Kind: CommandMarkDone, Card: card}}
	if card.Column() == board.DoneColumn() {
		status = &MenuOption{Label: LabelMarkInProgress, Command: Command{Kind: CommandMarkInProgress, Card: card}}
	}
	return &ContextMenu{
		AnchorX: x,
		AnchorY: y,
		Options: []*MenuOption{
			status,
			{Label: LabelDelete, Command: Command{Kind: CommandDelete, Card: card}},
		},
	}
}

// apply runs cmd against the board.
func (e *Engine) apply(cmd Command) error {
	if !e.board.Contains(cmd.Card) {
		return ErrStaleCard
	}
	switch cmd.Kind {
	case CommandMarkDone:
		return e.board.MoveCard(cmd.Card, e.board.DoneColumn())
	case CommandMarkInProgress:
		return e.board.MoveCard(cmd.Card, e.board.ProgressColumn())
	case CommandDelete:
		e.forget(cmd.Card)
		return e.board.DeleteCard(cmd.Card)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, cmd.Kind)
	}
}
