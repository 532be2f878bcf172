package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/evanschultz/kanmouse/internal/pointer"
)

// pointerEvent maps a Bubble Tea mouse message onto the decoder's event type.
// Bubble Tea reports 0-based cells; board bounds are 1-based.
func pointerEvent(msg tea.MouseMsg) (pointer.Event, bool) {
	mouse := msg.Mouse()
	ev := pointer.Event{X: mouse.X + 1, Y: mouse.Y + 1}
	switch msg.(type) {
	case tea.MouseClickMsg:
		switch mouse.Button {
		case tea.MouseLeft:
			ev.Kind = pointer.Left
		case tea.MouseMiddle:
			ev.Kind = pointer.Middle
		case tea.MouseRight:
			ev.Kind = pointer.Right
		default:
			return pointer.Event{}, false
		}
	case tea.MouseReleaseMsg:
		ev.Kind = pointer.Released
	case tea.MouseWheelMsg:
		switch mouse.Button {
		case tea.MouseWheelUp:
			ev.Kind = pointer.WheelUp
		case tea.MouseWheelDown:
			ev.Kind = pointer.WheelDown
		default:
			return pointer.Event{}, false
		}
	case tea.MouseMotionMsg:
		switch mouse.Button {
		case tea.MouseNone:
			ev.Kind = pointer.MotionNone
		case tea.MouseLeft:
			ev.Kind = pointer.MotionWithLeft
		case tea.MouseMiddle:
			ev.Kind = pointer.MotionWithMiddle
		case tea.MouseRight:
			ev.Kind = pointer.MotionWithRight
		default:
			return pointer.Event{}, false
		}
	default:
		return pointer.Event{}, false
	}
	return ev, true
}
