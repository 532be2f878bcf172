// Package pointer decodes X10-style terminal mouse reports (ESC [ M Cb Cx Cy)
// into typed events and tracks the last pressed button across reports.
package pointer

import "github.com/charmbracelet/x/ansi"

// Kind identifies what a pointer report describes.
type Kind int

// Button and motion kinds. The zero value is reserved for "no button".
const (
	KindNone Kind = iota
	Left
	Middle
	Right
	Released
	WheelUp
	WheelDown
	MotionWithLeft
	MotionWithMiddle
	MotionWithRight
	MotionNone
)

// reportOffset is added to every byte after the ESC [ M prefix.
const reportOffset = 32

var buttonCodes = map[byte]Kind{
	0:  Left,
	1:  Middle,
	2:  Right,
	3:  Released,
	64: WheelUp,
	65: WheelDown,
}

var motionCodes = map[byte]Kind{
	32: MotionWithLeft,
	33: MotionWithMiddle,
	34: MotionWithRight,
	35: MotionNone,
}

var kindNames = map[Kind]string{
	KindNone:         "none",
	Left:             "left",
	Middle:           "middle",
	Right:            "right",
	Released:         "released",
	WheelUp:          "wheel-up",
	WheelDown:        "wheel-down",
	MotionWithLeft:   "motion-left",
	MotionWithMiddle: "motion-middle",
	MotionWithRight:  "motion-right",
	MotionNone:       "motion",
}

// String returns a short name for logs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsMotion reports whether k came from the motion table.
func (k Kind) IsMotion() bool {
	return k >= MotionWithLeft && k <= MotionNone
}

// IsButton reports whether k came from the button table.
func (k Kind) IsButton() bool {
	return k >= Left && k <= WheelDown
}

// IsPress reports whether k is a left, middle or right press.
func (k Kind) IsPress() bool {
	return k == Left || k == Middle || k == Right
}

// IsWheel reports whether k is a wheel step.
func (k Kind) IsWheel() bool {
	return k == WheelUp || k == WheelDown
}

// ansiButton maps a kind onto the x/ansi button and motion flag.
func (k Kind) ansiButton() (ansi.MouseButton, bool) {
	switch k {
	case Left:
		return ansi.MouseLeft, false
	case Middle:
		return ansi.MouseMiddle, false
	case Right:
		return ansi.MouseRight, false
	case Released:
		return ansi.MouseNone, false
	case WheelUp:
		return ansi.MouseWheelUp, false
	case WheelDown:
		return ansi.MouseWheelDown, false
	case MotionWithLeft:
		return ansi.MouseLeft, true
	case MotionWithMiddle:
		return ansi.MouseMiddle, true
	case MotionWithRight:
		return ansi.MouseRight, true
	case MotionNone:
		return ansi.MouseNone, true
	default:
		return ansi.MouseNone, false
	}
}

// Event is one decoded pointer report. X and Y are 1-based cell coordinates.
type Event struct {
	Kind Kind
	X    int
	Y    int
}

// EnableTracking returns the control sequence that turns on any-event mouse tracking.
func EnableTracking() string {
	return ansi.SetModeMouseAnyEvent
}

// DisableTracking returns the control sequence that turns any-event mouse tracking off.
func DisableTracking() string {
	return ansi.ResetModeMouseAnyEvent
}
