package pointer

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// ReportLen is the byte length of one X10 pointer report.
const ReportLen = 6

var reportPrefix = [3]byte{ansi.ESC, '[', 'M'}

// Parse decodes one pointer report without touching any tracker state.
// Bytes after the first six are ignored.
func Parse(seq []byte) (Event, error) {
	if len(seq) < ReportLen {
		return Event{}, fmt.Errorf("%w: %d bytes, need %d", ErrMalformed, len(seq), ReportLen)
	}
	if seq[0] != reportPrefix[0] || seq[1] != reportPrefix[1] || seq[2] != reportPrefix[2] {
		return Event{}, fmt.Errorf("%w: prefix %q", ErrMalformed, seq[:3])
	}
	if seq[3] < reportOffset || seq[4] < reportOffset || seq[5] < reportOffset {
		return Event{}, fmt.Errorf("%w: byte below offset in %q", ErrMalformed, seq[3:ReportLen])
	}
	code := seq[3] - reportOffset
	kind, ok := buttonCodes[code]
	if !ok {
		kind, ok = motionCodes[code]
	}
	if !ok {
		return Event{}, fmt.Errorf("%w: unknown button code %d", ErrMalformed, code)
	}
	return Event{
		Kind: kind,
		X:    int(seq[4]) - reportOffset,
		Y:    int(seq[5]) - reportOffset,
	}, nil
}

// Encode produces the report bytes for ev. Coordinates must fit one byte after
// the offset is added, so 1..223.
func Encode(ev Event) ([]byte, error) {
	if !ev.Kind.IsButton() && !ev.Kind.IsMotion() {
		return nil, fmt.Errorf("%w: cannot encode kind %d", ErrMalformed, int(ev.Kind))
	}
	if ev.X < 1 || ev.Y < 1 || ev.X > 255-reportOffset || ev.Y > 255-reportOffset {
		return nil, fmt.Errorf("%w: coordinate (%d, %d) out of range", ErrMalformed, ev.X, ev.Y)
	}
	button, motion := ev.Kind.ansiButton()
	code := ansi.EncodeMouseButton(button, motion, false, false, false)
	return []byte{
		reportPrefix[0], reportPrefix[1], reportPrefix[2],
		code + reportOffset,
		byte(ev.X + reportOffset),
		byte(ev.Y + reportOffset),
	}, nil
}

// Mouse is the persistent pointer state carried between reports.
type Mouse struct {
	// LastButtonDown is the last pressed button; KindNone when cleared.
	LastButtonDown Kind
	X              int
	Y              int
}

// Decode parses seq and, on success, folds the event into the tracker.
// A malformed report leaves the tracker unchanged.
func (m *Mouse) Decode(seq []byte) (Event, error) {
	ev, err := Parse(seq)
	if err != nil {
		return Event{}, err
	}
	m.Track(ev)
	return ev, nil
}

// Track records the pointer position and remembers presses. Motion, wheel and
// release reports leave LastButtonDown alone.
func (m *Mouse) Track(ev Event) {
	m.X, m.Y = ev.X, ev.Y
	if ev.Kind.IsPress() {
		m.LastButtonDown = ev.Kind
	}
}

// ClearLastButton forgets the last pressed button.
func (m *Mouse) ClearLastButton() {
	m.LastButtonDown = KindNone
}
