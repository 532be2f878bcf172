package domain

import "fmt"

// Bounds is an inclusive rectangle of terminal cells, 1-based in both axes.
// The zero value means "not drawn" and contains no point.
type Bounds struct {
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

// NewBounds validates and returns an inclusive rectangle.
func NewBounds(startCol, endCol, startRow, endRow int) (Bounds, error) {
	if startCol < 1 || startRow < 1 || endCol < startCol || endRow < startRow {
		return Bounds{}, fmt.Errorf("%w: cols %d..%d rows %d..%d", ErrInvalidBounds, startCol, endCol, startRow, endRow)
	}
	return Bounds{StartCol: startCol, EndCol: endCol, StartRow: startRow, EndRow: endRow}, nil
}

// Rect returns the bounds of a width x height box whose top-left cell is (col, row).
// Non-positive sizes yield the zero value.
func Rect(col, row, width, height int) Bounds {
	if width <= 0 || height <= 0 || col < 1 || row < 1 {
		return Bounds{}
	}
	return Bounds{
		StartCol: col,
		EndCol:   col + width - 1,
		StartRow: row,
		EndRow:   row + height - 1,
	}
}

// IsZero reports whether the bounds were never set.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Contains reports whether the cell (x, y) lies inside the rectangle, edges included.
func (b Bounds) Contains(x, y int) bool {
	if b.IsZero() {
		return false
	}
	return x >= b.StartCol && x <= b.EndCol && y >= b.StartRow && y <= b.EndRow
}

// ContainsCol reports whether column x lies inside the horizontal extent.
func (b Bounds) ContainsCol(x int) bool {
	if b.IsZero() {
		return false
	}
	return x >= b.StartCol && x <= b.EndCol
}

// Width returns the number of columns covered.
func (b Bounds) Width() int {
	if b.IsZero() {
		return 0
	}
	return b.EndCol - b.StartCol + 1
}

// Height returns the number of rows covered.
func (b Bounds) Height() int {
	if b.IsZero() {
		return 0
	}
	return b.EndRow - b.StartRow + 1
}

// String renders the rectangle for logs.
func (b Bounds) String() string {
	if b.IsZero() {
		return "[undrawn]"
	}
	return fmt.Sprintf("[%d..%d x %d..%d]", b.StartCol, b.EndCol, b.StartRow, b.EndRow)
}

// Frame holds the last drawn rectangle and rendered text of a visual element.
// The renderer writes it; hit testing reads it.
type Frame struct {
	bounds Bounds
	output string
}

// Bounds returns the rectangle recorded by the last render.
func (f *Frame) Bounds() Bounds {
	return f.bounds
}

// SetBounds records where the element was drawn.
func (f *Frame) SetBounds(b Bounds) {
	f.bounds = b
}

// ClearBounds marks the element as not drawn.
func (f *Frame) ClearBounds() {
	f.bounds = Bounds{}
}

// Output returns the last rendered text.
func (f *Frame) Output() string {
	return f.output
}

// SetOutput caches the rendered text.
func (f *Frame) SetOutput(out string) {
	f.output = out
}
