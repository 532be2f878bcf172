package domain

import (
	"fmt"
	"strings"
)

// ColumnSpec describes one column to create on a new board.
type ColumnSpec struct {
	Title string
	Role  ColumnRole
}

// Board is the ordered, fixed column sequence plus the selection cursor.
type Board struct {
	columns  []*Column
	selected *Card
	lastID   int
}

// DefaultColumns returns the three-column layout used when nothing else is configured.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "To Do", Role: RoleTodo},
		{Title: "In Progress", Role: RoleProgress},
		{Title: "Done", Role: RoleDone},
	}
}

// NewBoard builds a board from specs. The first column starts active.
func NewBoard(specs []ColumnSpec) (*Board, error) {
	if len(specs) == 0 {
		return nil, ErrNoColumns
	}
	b := &Board{columns: make([]*Column, 0, len(specs))}
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		col, err := NewColumn(i+1, spec.Title, spec.Role)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(col.Title)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Title)
		}
		seen[key] = struct{}{}
		b.columns = append(b.columns, col)
	}
	b.columns[0].active = true
	return b, nil
}

// Columns returns the column sequence in display order.
func (b *Board) Columns() []*Column {
	out := make([]*Column, len(b.columns))
	copy(out, b.columns)
	return out
}

// Column returns the column at zero-based index i, or nil.
func (b *Board) Column(i int) *Column {
	if i < 0 || i >= len(b.columns) {
		return nil
	}
	return b.columns[i]
}

// ColumnByTitle looks a column up by case-insensitive title.
func (b *Board) ColumnByTitle(title string) *Column {
	title = strings.TrimSpace(title)
	for _, col := range b.columns {
		if strings.EqualFold(col.Title, title) {
			return col
		}
	}
	return nil
}

// Active returns the single active column.
func (b *Board) Active() *Column {
	for _, col := range b.columns {
		if col.active {
			return col
		}
	}
	// unreachable while setActive is the only mutator
	return b.columns[0]
}

// Selected returns the selected card, or nil.
func (b *Board) Selected() *Card {
	return b.selected
}

// Select sets the selection cursor. A card not on the board is rejected.
func (b *Board) Select(card *Card) error {
	if card != nil && !b.Contains(card) {
		return ErrUnknownCard
	}
	b.selected = card
	return nil
}

// Contains reports whether card currently sits in one of the board's columns.
func (b *Board) Contains(card *Card) bool {
	if card == nil || card.column == nil || !b.owns(card.column) {
		return false
	}
	return card.column.IndexOf(card) >= 0
}

// CardByID finds a card by id.
func (b *Board) CardByID(id int) *Card {
	for _, col := range b.columns {
		for _, card := range col.cards {
			if card.ID == id {
				return card
			}
		}
	}
	return nil
}

// CardCount returns the number of cards across all columns.
func (b *Board) CardCount() int {
	n := 0
	for _, col := range b.columns {
		n += len(col.cards)
	}
	return n
}

// AddCard appends a new card to col and assigns the next id. Ids are never reused.
func (b *Board) AddCard(col *Column, title, description string) (*Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if !b.owns(col) {
		return nil, ErrUnknownColumn
	}
	b.lastID++
	card := &Card{
		ID:          b.lastID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	col.append(card)
	return card, nil
}

// MoveCard appends card to dest, activates dest and selects the card.
// Moving a card to its own column sends it to the bottom.
func (b *Board) MoveCard(card *Card, dest *Column) error {
	if !b.Contains(card) {
		return ErrUnknownCard
	}
	if !b.owns(dest) {
		return ErrUnknownColumn
	}
	card.column.remove(card)
	dest.append(card)
	b.setActive(dest)
	b.selected = card
	return nil
}

// DeleteCard removes card from its column. The selection falls to the column's
// new last card, or nil when the column is now empty.
func (b *Board) DeleteCard(card *Card) error {
	if !b.Contains(card) {
		return ErrUnknownCard
	}
	col := card.column
	col.remove(card)
	card.column = nil
	card.ClearBounds()
	b.selected = col.Last()
	return nil
}

// SetActiveColumn activates col and carries the selection's vertical index over.
// Activating an empty column clears the selection and reports ErrEmptyColumn.
func (b *Board) SetActiveColumn(col *Column) error {
	if !b.owns(col) {
		return ErrUnknownColumn
	}
	prev := b.Active()
	idx := prev.IndexOf(b.selected)
	b.setActive(col)
	switch {
	case len(col.cards) == 0:
		b.selected = nil
		return fmt.Errorf("activate %q: %w", col.Title, ErrEmptyColumn)
	case idx >= 0 && idx < len(col.cards):
		b.selected = col.cards[idx]
	default:
		b.selected = col.Last()
	}
	return nil
}

// NextColumn returns the circular successor of ref, or of the active column when ref is nil.
func (b *Board) NextColumn(ref *Column) *Column {
	return b.step(ref, 1)
}

// PreviousColumn returns the circular predecessor of ref, or of the active column when ref is nil.
func (b *Board) PreviousColumn(ref *Column) *Column {
	return b.step(ref, -1)
}

// SelectCardAbove moves the selection one card up within col (the active column
// when nil), wrapping from top to bottom. With nothing selected it picks the
// bottom card; a selection in another column is a desync.
func (b *Board) SelectCardAbove(col *Column) (*Card, error) {
	return b.selectStep(col, -1)
}

// SelectCardBelow moves the selection one card down within col (the active column
// when nil), wrapping from bottom to top. With nothing selected it picks the
// top card.
func (b *Board) SelectCardBelow(col *Column) (*Card, error) {
	return b.selectStep(col, 1)
}

// DoneColumn returns the column cards are marked done into: the done-role column,
// falling back to the last column.
func (b *Board) DoneColumn() *Column {
	if col := b.byRole(RoleDone); col != nil {
		return col
	}
	return b.columns[len(b.columns)-1]
}

// ProgressColumn returns the column cards are marked in progress into: the
// progress-role column, falling back to the second column (or the first on a
// board too small to have a distinct one).
func (b *Board) ProgressColumn() *Column {
	if col := b.byRole(RoleProgress); col != nil {
		return col
	}
	i := min(1, len(b.columns)-1)
	if b.columns[i] == b.DoneColumn() {
		return b.columns[0]
	}
	return b.columns[i]
}

func (b *Board) selectStep(col *Column, delta int) (*Card, error) {
	if col == nil {
		col = b.Active()
	}
	if !b.owns(col) {
		return nil, ErrUnknownColumn
	}
	n := len(col.cards)
	if n == 0 {
		b.selected = nil
		return nil, fmt.Errorf("select in %q: %w", col.Title, ErrEmptyColumn)
	}
	if b.selected == nil {
		if delta < 0 {
			b.selected = col.cards[n-1]
		} else {
			b.selected = col.cards[0]
		}
		return b.selected, nil
	}
	i := col.IndexOf(b.selected)
	if i < 0 {
		b.selected = nil
		return nil, fmt.Errorf("select in %q: %w", col.Title, ErrSelectionNotInColumn)
	}
	b.selected = col.cards[(i+delta+n)%n]
	return b.selected, nil
}

func (b *Board) step(ref *Column, delta int) *Column {
	if ref == nil {
		ref = b.Active()
	}
	n := len(b.columns)
	for i, col := range b.columns {
		if col == ref {
			return b.columns[(i+delta+n)%n]
		}
	}
	return nil
}

func (b *Board) byRole(role ColumnRole) *Column {
	for _, col := range b.columns {
		if col.Role == role {
			return col
		}
	}
	return nil
}

func (b *Board) owns(col *Column) bool {
	if col == nil {
		return false
	}
	for _, c := range b.columns {
		if c == col {
			return true
		}
	}
	return false
}

// setActive is the only place column activity changes.
func (b *Board) setActive(col *Column) {
	for _, c := range b.columns {
		c.active = c == col
	}
}
