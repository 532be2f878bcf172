package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ColumnRole tags the workflow stage a column represents.
type ColumnRole string

// Column roles.
const (
	RoleTodo     ColumnRole = "todo"
	RoleProgress ColumnRole = "progress"
	RoleDone     ColumnRole = "done"
)

// Valid reports whether the role is one of the known roles.
func (r ColumnRole) Valid() bool {
	switch r {
	case RoleTodo, RoleProgress, RoleDone:
		return true
	default:
		return false
	}
}

// Column holds an ordered sequence of cards, top to bottom.
type Column struct {
	Frame

	Position int
	Title    string
	Role     ColumnRole

	cards  []*Card
	active bool
}

// NewColumn constructs a detached column at the given 1-based position.
func NewColumn(position int, title string, role ColumnRole) (*Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if position < 1 {
		return nil, fmt.Errorf("column %q position %d: %w", title, position, ErrInvalidPosition)
	}
	if role == "" {
		role = RoleTodo
	}
	if !role.Valid() {
		return nil, fmt.Errorf("column %q role %q: %w", title, role, ErrInvalidRole)
	}
	return &Column{Position: position, Title: title, Role: role}, nil
}

// Cards returns a copy of the column's card sequence.
func (c *Column) Cards() []*Card {
	return slices.Clone(c.cards)
}

// Len returns the number of cards in the column.
func (c *Column) Len() int {
	return len(c.cards)
}

// IsActive reports whether this is the board's active column.
func (c *Column) IsActive() bool {
	return c.active
}

// IndexOf returns the position of card in the column, or -1.
func (c *Column) IndexOf(card *Card) int {
	if card == nil {
		return -1
	}
	return slices.Index(c.cards, card)
}

// CardAt returns the card at index i, or nil when out of range.
func (c *Column) CardAt(i int) *Card {
	if i < 0 || i >= len(c.cards) {
		return nil
	}
	return c.cards[i]
}

// Last returns the bottom card, or nil for an empty column.
func (c *Column) Last() *Card {
	return c.CardAt(len(c.cards) - 1)
}

// First returns the top card, or nil for an empty column.
func (c *Column) First() *Card {
	return c.CardAt(0)
}

func (c *Column) append(card *Card) {
	c.cards = append(c.cards, card)
	card.column = c
}

func (c *Column) remove(card *Card) bool {
	i := c.IndexOf(card)
	if i < 0 {
		return false
	}
	c.cards = slices.Delete(c.cards, i, i+1)
	return true
}
