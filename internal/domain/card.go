package domain

// Card is a single item on the board. Its column is a non-owning back-reference;
// the column owns the card sequence.
type Card struct {
	Frame

	ID          int
	Title       string
	Description string

	column *Column
}

// Column returns the column currently holding the card.
func (c *Card) Column() *Column {
	return c.column
}
