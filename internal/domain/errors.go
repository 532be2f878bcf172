package domain

import "errors"

var (
	ErrInvalidTitle         = errors.New("invalid title")
	ErrInvalidBounds        = errors.New("invalid bounds")
	ErrInvalidPosition      = errors.New("invalid position")
	ErrInvalidRole          = errors.New("invalid column role")
	ErrNoColumns            = errors.New("board needs at least one column")
	ErrDuplicateColumn      = errors.New("duplicate column title")
	ErrUnknownCard          = errors.New("card is not on this board")
	ErrUnknownColumn        = errors.New("column is not on this board")
	ErrEmptyColumn          = errors.New("column has no cards")
	ErrSelectionNotInColumn = errors.New("selected card is not in column")
)
