package engine

import "errors"

var (
	ErrStaleCard      = errors.New("menu card is no longer on the board")
	ErrUnknownCommand = errors.New("unknown menu command")
	ErrUnknownKey     = errors.New("unknown key")
)
