package playerid

import "errors"

var (
	// ErrNotFound is returned when a name has no identifier.
	ErrNotFound = errors.New("player not found")
	// ErrLoad is returned when the lookup table cannot be read.
	ErrLoad = errors.New("load player id table")
)
