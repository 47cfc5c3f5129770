package repository

import "errors"

// Sentinel kinds for result store errors.
var (
	ErrNotFound     = errors.New("moment not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrInvalidRole  = errors.New("invalid leaderboard role")
)
