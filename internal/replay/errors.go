package replay

import "errors"

var (
	// ErrInvalidConfig is returned when the replay configuration is unusable.
	ErrInvalidConfig = errors.New("invalid replay config")
	// ErrUnhealthy is returned when the target service does not answer /healthz.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrInput is returned when the moments file cannot be read.
	ErrInput = errors.New("invalid moments input")
	// ErrInconsistent is returned when stored results and the leaderboard disagree.
	ErrInconsistent = errors.New("leaderboard inconsistent with results")
)
