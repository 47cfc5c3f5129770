package statcast

import "errors"

var (
	// ErrUnavailable wraps every failure to obtain records: transport,
	// breaker, status and decoding errors.
	ErrUnavailable = errors.New("statcast data unavailable")
	// ErrBadStatus is returned for non-200 responses.
	ErrBadStatus = errors.New("unexpected status")
)
