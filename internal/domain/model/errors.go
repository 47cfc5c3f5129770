package model

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidRole   = errors.New("invalid player role")
	ErrInvalidMoment = errors.New("invalid moment")
)
