package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure of a loaded Config.
	ErrInvalidConfig = errors.New("invalid momentum config")
	// ErrLoadConfig wraps failures reading the YAML file or MSS_ environment.
	ErrLoadConfig = errors.New("load momentum config")
)
