package service

import "errors"

var (
	// ErrNoDataSource is returned when the orchestrator has no data source.
	ErrNoDataSource = errors.New("no data source configured")
	// ErrNoIDLookup is returned when the orchestrator has no id lookup.
	ErrNoIDLookup = errors.New("no player id lookup configured")
	// ErrNoCalculator is returned by Start when no orchestrator was given.
	ErrNoCalculator = errors.New("no moment calculator configured")
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")
)
