// Package replay drives a running momentum service with a file of pivotal
// moments, waits for them to be scored and checks the leaderboards.
package replay

import (
	"fmt"
	"time"
)

// Defaults for a replay run.
const (
	DefaultWorkers      = 4
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
	DefaultWaitTimeout  = 10 * time.Minute
	DefaultTopN         = 10
)

// Config holds configuration for a replay run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Workers      int           // Concurrent submitters and pollers
	Timeout      time.Duration // Per-request timeout
	PollInterval time.Duration // Delay between result polls for one moment
	WaitTimeout  time.Duration // Overall budget for results to appear
	TopN         int           // Leaderboard entries fetched per role
	Verbose      bool          // Log every moment
}

// DefaultConfig returns a Config targeting a local service.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:9080",
		Workers:      DefaultWorkers,
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		WaitTimeout:  DefaultWaitTimeout,
		TopN:         DefaultTopN,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url must not be empty", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be > 0", ErrInvalidConfig)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval must be > 0", ErrInvalidConfig)
	case c.TopN < 1:
		return fmt.Errorf("%w: top must be >= 1", ErrInvalidConfig)
	}
	return nil
}

// Outcome is the result of submitting one moment.
type Outcome string

// Submission outcomes.
const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
)

// Stats summarizes a replay run.
type Stats struct {
	Moments            int           `json:"moments"`
	Accepted           int           `json:"accepted"`
	Duplicate          int           `json:"duplicate"`
	Rejected           int           `json:"rejected"`
	Failed             int           `json:"failed"`
	Scored             int           `json:"scored"`
	Missing            int           `json:"missing"`
	LeaderboardEntries int           `json:"leaderboard_entries"`
	Duration           time.Duration `json:"duration_ns"`
}
