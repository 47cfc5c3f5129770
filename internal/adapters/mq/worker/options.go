package worker

import "github.com/okian/momentum/pkg/logger"

// Option applies a configuration option to a Worker or Pool.
type Option func(*settings)

type settings struct {
	name   string
	logger logger.Logger
}

// WithName sets the worker or pool name for identification and logging.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(defaultName string, opts []Option) settings {
	s := settings{name: defaultName, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
