package scoring

import "errors"

var (
	// ErrNegativeWeight is returned when a weight table contains a negative entry.
	ErrNegativeWeight = errors.New("negative weight")
	// ErrNonFiniteWeight is returned when a weight table contains NaN or an infinity.
	ErrNonFiniteWeight = errors.New("non-finite weight")
	// ErrUnknownComponent is returned when a weight table names a component the role does not have.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrNoSnapshots is returned when neither snapshot is supplied.
	ErrNoSnapshots = errors.New("no snapshots to score")
)
