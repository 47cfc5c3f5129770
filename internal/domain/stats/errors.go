package stats

import "github.com/okian/momentum/internal/domain/model"

// ErrInvalidRole is returned by Aggregate for roles other than batter or pitcher.
var ErrInvalidRole = model.ErrInvalidRole
