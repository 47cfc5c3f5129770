package stats

import (
	"fmt"

	"github.com/okian/momentum/internal/domain/model"
)

// Aggregate derives all views for role from rs. Column presence is taken
// from rs.Columns; a column absent there is treated as missing even if
// individual records carry values.
func Aggregate(rs model.RecordSet, role model.Role) (Views, error) {
	if !role.Valid() {
		return Views{}, fmt.Errorf("aggregate %q: %w", role, ErrInvalidRole)
	}
	recs, cols := rs.Records, rs.Columns

	v := Views{Summary: Summary{Role: role}}
	switch role {
	case model.RoleBatter:
		v.Summary.Batter = batterSummary(recs, cols)
	case model.RolePitcher:
		v.Summary.Pitcher = pitcherSummary(recs, cols)
	}
	v.BattedBall = battedBallProfile(recs, cols)
	v.PitchTypes = pitchTypeStats(recs, cols, role)
	v.Situational = situationalStats(recs, cols, role)
	return v, nil
}
