package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO calendar date used by the provider and by moments.
const DateLayout = "2006-01-02"

// momentNamespace seeds name-based moment ids so resubmissions collide.
var momentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/okian/momentum/moment"))

// PlayerID is the provider's numeric player identifier. Zero means unresolved.
type PlayerID int64

// Moment is a pivotal in-game event whose aftermath is being scored.
type Moment struct {
	GameDate    string   `json:"game_date"`
	BatterName  string   `json:"batter_name"`
	PitcherName string   `json:"pitcher_name"`
	Events      string   `json:"events"`
	GameYear    int      `json:"game_year,omitempty"`
	WinExpDelta *float64 `json:"delta_home_win_exp_abs,omitempty"`
}

// Validate checks the fields every moment must carry.
func (m Moment) Validate() error {
	switch {
	case strings.TrimSpace(m.GameDate) == "":
		return fmt.Errorf("%w: missing game_date", ErrInvalidMoment)
	case strings.TrimSpace(m.BatterName) == "":
		return fmt.Errorf("%w: missing batter_name", ErrInvalidMoment)
	case strings.TrimSpace(m.PitcherName) == "":
		return fmt.Errorf("%w: missing pitcher_name", ErrInvalidMoment)
	case strings.TrimSpace(m.Events) == "":
		return fmt.Errorf("%w: missing events", ErrInvalidMoment)
	}
	if _, err := m.Date(); err != nil {
		return err
	}
	return nil
}

// Date parses GameDate.
func (m Moment) Date() (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(m.GameDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: game_date %q is not YYYY-MM-DD", ErrInvalidMoment, m.GameDate)
	}
	return d, nil
}

// Year prefers the explicit season and falls back to the date's year.
func (m Moment) Year() int {
	if m.GameYear > 0 {
		return m.GameYear
	}
	d, err := m.Date()
	if err != nil {
		return 0
	}
	return d.Year()
}

// PlayerName returns the name of the participant in the given role.
func (m Moment) PlayerName(r Role) string {
	if r == RolePitcher {
		return m.PitcherName
	}
	return m.BatterName
}

// ID derives a stable identifier from the moment's identity fields.
func (m Moment) ID() string {
	key := strings.Join([]string{
		strings.TrimSpace(m.GameDate),
		strings.ToLower(strings.TrimSpace(m.BatterName)),
		strings.ToLower(strings.TrimSpace(m.PitcherName)),
		strings.TrimSpace(m.Events),
	}, "|")
	return uuid.NewSHA1(momentNamespace, []byte(key)).String()
}

// Period is an inclusive calendar date range.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the period was never set.
func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

func (p Period) String() string {
	if p.IsZero() {
		return "n/a"
	}
	return p.Start.Format(DateLayout) + ".." + p.End.Format(DateLayout)
}
