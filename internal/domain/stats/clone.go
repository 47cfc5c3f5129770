package stats

import "maps"

// Clone returns a deep copy of v. Mutating the copy leaves v untouched.
func (v Views) Clone() Views {
	return Views{
		Summary:     v.Summary.Clone(),
		BattedBall:  v.BattedBall.Clone(),
		PitchTypes:  v.PitchTypes.Clone(),
		Situational: v.Situational.Clone(),
	}
}

func (s Summary) Clone() Summary {
	out := Summary{Role: s.Role}
	if s.Batter != nil {
		b := s.Batter.Clone()
		out.Batter = &b
	}
	if s.Pitcher != nil {
		p := s.Pitcher.Clone()
		out.Pitcher = &p
	}
	return out
}

func (b BatterSummary) Clone() BatterSummary {
	b.EventCounts = maps.Clone(b.EventCounts)
	return b
}

func (p PitcherSummary) Clone() PitcherSummary {
	p.EventCounts = maps.Clone(p.EventCounts)
	return p
}

func (b BattedBallProfile) Clone() BattedBallProfile {
	b.Types = maps.Clone(b.Types)
	return b
}

// Clone copies every line along with its nested maps and pointers.
func (p PitchTypeStats) Clone() PitchTypeStats {
	if p.Lines == nil {
		return p
	}
	lines := make(map[string]PitchTypeLine, len(p.Lines))
	for k, l := range p.Lines {
		lines[k] = l.Clone()
	}
	p.Lines = lines
	return p
}

func (l PitchTypeLine) Clone() PitchTypeLine {
	l.Outcomes = maps.Clone(l.Outcomes)
	l.Events = maps.Clone(l.Events)
	if l.PutAwayRate != nil {
		r := *l.PutAwayRate
		l.PutAwayRate = &r
	}
	if l.Contact != nil {
		c := *l.Contact
		l.Contact = &c
	}
	return l
}

func (s SituationalStats) Clone() SituationalStats { return maps.Clone(s) }
