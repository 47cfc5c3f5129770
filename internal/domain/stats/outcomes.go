package stats

import "github.com/okian/momentum/internal/domain/model"

// outcomeTally counts terminal outcomes over a record slice.
type outcomeTally struct {
	counts           map[string]int
	plateAppearances int
	atBats           int
}

func tallyOutcomes(recs []model.EventRecord, cols model.ColumnSet) outcomeTally {
	t := outcomeTally{counts: make(map[string]int)}
	if !cols.Has(model.ColEvents) {
		return t
	}
	for i := range recs {
		ev := recs[i].Event
		if ev == "" {
			continue
		}
		t.counts[ev]++
		t.plateAppearances++
		if model.CountsAsAtBat(ev) {
			t.atBats++
		}
	}
	return t
}

func (t outcomeTally) n(event string) int { return t.counts[event] }

func (t outcomeTally) hits() int {
	return t.n(model.EventSingle) + t.n(model.EventDouble) + t.n(model.EventTriple) + t.n(model.EventHomeRun)
}

func (t outcomeTally) totalBases() int {
	return t.n(model.EventSingle) + 2*t.n(model.EventDouble) + 3*t.n(model.EventTriple) + 4*t.n(model.EventHomeRun)
}

// hitsAndAtBats is the single-pass version used by situational splits.
func hitsAndAtBats(recs []model.EventRecord) (hits, atBats int) {
	for i := range recs {
		ev := recs[i].Event
		if model.IsHit(ev) {
			hits++
		}
		if model.CountsAsAtBat(ev) {
			atBats++
		}
	}
	return hits, atBats
}
