package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/momentum/internal/domain/model"
)

var errUpstream = errors.New("upstream down")

// fakeSource serves canned records: before windows end on the moment date,
// after windows start on it.
type fakeSource struct {
	mu      sync.Mutex
	date    string
	before  map[model.Role]model.RecordSet
	after   map[model.Role]model.RecordSet
	fail    map[model.Role]bool
	calls   int
	periods []model.Period
}

func (f *fakeSource) Fetch(_ context.Context, role model.Role, _ model.PlayerID, p model.Period) (model.RecordSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.periods = append(f.periods, p)
	if f.fail[role] {
		return model.RecordSet{}, errUpstream
	}
	if p.End.Format(model.DateLayout) == f.date {
		return f.before[role], nil
	}
	return f.after[role], nil
}

type fakeLookup map[string]model.PlayerID

func (f fakeLookup) Resolve(_ context.Context, name string) (model.PlayerID, error) {
	id, ok := f[name]
	if !ok {
		return 0, errors.New("not found")
	}
	return id, nil
}

// battingLine returns 100 at-bats with the given number of singles.
func battingLine(hits int) model.RecordSet {
	recs := make([]model.EventRecord, 0, 100)
	for i := 0; i < 100; i++ {
		ev := model.EventFieldOut
		if i < hits {
			ev = model.EventSingle
		}
		recs = append(recs, model.EventRecord{Event: ev})
	}
	return model.NewRecordSet(recs...)
}

func moment() model.Moment {
	wpa := 0.42
	return model.Moment{
		GameDate:    "2024-06-15",
		BatterName:  "Aaron Judge",
		PitcherName: "Gerrit Cole",
		Events:      model.EventHomeRun,
		WinExpDelta: &wpa,
	}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		date:   "2024-06-15",
		before: map[model.Role]model.RecordSet{model.RoleBatter: battingLine(25)},
		after:  map[model.Role]model.RecordSet{model.RoleBatter: battingLine(30)},
		fail:   map[model.Role]bool{},
	}
}

func lookup() fakeLookup {
	return fakeLookup{"Aaron Judge": 592450, "Gerrit Cole": 543037}
}
