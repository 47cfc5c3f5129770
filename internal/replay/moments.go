package replay

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/momentum/internal/domain/model"
)

// Moment file columns. Only the first four are required.
const (
	colGameDate    = "game_date"
	colBatter      = "batter_name"
	colPitcher     = "pitcher_name"
	colEvents      = "events"
	colWinExpDelta = "delta_home_win_exp_abs"
	colGameYear    = "game_year"
)

// LoadMoments reads pivotal moments from a CSV with a header row. Blank
// rows are skipped; invalid rows fail the load with their line number.
func LoadMoments(r io.Reader) ([]model.Moment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInput, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range []string{colGameDate, colBatter, colPitcher, colEvents} {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrInput, c)
		}
	}

	var out []model.Moment
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInput, line, err)
		}
		if blank(row) {
			continue
		}
		m, err := momentFromRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInput, line, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadMomentsFile reads moments from path.
func LoadMomentsFile(path string) ([]model.Moment, error) {
	f, err := os.Open(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}
	defer f.Close()
	return LoadMoments(f)
}

func momentFromRow(row []string, index map[string]int) (model.Moment, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	m := model.Moment{
		GameDate:    get(colGameDate),
		BatterName:  get(colBatter),
		PitcherName: get(colPitcher),
		Events:      get(colEvents),
	}
	if v := get(colWinExpDelta); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Moment{}, fmt.Errorf("%s %q: %w", colWinExpDelta, v, err)
		}
		m.WinExpDelta = &f
	}
	if v := get(colGameYear); v != "" {
		y, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Moment{}, fmt.Errorf("%s %q: %w", colGameYear, v, err)
		}
		m.GameYear = int(y)
	}
	if err := m.Validate(); err != nil {
		return model.Moment{}, err
	}
	return m, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
