package statcast

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/momentum/internal/domain/model"
)

// Decode reads a Statcast search CSV export. Column presence follows the
// header, so a known column with only empty cells is still present.
// Unknown columns are ignored.
func Decode(r io.Reader) (model.RecordSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.RecordSet{}, nil
	}
	if err != nil {
		return model.RecordSet{}, fmt.Errorf("read header: %w", err)
	}

	var cols model.ColumnSet
	index := make(map[model.Column]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if c, ok := model.ColumnByName(name); ok {
			index[c] = i
			cols = cols.With(c)
		}
	}

	var recs []model.EventRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.RecordSet{}, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, decodeRow(row, index))
	}
	return model.RecordSet{Columns: cols, Records: recs}, nil
}

func decodeRow(row []string, index map[model.Column]int) model.EventRecord {
	cell := func(c model.Column) string {
		i, ok := index[c]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		switch v {
		case "null", "NULL", "NA", "NaN", "nan":
			return ""
		}
		return v
	}
	return model.EventRecord{
		Event:            cell(model.ColEvents),
		Description:      cell(model.ColDescription),
		PitchType:        cell(model.ColPitchType),
		BBType:           cell(model.ColBBType),
		LaunchSpeed:      parseFloat(cell(model.ColLaunchSpeed)),
		LaunchAngle:      parseFloat(cell(model.ColLaunchAngle)),
		HitDistance:      parseFloat(cell(model.ColHitDistance)),
		ReleaseSpeed:     parseFloat(cell(model.ColReleaseSpeed)),
		ReleaseSpinRate:  parseFloat(cell(model.ColReleaseSpinRate)),
		WOBAValue:        parseFloat(cell(model.ColWOBAValue)),
		WOBADenom:        parseFloat(cell(model.ColWOBADenom)),
		Balls:            parseInt(cell(model.ColBalls)),
		Strikes:          parseInt(cell(model.ColStrikes)),
		Inning:           parseInt(cell(model.ColInning)),
		AtBatNumber:      parseInt(cell(model.ColAtBatNumber)),
		RunsScoredOnPlay: parseInt(cell(model.ColRunsScoredOnPlay)),
		On1B:             parseRunner(cell(model.ColOn1B)),
		On2B:             parseRunner(cell(model.ColOn2B)),
		On3B:             parseRunner(cell(model.ColOn3B)),
	}
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseInt accepts "3" and "3.0"; pandas exports integer columns with
// missing values as floats.
func parseInt(s string) *int {
	f := parseFloat(s)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

func parseRunner(s string) *int64 {
	f := parseFloat(s)
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}
