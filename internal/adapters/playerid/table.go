// Package playerid resolves player names to provider identifiers using a
// PLAYERNAME/MLBID lookup table.
package playerid

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/momentum/internal/domain/model"
)

// Header names of the lookup table.
const (
	NameColumn = "PLAYERNAME"
	IDColumn   = "MLBID"
)

// Table is an immutable name to id map. Names match case-insensitively
// with surrounding whitespace ignored.
type Table struct {
	ids map[string]model.PlayerID
}

// NewTable builds a table from an in-memory map.
func NewTable(ids map[string]model.PlayerID) *Table {
	t := &Table{ids: make(map[string]model.PlayerID, len(ids))}
	for name, id := range ids {
		t.ids[normalize(name)] = id
	}
	return t
}

// Load reads a CSV with PLAYERNAME and MLBID columns. Rows with a blank
// name or id are skipped; the first row for a name wins.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrLoad, err)
	}
	nameIdx, idIdx := -1, -1
	for i, h := range header {
		switch strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case NameColumn:
			nameIdx = i
		case IDColumn:
			idIdx = i
		}
	}
	if nameIdx < 0 || idIdx < 0 {
		return nil, fmt.Errorf("%w: header must contain %s and %s", ErrLoad, NameColumn, IDColumn)
	}

	t := &Table{ids: make(map[string]model.PlayerID)}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
		}
		if nameIdx >= len(row) || idIdx >= len(row) {
			continue
		}
		name := normalize(row[nameIdx])
		raw := strings.TrimSpace(row[idIdx])
		if name == "" || raw == "" {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(raw, ".0"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad id %q", ErrLoad, line, raw)
		}
		if _, dup := t.ids[name]; !dup {
			t.ids[name] = model.PlayerID(id)
		}
	}
	return t, nil
}

// LoadFile reads the table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Load(f)
}

// Resolve returns the identifier for name.
func (t *Table) Resolve(ctx context.Context, name string) (model.PlayerID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	id, ok := t.ids[normalize(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return id, nil
}

// Len returns the number of known players.
func (t *Table) Len() int { return len(t.ids) }

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
