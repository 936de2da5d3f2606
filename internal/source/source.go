// Package source loads raw lead rows from a spreadsheet source: the Google
// Sheets API, or a local/remote workbook file.
package source

import (
	"context"

	"github.com/rotisserie/eris"
)

// Load-time error taxonomy. All three are fatal to a render pass; per-row
// data problems are never errors (the normalizer substitutes sentinels).
var (
	// ErrAuthentication indicates rejected provider credentials.
	ErrAuthentication = eris.New("source: authentication failed")
	// ErrNotFound indicates a missing spreadsheet, worksheet, or file.
	ErrNotFound = eris.New("source: spreadsheet not found")
	// ErrEmptyDataset indicates the sheet had a header but no data rows, or
	// nothing at all. Callers decide whether to abort or render empty state.
	ErrEmptyDataset = eris.New("source: empty dataset")
)

// Row maps column headers to raw cell values for one sheet row.
type Row map[string]string

// Table is the raw result of a load: the header row plus one Row per data row.
type Table struct {
	Headers []string
	Rows    []Row
}

// Source yields the raw lead table. Implementations are read-only; nothing
// writes back to the spreadsheet.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// tableFromRecords converts a header row plus data records into a Table.
// Short records leave trailing columns absent; extra cells are dropped.
// Rows with no non-empty cell are skipped entirely.
func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, eris.Wrap(ErrEmptyDataset, "no rows")
	}

	headers := records[0]
	t := &Table{Headers: headers}

	for _, rec := range records[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(rec) {
				continue
			}
			row[h] = rec[i]
			if rec[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, eris.Wrap(ErrEmptyDataset, "no data rows")
	}

	return t, nil
}
