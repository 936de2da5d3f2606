package source

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/metwiz/leads-cli/internal/resilience"
	"github.com/metwiz/leads-cli/pkg/sheets"
)

// SheetsSource loads the lead table from a Google Sheets worksheet.
type SheetsSource struct {
	client        sheets.Client
	spreadsheetID string
	worksheet     string
	retry         resilience.RetryConfig
}

// NewSheetsSource creates a Google Sheets source. retry defaults to a single
// attempt when zero-valued.
func NewSheetsSource(client sheets.Client, spreadsheetID, worksheet string, retry resilience.RetryConfig) *SheetsSource {
	return &SheetsSource{
		client:        client,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		retry:         retry,
	}
}

// Load fetches all worksheet values and converts them to a Table.
func (s *SheetsSource) Load(ctx context.Context) (*Table, error) {
	var vr *sheets.ValueRange
	err := resilience.Do(ctx, s.retry, func(ctx context.Context) error {
		var err error
		vr, err = s.client.Values(ctx, s.spreadsheetID, s.worksheet)
		return err
	})
	if err != nil {
		switch {
		case eris.Is(err, sheets.ErrUnauthorized):
			return nil, eris.Wrapf(ErrAuthentication, "spreadsheet %s", s.spreadsheetID)
		case eris.Is(err, sheets.ErrNotFound):
			return nil, eris.Wrapf(ErrNotFound, "spreadsheet %s worksheet %s", s.spreadsheetID, s.worksheet)
		default:
			return nil, eris.Wrap(err, "source: load sheet values")
		}
	}

	records := make([][]string, len(vr.Values))
	for i, cells := range vr.Values {
		rec := make([]string, len(cells))
		for j, cell := range cells {
			rec[j] = cellString(cell)
		}
		records[i] = rec
	}

	t, err := tableFromRecords(records)
	if err != nil {
		return nil, err
	}

	zap.L().Info("source: loaded sheet",
		zap.String("spreadsheet_id", s.spreadsheetID),
		zap.String("worksheet", s.worksheet),
		zap.Int("rows", len(t.Rows)),
	)

	return t, nil
}

// cellString renders a JSON cell value the way the sheet displays it.
// Whole numbers come back as float64 and must not grow a ".000000" suffix.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		if c == float64(int64(c)) {
			return fmt.Sprintf("%d", int64(c))
		}
		return fmt.Sprintf("%g", c)
	case bool:
		return fmt.Sprintf("%t", c)
	default:
		return fmt.Sprintf("%v", c)
	}
}
