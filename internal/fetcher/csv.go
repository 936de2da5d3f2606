package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter rune // default ','
	Comment   rune // comment character (0 = none)
	// Encoding optionally names the source charset (e.g. "windows-1252").
	// Spreadsheet exports from desktop tools are often not UTF-8.
	Encoding   string
	LazyQuotes bool
	TrimSpace  bool
}

// ReadCSV reads all CSV records from r. Rows may have varying field counts;
// the caller is responsible for aligning them against the header row.
func ReadCSV(r io.Reader, opts CSVOptions) ([][]string, error) {
	if opts.Encoding != "" {
		enc, err := htmlindex.Get(opts.Encoding)
		if err != nil {
			return nil, eris.Wrapf(err, "csv: unknown encoding %q", opts.Encoding)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read record")
		}

		if opts.TrimSpace {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}

		rows = append(rows, record)
	}

	return rows, nil
}
