package source

import (
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/metwiz/leads-cli/internal/fetcher"
	"github.com/metwiz/leads-cli/internal/resilience"
)

// FileSource loads the lead table from an XLSX or CSV workbook, either on
// the local filesystem or behind an http(s) URL.
type FileSource struct {
	path       string
	worksheet  string
	encoding   string
	downloader fetcher.Downloader
	retry      resilience.RetryConfig
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithWorksheet selects a named sheet inside an XLSX workbook.
func WithWorksheet(name string) FileOption {
	return func(s *FileSource) {
		s.worksheet = name
	}
}

// WithEncoding names the charset of a CSV file.
func WithEncoding(encoding string) FileOption {
	return func(s *FileSource) {
		s.encoding = encoding
	}
}

// WithDownloader overrides the HTTP downloader used for remote paths.
func WithDownloader(d fetcher.Downloader) FileOption {
	return func(s *FileSource) {
		s.downloader = d
	}
}

// WithRetry enables load retries for remote paths.
func WithRetry(retry resilience.RetryConfig) FileOption {
	return func(s *FileSource) {
		s.retry = retry
	}
}

// NewFileSource creates a workbook file source. The format is inferred from
// the path extension (.xlsx or .csv).
func NewFileSource(filePath string, opts ...FileOption) *FileSource {
	s := &FileSource{path: filePath}
	for _, o := range opts {
		o(s)
	}
	if s.downloader == nil {
		s.downloader = fetcher.NewHTTPFetcher(fetcher.HTTPOptions{UserAgent: "leads-cli"})
	}
	return s
}

// Load reads the workbook and converts it to a Table.
func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	var records [][]string
	var err error

	switch strings.ToLower(path.Ext(s.path)) {
	case ".xlsx":
		records, err = s.loadXLSX(ctx)
	case ".csv":
		records, err = s.loadCSV(ctx)
	default:
		return nil, eris.Errorf("source: unsupported workbook extension %q", path.Ext(s.path))
	}
	if err != nil {
		return nil, err
	}

	t, err := tableFromRecords(records)
	if err != nil {
		return nil, err
	}

	zap.L().Info("source: loaded workbook",
		zap.String("path", s.path),
		zap.Int("rows", len(t.Rows)),
	)

	return t, nil
}

func (s *FileSource) loadXLSX(ctx context.Context) ([][]string, error) {
	opts := fetcher.XLSXOptions{SheetName: s.worksheet}

	if s.isRemote() {
		data, err := s.download(ctx)
		if err != nil {
			return nil, err
		}
		return fetcher.ReadXLSXBytes(data, opts)
	}

	records, err := fetcher.ReadXLSX(s.path, opts)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "workbook %s", s.path)
		}
		return nil, err
	}
	return records, nil
}

func (s *FileSource) loadCSV(ctx context.Context) ([][]string, error) {
	var r io.Reader

	if s.isRemote() {
		data, err := s.download(ctx)
		if err != nil {
			return nil, err
		}
		r = strings.NewReader(string(data))
	} else {
		f, err := os.Open(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, eris.Wrapf(ErrNotFound, "workbook %s", s.path)
			}
			return nil, eris.Wrapf(err, "source: open %s", s.path)
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	return fetcher.ReadCSV(r, fetcher.CSVOptions{Encoding: s.encoding, TrimSpace: true})
}

func (s *FileSource) isRemote() bool {
	return strings.HasPrefix(s.path, "http://") || strings.HasPrefix(s.path, "https://")
}

func (s *FileSource) download(ctx context.Context) ([]byte, error) {
	var data []byte
	err := resilience.Do(ctx, s.retry, func(ctx context.Context) error {
		body, err := s.downloader.Download(ctx, s.path)
		if err != nil {
			return err
		}
		defer body.Close() //nolint:errcheck
		data, err = io.ReadAll(body)
		return err
	})
	if err != nil {
		return nil, eris.Wrapf(err, "source: download %s", s.path)
	}
	return data, nil
}
