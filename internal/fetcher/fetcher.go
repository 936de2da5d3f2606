// Package fetcher reads tabular lead data from CSV, XLSX, and HTTP sources.
package fetcher

import (
	"context"
	"io"
)

// Downloader fetches remote workbook files.
type Downloader interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
