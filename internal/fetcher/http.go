package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/metwiz/leads-cli/internal/resilience"
)

// HTTPOptions configures the HTTP downloader.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RatePerSec throttles requests to the workbook host (0 = unlimited).
	RatePerSec float64
}

// HTTPFetcher downloads workbook files over HTTP with rate limiting.
// Server errors are marked transient so callers may wrap loads in
// resilience.Do.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewHTTPFetcher creates an HTTP downloader.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), 1)
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: opts.UserAgent,
	}
}

// Download fetches the URL and returns the response body.
func (f *HTTPFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "http: rate limit wait")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "http: build request for %s", url)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "http: fetch %s", url)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() //nolint:errcheck
		err := eris.Errorf("http: fetch %s: status %d", url, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	zap.L().Debug("fetcher: downloaded workbook",
		zap.String("url", url),
		zap.Int64("content_length", resp.ContentLength),
	)

	return resp.Body, nil
}
