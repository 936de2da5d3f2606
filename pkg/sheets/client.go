// Package sheets is a minimal Google Sheets v4 values API client.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// Sentinel errors mapped from API status codes.
var (
	// ErrUnauthorized indicates rejected credentials (401/403).
	ErrUnauthorized = eris.New("sheets: unauthorized")
	// ErrNotFound indicates a missing spreadsheet or worksheet (400/404).
	ErrNotFound = eris.New("sheets: not found")
)

// Client performs Google Sheets read operations.
type Client interface {
	// Values fetches all cell values of the given worksheet.
	Values(ctx context.Context, spreadsheetID, worksheet string) (*ValueRange, error)
}

// ValueRange is the values API response.
type ValueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithToken authenticates with an OAuth bearer token instead of an API key.
func WithToken(token string) Option {
	return func(c *httpClient) {
		c.token = token
	}
}

// WithRateLimit throttles requests to stay inside the Sheets API read quota.
func WithRateLimit(perSec float64) Option {
	return func(c *httpClient) {
		if perSec > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	token   string
	baseURL string
	limiter *rate.Limiter
	http    *http.Client
}

// NewClient creates a Google Sheets API client. apiKey may be empty when a
// bearer token is supplied via WithToken.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Values(ctx context.Context, spreadsheetID, worksheet string) (*ValueRange, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "sheets: rate limit wait")
		}
	}

	// The worksheet title alone is a valid A1 range covering the whole sheet.
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(worksheet))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: build request")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: fetch values")
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, eris.Wrapf(ErrUnauthorized, "spreadsheet %s: status %d", spreadsheetID, resp.StatusCode)
	case http.StatusNotFound:
		return nil, eris.Wrapf(ErrNotFound, "spreadsheet %s", spreadsheetID)
	case http.StatusBadRequest:
		// The values API reports an unknown worksheet title as 400.
		return nil, eris.Wrapf(ErrNotFound, "spreadsheet %s worksheet %s", spreadsheetID, worksheet)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("sheets: fetch values: status %d: %s", resp.StatusCode, string(body))
	}

	var vr ValueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, eris.Wrap(err, "sheets: decode response")
	}

	return &vr, nil
}
