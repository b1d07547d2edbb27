// Package ingest talks to SEC EDGAR: the submissions and XBRL facts APIs on
// data.sec.gov and the filing archives on www.sec.gov. It owns rate limiting,
// the SEC-required User-Agent identity, and bounded retries; the extraction
// pipeline in pkg/core/edgar consumes it through a narrow fetch interface.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Endpoints holds the SEC base URLs. Overridable for tests.
type Endpoints struct {
	Archives string // filing documents, https://www.sec.gov/Archives/edgar/data
	Data     string // submissions + facts APIs, https://data.sec.gov
	Files    string // static files such as company_tickers.json
}

// DefaultEndpoints returns the production SEC EDGAR endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Archives: "https://www.sec.gov/Archives/edgar/data",
		Data:     "https://data.sec.gov",
		Files:    "https://www.sec.gov/files",
	}
}

// Client is a rate-limited HTTP client for SEC EDGAR. SEC guidelines cap
// automated traffic at 10 requests per second and require a User-Agent that
// identifies the caller; both are enforced here so callers cannot forget.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	cache      *DocumentCache
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithUserAgent sets the SEC-required identity, e.g. "Jane Doe jane@example.com".
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit overrides the requests-per-second cap.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithMaxRetries overrides the retry budget for rate-limited requests.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithEndpoints overrides the SEC base URLs.
func WithEndpoints(e Endpoints) ClientOption {
	return func(c *Client) { c.endpoints = e }
}

// WithCache attaches an on-disk cache for fetched filing documents.
func WithCache(cache *DocumentCache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates an EDGAR client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoints:  DefaultEndpoints(),
		userAgent:  "edgar_scraper admin@example.com",
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one rate-limited GET with bounded retries on 429 responses.
// The sleep grows linearly with the attempt count, mirroring SEC's guidance
// to back off rather than hammer.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	requestID := uuid.NewString()

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "ingest: rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: build request for %s", url)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json, text/html, application/xml")

		zap.L().Debug("ingest: GET",
			zap.String("url", url),
			zap.String("request_id", requestID),
			zap.Int("attempt", attempt+1))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: GET %s", url)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			wait := time.Duration(attempt+1) * time.Second
			zap.L().Warn("ingest: rate limited by SEC, backing off",
				zap.String("url", url),
				zap.String("request_id", requestID),
				zap.Duration("wait", wait))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, eris.Errorf("ingest: GET %s returned HTTP %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read response body for %s", url)
		}
		return body, nil
	}

	return nil, eris.Errorf("ingest: retry budget exhausted for %s", url)
}

// FetchFilingSummary retrieves a filing's FilingSummary.xml manifest.
func (c *Client) FetchFilingSummary(ctx context.Context, cik, accession string) ([]byte, error) {
	return c.FetchFilingDocument(ctx, cik, accession, "FilingSummary.xml")
}

// FetchFilingDocument retrieves one rendered document from a filing's archive
// directory, consulting the document cache when one is attached.
func (c *Client) FetchFilingDocument(ctx context.Context, cik, accession, name string) ([]byte, error) {
	accession = strings.ReplaceAll(accession, "-", "")
	if c.cache != nil {
		if body, ok := c.cache.Get(cik, accession, name); ok {
			return body, nil
		}
	}

	url := fmt.Sprintf("%s/%s/%s/%s", c.endpoints.Archives, strings.TrimLeft(cik, "0"), accession, name)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(cik, accession, name, body); err != nil {
			zap.L().Warn("ingest: cache write failed", zap.Error(err))
		}
	}
	return body, nil
}
