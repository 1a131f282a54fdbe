// Package sparql sends queries to a SPARQL endpoint over HTTP and returns the
// result bindings.
package sparql

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/parser"
)

const (
	DefaultEndpoint  = "https://query.wikidata.org/sparql"
	DefaultUserAgent = "protscope/1.0 (https://github.com/protscope/core)"
	ResultsMediaType = "application/sparql-results+json"
)

// TransportError is a failed round trip: either a non-success status or a
// connection failure, in which case StatusCode is 0.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("sparql endpoint unreachable: %v", e.Err)
	}
	return fmt.Sprintf("sparql endpoint returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Options struct {
	Endpoint  string
	UserAgent string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
}

type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
	log       *zap.Logger
}

func New(opts Options, log *zap.Logger) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		endpoint:  opts.Endpoint,
		userAgent: opts.UserAgent,
		http:      &http.Client{Timeout: opts.Timeout},
		log:       log,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Select runs query and returns its bindings. A response that is not a SPARQL
// JSON result set is logged and treated as zero bindings.
func (c *Client) Select(ctx context.Context, query string) ([]models.Binding, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	params := u.Query()
	params.Set("query", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", ResultsMediaType)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Warn("sparql request failed",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	bindings, err := parser.ParseResults(body)
	if errors.Is(err, parser.ErrMalformedResponse) {
		c.log.Warn("degrading malformed sparql response to empty result",
			zap.Error(err),
			zap.Int("bytes", len(body)),
		)
		return []models.Binding{}, nil
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("sparql request done",
		zap.Int("bindings", len(bindings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return bindings, nil
}

// Rows runs query and normalizes its bindings.
func (c *Client) Rows(ctx context.Context, query string) ([]models.ResultRow, error) {
	bindings, err := c.Select(ctx, query)
	if err != nil {
		return nil, err
	}
	return parser.Normalize(bindings), nil
}
