// Package client fetches leaderboard pages from the backend's HTTP endpoint.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkoosis/podium/internal/metrics"
	"github.com/dkoosis/podium/internal/version"
	"github.com/dkoosis/podium/pkg/leaderboard"
)

// DefaultTimeout bounds a single request when the caller configures none.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is decoded.
const maxBody = 4 << 20

var (
	// ErrInvalidPage is returned for page numbers below 1; such requests are never sent.
	ErrInvalidPage = errors.New("page must be at least 1")
	// ErrDecode wraps malformed response bodies.
	ErrDecode = errors.New("malformed leaderboard response")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Observer receives the outcome of every fetch.
type Observer interface {
	ObserveFetch(outcome string, d time.Duration)
}

// Fetcher is the contract the interactive board depends on.
type Fetcher interface {
	Fetch(ctx context.Context, page int, query string) (*leaderboard.Page, error)
}

// Client talks to {baseURL}/leaderboard.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver reports fetch outcomes, typically to a metrics.Recorder.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: backend url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("client: backend url %q has no host", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL builds the request URL for page and query.
func (c *Client) URL(page int, query string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/leaderboard"
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(leaderboard.PageSize))
	v.Set("q", query)
	u.RawQuery = v.Encode()
	return u.String()
}

// Fetch retrieves one page of the leaderboard.
func (c *Client) Fetch(ctx context.Context, page int, query string) (*leaderboard.Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqID := uuid.NewString()
	log := c.logger.With("request_id", reqID, "page", page, "query", query)
	start := time.Now()

	p, outcome, err := c.do(ctx, reqID, page, query)
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveFetch(outcome, elapsed)
	}
	if err != nil {
		log.WarnContext(ctx, "leaderboard fetch failed", "outcome", outcome, "duration", elapsed, "error", err)
		return nil, err
	}
	log.DebugContext(ctx, "leaderboard fetched", "entries", len(p.Entries), "total", p.Total, "duration", elapsed)
	return p, nil
}

func (c *Client) do(ctx context.Context, reqID string, page int, query string) (*leaderboard.Page, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(page, query), nil)
	if err != nil {
		return nil, metrics.OutcomeTransport, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, metrics.OutcomeCanceled, err
		}
		return nil, metrics.OutcomeTransport, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, metrics.OutcomeStatus, &StatusError{Code: resp.StatusCode}
	}

	var p leaderboard.Page
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&p); err != nil {
		return nil, metrics.OutcomeDecode, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &p, metrics.OutcomeOK, nil
}

// transportError unwraps *url.Error so the message names the underlying failure
// rather than repeating the method and URL.
func transportError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
