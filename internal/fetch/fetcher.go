// Package fetch retrieves the cosmetics catalog from the remote API.
//
// The client is read-only: one GET for the full catalog, and one GET per
// set lookup. Every call respects context cancellation, so a superseded
// request can be abandoned by cancelling its context.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public cosmetics API.
const DefaultBaseURL = "https://fortnite-api.com"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Options configures a Client. Zero values take defaults.
type Options struct {
	BaseURL       string
	Language      string
	Timeout       time.Duration
	RatePerSecond float64 // request pacing; <= 0 disables the limiter
}

// Client fetches catalog data. Safe for concurrent use.
type Client struct {
	baseURL  string
	language string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		language: opts.Language,
		client:   &http.Client{Timeout: opts.Timeout},
		limiter:  limiter,
	}
}

type requestIDKey struct{}

// NewRequestID returns a fresh correlation ID for a fetch.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID attaches a request ID that is sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the ID attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Catalog fetches every cosmetic in one call.
func (c *Client) Catalog(ctx context.Context) (catalog.Result, error) {
	return c.get(ctx, "catalog", "/v2/cosmetics/br", url.Values{})
}

// Set fetches the cosmetics belonging to the named set.
func (c *Client) Set(ctx context.Context, name string) (catalog.Result, error) {
	if strings.TrimSpace(name) == "" {
		return catalog.Result{}, fmt.Errorf("fetch set: empty set name")
	}
	return c.get(ctx, "set", "/v2/cosmetics/br/search/all", url.Values{"set": {name}})
}

// get performs one lookup; op names it in errors.
func (c *Client) get(ctx context.Context, op, path string, query url.Values) (catalog.Result, error) {
	if ctx.Err() != nil {
		return catalog.Result{}, ctx.Err()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return catalog.Result{}, err
	}

	query.Set("language", c.language)
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return catalog.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", "locker/0.1 (https://github.com/abelbrown/locker)")
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return catalog.Result{}, ctx.Err()
		}
		return catalog.Result{}, fmt.Errorf("failed to fetch %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return catalog.Result{}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	res, err := catalog.Decode(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return catalog.Result{}, ctx.Err()
		}
		return catalog.Result{}, err
	}
	return res, nil
}
