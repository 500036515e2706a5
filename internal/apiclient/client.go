// Package apiclient is the single point through which the console talks to
// the hospital API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/otcheredev/hospital-console/internal/metrics"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/rs/zerolog/log"
)

// Client performs JSON requests against the hospital API. It never retries
// and never caches; every call is a fresh round trip bounded only by the
// caller's context.
type Client struct {
	http  *resty.Client
	store store.Store

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithStore sets the persisted store the bearer token falls back to
func WithStore(s store.Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).
			SetBaseURL(c.http.BaseURL).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json")
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone returns a client sharing the transport and store but with no
// explicit token of its own.
func (c *Client) Clone() *Client {
	return &Client{http: c.http, store: c.store}
}

// CloneWithStore is Clone bound to a different persisted store
func (c *Client) CloneWithStore(s store.Store) *Client {
	return &Client{http: c.http, store: s}
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// SetToken sets the bearer token used by subsequent requests. An empty
// token reverts to the persisted one.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Get fetches path and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post sends body to path and decodes the JSON response into out
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put sends body to path and decodes the JSON response into out
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete removes the resource at path. The response body is ignored.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	raw := resp.Body()
	parseErr := func(cause error) error {
		return &ParseError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       string(raw),
			Err:        cause,
		}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return parseErr(errEmptyBody)
	}
	if out == nil {
		if !json.Valid(raw) {
			return parseErr(errors.New("invalid JSON"))
		}
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return parseErr(errNullBody)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return parseErr(err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	token, err := c.resolveToken(ctx)
	if err != nil {
		return nil, err
	}

	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	elapsed := time.Since(start)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("failed to execute %s %s: %w", method, path, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Inc()
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", elapsed).
		Msg("Hospital API call")

	if !resp.IsSuccess() {
		return nil, &TransportError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}
	return resp, nil
}

// resolveToken prefers the explicit token, then the persisted one
func (c *Client) resolveToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token != "" || c.store == nil {
		return token, nil
	}

	token, err := c.store.Get(ctx, store.KeyAuthToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read persisted token: %w", err)
	}
	return token, nil
}
