// Package notion is a client for the Notion REST API. One logical call per
// Do invocation: auth headers attached, transient failures retried with
// linear backoff, failures normalized into a single classified Error type.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"

	defaultMaxRetries  = 3
	defaultBackoffBase = 1 * time.Second
	defaultTimeout     = 30 * time.Second
)

// Client issues authenticated calls against one API base URL. Credentials
// are fixed at construction and never mutated, so a single instance is safe
// for concurrent use.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	token   string
	version string

	maxRetries  uint64
	backoffBase time.Duration
	timeout     time.Duration

	log   zerolog.Logger
	timer backoff.Timer // nil means real clock
}

// RequestOptions carries the optional parts of a call. Query is appended as
// a query string (GET only); Body is serialized to JSON (POST/PATCH only).
type RequestOptions struct {
	Query map[string]string
	Body  any
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithMaxRetries sets how many additional attempts follow a retryable
// failure. Zero disables retries entirely.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoffBase sets the base delay d; retry i waits d×i.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Client) { c.backoffBase = d }
}

// WithTimeout bounds each individual attempt, not the whole logical call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client for the given bearer token and API-version string.
// An empty version falls back to DefaultVersion; an empty token is a
// configuration error.
func New(token, version string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("notion: token required")
	}
	if version == "" {
		version = DefaultVersion
	}
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:        http.DefaultClient,
		baseURL:     u,
		token:       token,
		version:     version,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		timeout:     defaultTimeout,
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

var methods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Do performs one logical call and returns the raw JSON body of the first
// 2xx response. Retryable failures (429, 5xx, transport errors) are retried
// up to maxRetries additional attempts; the error of the final attempt is
// returned after exhaustion. Non-retryable statuses fail on the first
// attempt. Exactly one result or one error per call.
func (c *Client) Do(ctx context.Context, method, p string, opts *RequestOptions) (json.RawMessage, error) {
	if !methods[method] {
		return nil, fmt.Errorf("notion: unsupported method %q", method)
	}
	if opts == nil {
		opts = &RequestOptions{}
	}
	if len(opts.Query) > 0 && method != http.MethodGet {
		return nil, fmt.Errorf("notion: query parameters are only valid on GET, got %s", method)
	}
	if opts.Body != nil && method != http.MethodPost && method != http.MethodPatch {
		return nil, fmt.Errorf("notion: request body is only valid on POST or PATCH, got %s", method)
	}

	var body []byte
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("notion: encode body: %w", err)
		}
		body = b
	}

	target := c.resolve(p, opts.Query)

	var out json.RawMessage
	op := func() error {
		raw, err := c.attempt(ctx, method, target, body)
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) && !apiErr.Retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		out = raw
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{base: c.backoffBase}, c.maxRetries),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		c.log.Debug().
			Str("method", method).
			Str("path", p).
			Dur("wait", wait).
			Err(err).
			Msg("retrying request")
	}
	if err := backoff.RetryNotifyWithTimer(op, policy, notify, c.timer); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) resolve(p string, query map[string]string) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// attempt performs one HTTP round trip under the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, method, target string, body []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, fmt.Errorf("notion: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(c.redact(err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(c.redact(err.Error()))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, classify(resp.StatusCode, raw)
}

// redact scrubs the credential from diagnostic text. Transport errors echo
// request details and must never leak the token to logs or callers.
func (c *Client) redact(s string) string {
	return strings.ReplaceAll(s, c.token, "[redacted]")
}
