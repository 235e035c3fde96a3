// ABOUTME: Client for assistant backends exposing the chat and cancel JSON API
// ABOUTME: Owns base URL, header policy, and lazily created sync/async HTTP transports

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects which execution path a request takes.
type Mode int

const (
	// ModeSync blocks the calling goroutine until the response arrives.
	ModeSync Mode = iota
	// ModeAsync runs header resolution and the HTTP call on a separate goroutine.
	ModeAsync
)

func (m Mode) String() string {
	switch m {
	case ModeSync:
		return "sync"
	case ModeAsync:
		return "async"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Result is the single value delivered by an asynchronous call.
type Result struct {
	Response *http.Response
	Err      error
}

// TransportOption is applied to every http.Client the Client creates.
type TransportOption func(*http.Client)

// WithRoundTripper sets the http.RoundTripper used by created transports.
func WithRoundTripper(rt http.RoundTripper) TransportOption {
	return func(hc *http.Client) {
		hc.Transport = rt
	}
}

// WithCookieJar sets the cookie jar used by created transports.
func WithCookieJar(jar http.CookieJar) TransportOption {
	return func(hc *http.Client) {
		hc.Jar = jar
	}
}

// WithCheckRedirect sets the redirect policy used by created transports.
func WithCheckRedirect(fn func(req *http.Request, via []*http.Request) error) TransportOption {
	return func(hc *http.Client) {
		hc.CheckRedirect = fn
	}
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHeaders sets the header source consulted on every request.
func WithHeaders(src HeaderSource) Option {
	return func(c *Client) {
		c.headers = src
	}
}

// WithTimeout sets the per-request timeout of created transports. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransportOptions appends options forwarded to every created http.Client.
func WithTransportOptions(opts ...TransportOption) Option {
	return func(c *Client) {
		c.transport = append(c.transport, opts...)
	}
}

// WithLogger sets the logger used for request tracing. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to an assistant backend. Configuration is fixed at construction;
// the two transports are created on first use and released by Close and CloseSync.
//
// A Client is not safe for concurrent first use: two goroutines racing on the
// first request of the same mode may each create a transport.
type Client struct {
	baseURL   string
	headers   HeaderSource
	timeout   time.Duration
	transport []TransportOption
	logger    *slog.Logger

	syncHTTP  *http.Client
	asyncHTTP *http.Client
}

// NewClient creates a Client for the backend at baseURL. No connection is opened.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the backend URL with trailing slashes removed.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Thread returns a handle bound to the given thread ID.
func (c *Client) Thread(threadID string) *Thread {
	return &Thread{client: c, id: threadID}
}

// NewThread returns a handle bound to a freshly generated thread ID.
func (c *Client) NewThread() *Thread {
	return c.Thread(uuid.New().String())
}

// Request sends a JSON request and blocks until the response arrives.
// A nil body, including a typed nil map, slice, or pointer, sends no body.
// On a 2xx status the raw response is returned and the caller must close its body.
func (c *Client) Request(ctx context.Context, method, path string, body any, extraHeaders map[string]string) (*http.Response, error) {
	headers, err := resolveHeaders(ctx, c.headers, ModeSync)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, c.ensureSyncHTTP(), ModeSync, method, path, body, headers, extraHeaders)
}

// RequestAsync sends a JSON request on its own goroutine. The returned channel
// receives exactly one Result and is then closed. Cancelling ctx aborts the call.
func (c *Client) RequestAsync(ctx context.Context, method, path string, body any, extraHeaders map[string]string) <-chan Result {
	out := make(chan Result, 1)
	hc := c.ensureAsyncHTTP()

	go func() {
		defer close(out)

		headers, err := resolveHeaders(ctx, c.headers, ModeAsync)
		if err != nil {
			out <- Result{Err: err}
			return
		}

		resp, err := c.send(ctx, hc, ModeAsync, method, path, body, headers, extraHeaders)
		out <- Result{Response: resp, Err: err}
	}()

	return out
}

// Close releases the asynchronous transport. A later async call recreates it.
func (c *Client) Close() error {
	if c.asyncHTTP != nil {
		c.asyncHTTP.CloseIdleConnections()
		c.asyncHTTP = nil
	}
	return nil
}

// CloseSync releases the synchronous transport. A later sync call recreates it.
func (c *Client) CloseSync() error {
	if c.syncHTTP != nil {
		c.syncHTTP.CloseIdleConnections()
		c.syncHTTP = nil
	}
	return nil
}

func (c *Client) ensureSyncHTTP() *http.Client {
	if c.syncHTTP == nil {
		c.syncHTTP = c.newHTTPClient()
	}
	return c.syncHTTP
}

func (c *Client) ensureAsyncHTTP() *http.Client {
	if c.asyncHTTP == nil {
		c.asyncHTTP = c.newHTTPClient()
	}
	return c.asyncHTTP
}

func (c *Client) newHTTPClient() *http.Client {
	hc := &http.Client{Timeout: c.timeout}
	for _, opt := range c.transport {
		if opt != nil {
			opt(hc)
		}
	}
	return hc
}

// send issues the HTTP call. Extra headers are applied after the resolved ones
// so they win on collision.
func (c *Client) send(
	ctx context.Context,
	hc *http.Client,
	mode Mode,
	method, path string,
	body any,
	headers, extraHeaders map[string]string,
) (*http.Response, error) {
	var reader io.Reader
	if !isNil(body) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Debug("sending request",
		"mode", mode,
		"method", method,
		"path", path,
	)

	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"mode", mode,
			"method", method,
			"path", path,
			"error", err,
		)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := newHTTPError(resp)
		c.logger.Debug("request rejected",
			"mode", mode,
			"method", method,
			"path", path,
			"status", httpErr.StatusCode,
		)
		return nil, httpErr
	}

	return resp, nil
}
