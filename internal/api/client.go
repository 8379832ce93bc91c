// Package api is the HTTP adapter between the client state and the
// lost-and-found backend. Every request carries the persisted bearer token,
// and any 401 tears the session down regardless of which caller issued it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/logger"
	"github.com/erazemk/najdeno/internal/metrics"
	"github.com/erazemk/najdeno/internal/store"
)

// DefaultLoginPath is where the adapter navigates after a 401.
const DefaultLoginPath = "/login"

const (
	defaultEventBuffer = 16
	maxErrorBody       = 64 << 10
)

// Navigator performs view navigation on behalf of the adapter.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// EventKind identifies a session event.
type EventKind int

// Session event kinds.
const (
	EventUnauthorized EventKind = iota + 1
)

func (k EventKind) String() string {
	switch k {
	case EventUnauthorized:
		return "unauthorized"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is published when the adapter changes the session out of band.
type Event struct {
	Kind   EventKind
	Method string
	Path   string
	Status int
	At     time.Time
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://127.0.0.1:10000".
	BaseURL string
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	// Tokens holds the persisted session token. Required.
	Tokens store.TokenStore
	// Navigator is told to show LoginPath after a 401. Optional.
	Navigator Navigator
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	// LoginPath defaults to DefaultLoginPath.
	LoginPath string
	// EventBuffer is the capacity of the event channel.
	EventBuffer int
}

// Client talks to the backend. Safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    store.TokenStore
	nav       Navigator
	log       *zap.Logger
	metrics   *metrics.Metrics
	loginPath string
	events    chan Event
	persisted string
}

// New creates a Client. The persisted token is read once here so callers can
// see what the adapter started with; it is read again on every request.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("api: token store is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg.Logger = logger.OrNop(cfg.Logger)
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		http:      cfg.HTTPClient,
		tokens:    cfg.Tokens,
		nav:       cfg.Navigator,
		log:       cfg.Logger.Named("api"),
		metrics:   cfg.Metrics,
		loginPath: cfg.LoginPath,
		events:    make(chan Event, cfg.EventBuffer),
	}

	token, err := cfg.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading persisted token: %w", err)
	}
	c.persisted = token
	c.log.Debug("adapter ready", zap.String("base_url", c.baseURL), zap.Bool("token", token != ""))
	return c, nil
}

// PersistedToken returns the token that was stored when the client was built.
func (c *Client) PersistedToken() string { return c.persisted }

// Events returns the channel session events are published on.
func (c *Client) Events() <-chan Event { return c.events }

// do sends an intercepted, authenticated request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, false)
}

// doRaw sends a request without the bearer token and without 401 handling.
// Used for login and register, where a 401 means bad credentials.
func (c *Client) doRaw(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, raw bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Method: method, Path: path, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !raw {
		if token := c.token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, 0)
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(method, resp.StatusCode)

	if !raw && resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized(ctx, method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// token returns the current persisted token. A failing store is logged and
// treated as no token; the server decides whether that is acceptable.
func (c *Client) token(ctx context.Context) string {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Error("reading persisted token", zap.Error(err))
		return ""
	}
	return token
}

// unauthorized tears the session down after a 401.
func (c *Client) unauthorized(ctx context.Context, method, path string) {
	c.log.Warn("unauthorized response, token is invalid or expired; logging out",
		zap.String("method", method), zap.String("path", path))

	if err := c.tokens.ClearToken(context.WithoutCancel(ctx)); err != nil {
		c.log.Error("purging persisted token", zap.Error(err))
	}
	c.metrics.ObserveTeardown()

	if c.nav != nil {
		c.nav.Navigate(c.loginPath)
	}

	ev := Event{
		Kind:   EventUnauthorized,
		Method: method,
		Path:   path,
		Status: http.StatusUnauthorized,
		At:     time.Now(),
	}
	select {
	case c.events <- ev:
	default:
		c.log.Info("session event dropped, a teardown is already pending")
	}
}
