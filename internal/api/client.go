package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/logger"
)

// Notifier surfaces a blocking notice to the user
type Notifier interface {
	Notify(text string)
}

// NotifierFunc adapts a plain function to Notifier
type NotifierFunc func(text string)

func (f NotifierFunc) Notify(text string) { f(text) }

// Client is the single point through which the dashboard talks to the habit API.
// It always sends the session cookie, and it is the only place that observes
// network failures and 401s.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     *sessionJar
	timeout time.Duration

	mu             sync.RWMutex
	notifier       Notifier
	onUnauthorized []func()
	// generation counts session teardowns and reseeds; a 401 on a request
	// sent under an older generation has already been handled
	generation uint64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying transport. Its Jar is overwritten.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.http = &copied
	}
}

// WithNotifier sets where blocking notices go
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithTimeout bounds every request. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		jar:     newSessionJar(),
		timeout: time.Duration(constants.DefaultRequestTimeoutSec) * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Jar = c.jar
	return c, nil
}

// BaseURL returns the API root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetNotifier replaces the notice sink
func (c *Client) SetNotifier(n Notifier) {
	c.mu.Lock()
	c.notifier = n
	c.mu.Unlock()
}

// OnUnauthorized registers a hook run whenever the server answers 401
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
	c.mu.Unlock()
}

// Cookies returns the session cookies currently held for the API
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.baseURL)
}

// SetCookies seeds the jar, typically with a session restored from the keyring
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.jar.SetCookies(c.baseURL, cookies)
}

// ResetCookies drops the session cookie
func (c *Client) ResetCookies() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.jar.Reset()
}

func (c *Client) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Do sends a JSON request and returns the raw JSON body.
// On 401 it runs the unauthorized hooks, raises a notice, and returns
// ErrSessionExpired. Concurrent 401s for the same session tear it down once. On a network failure it raises a notice and returns
// ErrServerUnreachable. Any other status is returned verbatim.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.RequestIDHeader, requestID)

	generation := c.currentGeneration()
	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, c.unreachable(ctx, method, path, requestID, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.unreachable(ctx, method, path, requestID, err)
	}

	logger.Debug("api request",
		"method", method,
		"path", path,
		"status", res.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if res.StatusCode == http.StatusUnauthorized {
		c.expire(path, raw, generation)
		return nil, ErrSessionExpired
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %s %s returned %d with a non-JSON body", ErrMalformedResponse, method, path, res.StatusCode)
	}
	return raw, nil
}

func (c *Client) unreachable(ctx context.Context, method, path, requestID string, err error) error {
	// A caller that walked away (TUI quitting) is not a server problem
	if errors.Is(err, context.Canceled) && ctx.Err() == context.Canceled {
		logger.Debug("api request canceled", "method", method, "path", path, "request_id", requestID)
		return fmt.Errorf("%w: %w", ErrNoData, err)
	}

	logger.Warn("api unreachable", "method", method, "path", path, "request_id", requestID, "error", err)
	c.notify(fmt.Sprintf(constants.NoticeServerUnreachable, c.BaseURL()))
	return fmt.Errorf("%w: %v", ErrServerUnreachable, err)
}

func (c *Client) expire(path string, raw []byte, generation uint64) {
	text := constants.NoticeSessionExpired
	// Login and register run without a session, so a 401 there is a credential
	// rejection worth showing as-is. Teardown still happens.
	if path == constants.PathLogin || path == constants.PathRegister {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &msg); err == nil && msg.Message != "" {
			text = fmt.Sprintf(constants.NoticeLoginFailed, msg.Message)
		}
	}

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		logger.Debug("api unauthorized after teardown", "path", path)
		return
	}
	c.generation++
	hooks := make([]func(), len(c.onUnauthorized))
	copy(hooks, c.onUnauthorized)
	c.mu.Unlock()

	logger.Warn("api unauthorized", "path", path)
	c.jar.Reset()
	for _, fn := range hooks {
		fn()
	}
	c.notify(text)
}

func (c *Client) notify(text string) {
	c.mu.RLock()
	n := c.notifier
	c.mu.RUnlock()
	if n != nil {
		n.Notify(text)
	}
}
