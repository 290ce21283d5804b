package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/keyring"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
)

// State is the login state of the dashboard
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

// Client is the subset of the API client the controller drives
type Client interface {
	Status(ctx context.Context) (models.Status, error)
	Login(ctx context.Context, creds models.Credentials) (api.Outcome, error)
	Register(ctx context.Context, creds models.Credentials) (api.Outcome, error)
	Cookies() []*http.Cookie
	SetCookies(cookies []*http.Cookie)
	ResetCookies()
	OnUnauthorized(fn func())
}

// Persister keeps the session cookie between runs
type Persister interface {
	Load() ([]*http.Cookie, error)
	Save(cookies []*http.Cookie) error
	Clear() error
}

// Controller owns the "is a user logged in" state. The state is derived only
// from server responses and is replaced wholesale, never patched.
type Controller struct {
	client Client
	store  Persister

	mu      sync.RWMutex
	current models.Session
	onReset []func()
}

// New creates a controller and subscribes it to the client's 401 handling.
// store may be nil, in which case the session lives only in memory.
func New(client Client, store Persister) *Controller {
	c := &Controller{client: client, store: store}
	client.OnUnauthorized(c.Expire)
	return c
}

// Session returns the current session snapshot
func (c *Controller) Session() models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// State reports LoggedIn or LoggedOut
func (c *Controller) State() State {
	if c.Session().Authenticated {
		return LoggedIn
	}
	return LoggedOut
}

// OnReset registers a hook fired after every transition to LoggedOut. Hooks
// are expected to throw away all in-memory dashboard state.
func (c *Controller) OnReset(fn func()) {
	c.mu.Lock()
	c.onReset = append(c.onReset, fn)
	c.mu.Unlock()
}

// Start restores any persisted cookie and asks the server whether the session
// is live. The caller runs the habit and gamification refresh on LoggedIn.
func (c *Controller) Start(ctx context.Context) (models.Session, error) {
	c.restore()

	status, err := c.client.Status(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrSessionExpired) {
			c.replace(models.Session{})
		}
		return models.Session{}, err
	}

	s := status.Session()
	c.replace(s)
	if !s.Authenticated {
		// whatever cookie we restored is dead
		c.clearStore()
	}
	logger.Info("session checked", "state", c.State(), "username", s.Username)
	return s, nil
}

// Login authenticates and, on success, switches to LoggedIn with the
// server's canonical username.
func (c *Controller) Login(ctx context.Context, username, password string) (api.Outcome, error) {
	out, err := c.client.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return out, err
	}
	if !out.OK() {
		logger.Info("login rejected", "username", username, "message", out.Message)
		return out, nil
	}

	name := out.Response.Username
	if name == "" {
		name = username
	}
	c.replace(models.Session{Authenticated: true, Username: name})
	c.persist()
	logger.Info("logged in", "username", name)
	return out, nil
}

// Register creates the account and then logs in with the same credentials.
// Any session the registration call may have created is ignored.
func (c *Controller) Register(ctx context.Context, username, password string) (reg api.Outcome, login api.Outcome, err error) {
	reg, err = c.client.Register(ctx, models.Credentials{Username: username, Password: password})
	if err != nil || !reg.OK() {
		return reg, api.Outcome{Op: api.OpLogin}, err
	}
	login, err = c.Login(ctx, username, password)
	return reg, login, err
}

// Logout drops the session locally and resets the dashboard
func (c *Controller) Logout() {
	logger.Info("logged out", "username", c.Session().Username)
	c.teardown()
}

// Expire is the 401 path: same teardown as Logout
func (c *Controller) Expire() {
	logger.Warn("session expired", "username", c.Session().Username)
	c.teardown()
}

func (c *Controller) teardown() {
	c.replace(models.Session{})
	c.client.ResetCookies()
	c.clearStore()

	c.mu.RLock()
	hooks := make([]func(), len(c.onReset))
	copy(hooks, c.onReset)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

func (c *Controller) replace(s models.Session) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}

func (c *Controller) restore() {
	if c.store == nil {
		return
	}
	cookies, err := c.store.Load()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("could not restore session", "error", err)
		}
		return
	}
	c.client.SetCookies(cookies)
}

func (c *Controller) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.client.Cookies()); err != nil {
		logger.Warn("could not persist session; it will end with this process", "error", err)
	}
}

func (c *Controller) clearStore() {
	if c.store == nil {
		return
	}
	if err := c.store.Clear(); err != nil {
		logger.Warn("could not clear stored session", "error", err)
	}
}
