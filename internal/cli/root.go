package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/session"
	"github.com/julianstephens/habitdash/internal/storage"
)

// ErrNotLoggedIn is returned by commands that need a session when there is none
var ErrNotLoggedIn = errors.New("not logged in, run 'habitdash login' first")

// Context is handed to every kong command
type Context struct {
	Store     storage.Provider
	Settings  models.Settings
	Client    *api.Client
	Session   *session.Controller
	Dashboard *dashboard.Dashboard

	// Confirm asks yes/no questions. Tests replace it.
	Confirm dashboard.Confirmer
}

// NewContext wires the session controller and dashboard over one client.
// persister may be nil to keep the session in memory only.
func NewContext(store storage.Provider, settings models.Settings, client *api.Client, persister session.Persister) *Context {
	ctrl := session.New(client, persister)
	dash := dashboard.New(client)
	ctrl.OnReset(dash.Reset)

	return &Context{
		Store:     store,
		Settings:  settings,
		Client:    client,
		Session:   ctrl,
		Dashboard: dash,
		Confirm:   ConfirmPrompt,
	}
}

// RequireSession restores the stored session and fails when the server does
// not recognise it
func (c *Context) RequireSession(ctx context.Context) (models.Session, error) {
	s, err := c.Session.Start(ctx)
	if err != nil {
		return s, err
	}
	if !s.Authenticated {
		return s, ErrNotLoggedIn
	}
	logger.Debug("Session restored", "user", s.Username)
	return s, nil
}

// ConfirmPrompt asks on the terminal with a huh confirm field
func ConfirmPrompt(prompt string) bool {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		logger.Warn("Confirmation aborted", "error", err)
		return false
	}
	return confirmed
}

// ResolveHabit finds a card by numeric id or by case-insensitive name
func ResolveHabit(view dashboard.View, ref string) (dashboard.Card, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if card, ok := view.Find(id); ok {
			return card, nil
		}
	}
	for _, card := range view.Cards {
		if strings.EqualFold(card.Name, strings.TrimSpace(ref)) {
			return card, nil
		}
	}
	return dashboard.Card{}, fmt.Errorf("habit %q not found", ref)
}

// PrintNotice writes a notice to stderr the way the dashboard would show it
func PrintNotice(text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "⚠ %s\n", text)
}

// RememberLogin records the logged-in user against the current server so the
// next login can default to it
func (c *Context) RememberLogin() {
	s := c.Session.Session()
	if c.Store == nil || !s.Authenticated {
		return
	}
	if err := c.Store.RememberServer(c.Client.BaseURL(), s.Username); err != nil {
		logger.Warn("Could not record server", "error", err)
	}
}

// LastUsername is the last user seen on the current server, "" when unknown
func (c *Context) LastUsername() string {
	if c.Store == nil {
		return ""
	}
	name, err := c.Store.LastUsername(c.Client.BaseURL())
	if err != nil {
		logger.Debug("No remembered username", "error", err)
		return ""
	}
	return name
}
