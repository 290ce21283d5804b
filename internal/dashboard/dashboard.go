// Package dashboard is the UI-independent half of the habit screen: it fetches
// the authoritative habit list, projects it into cards, and runs the user's
// mutations. After any mutation the server is asked again; the client never
// predicts a streak or an XP value.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/gamification"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
)

// API is the subset of the client the dashboard needs
type API interface {
	Status(ctx context.Context) (models.Status, error)
	Habits(ctx context.Context) ([]models.Habit, error)
	CreateHabit(ctx context.Context, name string) (api.Outcome, error)
	DeleteHabit(ctx context.Context, id int64) (api.Outcome, error)
	LogHabit(ctx context.Context, id int64) (api.Outcome, error)
	LogSleep(ctx context.Context, entry models.SleepLog) (api.Outcome, error)
}

// Confirmer asks the user a yes/no question
type Confirmer func(prompt string) bool

// Answer returns a Confirmer with a fixed reply, for callers that already asked
func Answer(yes bool) Confirmer {
	return func(string) bool { return yes }
}

// Result is what a mutation produced. Habits and Overlay are set only when the
// corresponding refresh ran.
type Result struct {
	Outcome   api.Outcome
	Notice    string
	ResetForm bool
	Declined  bool
	Habits    *View
	Overlay   *gamification.Overlay
}

// Dashboard coordinates the habit list, the gamification overlay and the
// action handlers
type Dashboard struct {
	api     API
	tracker *gamification.Tracker

	mu    sync.Mutex
	guard *Guard
}

// New creates a dashboard over the client
func New(client API) *Dashboard {
	return &Dashboard{
		api:     client,
		tracker: gamification.NewTracker(client),
		guard:   NewGuard(),
	}
}

// Reset drops all derived state. Called on logout and session expiry.
func (d *Dashboard) Reset() {
	d.tracker.Reset()
	d.mu.Lock()
	d.guard = NewGuard()
	d.mu.Unlock()
}

// Busy reports whether the action key is in flight
func (d *Dashboard) Busy(key string) bool {
	return d.currentGuard().Held(key)
}

func (d *Dashboard) currentGuard() *Guard {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.guard
}

// RefreshHabits fetches the list. A failed fetch renders the empty placeholder
// and the error is returned alongside for callers that care.
func (d *Dashboard) RefreshHabits(ctx context.Context) (View, error) {
	habits, err := d.api.Habits(ctx)
	if err != nil {
		logger.Debug("habit refresh failed", "error", err)
		return EmptyView(), err
	}
	return Project(habits), nil
}

// RefreshStats re-reads xp and level. ok is false when the server says the
// user is not logged in.
func (d *Dashboard) RefreshStats(ctx context.Context) (gamification.Overlay, bool, error) {
	return d.tracker.Refresh(ctx)
}

// Enter is the LoggedIn entry action: habits and stats, in that order
func (d *Dashboard) Enter(ctx context.Context) (View, *gamification.Overlay, error) {
	view, err := d.RefreshHabits(ctx)
	if errors.Is(err, api.ErrSessionExpired) {
		return view, nil, err
	}
	overlay, ok, statsErr := d.RefreshStats(ctx)
	if err == nil {
		err = statsErr
	}
	if !ok {
		return view, nil, err
	}
	return view, &overlay, err
}

// CreateHabit submits a new habit
func (d *Dashboard) CreateHabit(ctx context.Context, name string) (Result, error) {
	release, ok := d.currentGuard().Acquire(KeyCreate)
	if !ok {
		return Result{}, ErrInFlight
	}
	defer release()

	out, err := d.api.CreateHabit(ctx, strings.TrimSpace(name))
	if err != nil {
		return Result{Outcome: out}, err
	}
	if !out.OK() {
		return Result{Outcome: out, Notice: fmt.Sprintf(constants.NoticeAddHabitFailed, out.Message)}, nil
	}

	res := Result{Outcome: out, ResetForm: true}
	d.refreshAll(ctx, &res)
	return res, nil
}

// LogHabit checks a habit off for today. The known "already logged" conflict
// gets its own notice and does not refresh.
func (d *Dashboard) LogHabit(ctx context.Context, id int64) (Result, error) {
	release, ok := d.currentGuard().Acquire(LogKey(id))
	if !ok {
		return Result{}, ErrInFlight
	}
	defer release()

	out, err := d.api.LogHabit(ctx, id)
	if err != nil {
		return Result{Outcome: out}, err
	}

	switch out.Kind {
	case api.Success:
		res := Result{Outcome: out, Notice: fmt.Sprintf(constants.NoticeHabitLogged, constants.HabitLogXP)}
		d.refreshAll(ctx, &res)
		return res, nil
	case api.AlreadyLogged:
		return Result{Outcome: out, Notice: constants.NoticeAlreadyLogged}, nil
	default:
		return Result{Outcome: out, Notice: fmt.Sprintf(constants.NoticeLogHabitFailed, out.Message)}, nil
	}
}

// DeletePrompt is the confirmation question for a card
func DeletePrompt(card Card) string {
	return fmt.Sprintf(constants.ConfirmDeleteHabit, card.Name)
}

// DeleteHabit asks for confirmation and only then sends the delete
func (d *Dashboard) DeleteHabit(ctx context.Context, card Card, confirm Confirmer) (Result, error) {
	if confirm == nil || !confirm(DeletePrompt(card)) {
		return Result{Declined: true}, nil
	}

	release, ok := d.currentGuard().Acquire(DeleteKey(card.ID))
	if !ok {
		return Result{}, ErrInFlight
	}
	defer release()

	out, err := d.api.DeleteHabit(ctx, card.ID)
	if err != nil {
		return Result{Outcome: out}, err
	}
	if !out.OK() {
		return Result{Outcome: out, Notice: fmt.Sprintf(constants.NoticeDeleteFailed, out.Message)}, nil
	}

	res := Result{Outcome: out, Notice: out.Message}
	d.refreshAll(ctx, &res)
	return res, nil
}

// LogSleep submits a sleep session and refreshes the overlay
func (d *Dashboard) LogSleep(ctx context.Context, entry models.SleepLog) (Result, error) {
	release, ok := d.currentGuard().Acquire(KeySleep)
	if !ok {
		return Result{}, ErrInFlight
	}
	defer release()

	out, err := d.api.LogSleep(ctx, entry)
	if err != nil {
		return Result{Outcome: out}, err
	}
	if !out.OK() {
		return Result{Outcome: out, Notice: fmt.Sprintf(constants.NoticeSleepFailed, out.Message)}, nil
	}

	res := Result{Outcome: out, Notice: out.Message, ResetForm: true}
	if overlay, ok, err := d.RefreshStats(ctx); err == nil && ok {
		res.Overlay = &overlay
	}
	return res, nil
}

func (d *Dashboard) refreshAll(ctx context.Context, res *Result) {
	view, err := d.RefreshHabits(ctx)
	res.Habits = &view
	if errors.Is(err, api.ErrSessionExpired) {
		return
	}
	if overlay, ok, err := d.RefreshStats(ctx); err == nil && ok {
		res.Overlay = &overlay
	}
}

// NoticeFor turns an action error into user-facing text. Transport failures
// return "" because the client already raised their notice.
func NoticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrNoData):
		return ""
	case errors.Is(err, ErrInFlight):
		return constants.NoticeRequestInFlight
	case errors.Is(err, api.ErrMalformedResponse):
		return constants.NoticeMalformed
	default:
		return err.Error()
	}
}
