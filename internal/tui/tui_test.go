package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/apitest"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/tui/components/habits"
	"github.com/julianstephens/habitdash/internal/tui/handlers"
)

func setup(t *testing.T) (*apitest.Server, Model) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.AddUser("amy", "pw")

	client, err := api.New(srv.URL, api.WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	settings := models.Settings{BaseURL: srv.URL, DarkMode: true, SleepEnabled: true, RequestTimeoutSec: 2}
	app := cli.NewContext(nil, settings, client, nil)

	m := NewModel(app)
	m.SetSize(80, 24)
	return srv, m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// drain feeds queued notices and resets into the model
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case msg := <-m.Events:
			m = update(t, m, msg)
		default:
			return m
		}
	}
}

func login(t *testing.T, m Model) Model {
	t.Helper()
	m = update(t, m, handlers.LoginCmd(m.App, m.Epoch, "amy", "pw")())
	if m.State != constants.StateDashboard {
		t.Fatalf("State after login = %v, want dashboard", m.State)
	}
	return update(t, m, handlers.EnterCmd(m.App, m.Epoch)())
}

func TestStartLoggedOut(t *testing.T) {
	_, m := setup(t)
	if m.Status == "" {
		t.Error("NewModel() should show the session check status")
	}

	m = update(t, m, handlers.StartCmd(m.App, m.Epoch)())
	if m.State != constants.StateAuth || m.Status != "" {
		t.Errorf("after start: state %v status %q, want auth screen", m.State, m.Status)
	}
}

func TestLoginEntersDashboard(t *testing.T) {
	srv, m := setup(t)
	srv.AddHabit("amy", "Read", 3, false)
	srv.SetStats("amy", 150, 2)

	m = login(t, m)

	if m.Username != "amy" {
		t.Errorf("Username = %q, want amy", m.Username)
	}
	items := m.HabitsModel.Items()
	if len(items) != 1 || items[0].Card.Name != "Read" {
		t.Fatalf("items = %+v, want Read", items)
	}
	overlay := m.StatsModel.Overlay()
	if overlay == nil || overlay.PercentLabel() != "75%" {
		t.Errorf("overlay = %+v, want 75%%", overlay)
	}
}

func TestLoginRejected(t *testing.T) {
	_, m := setup(t)

	m = update(t, m, handlers.LoginCmd(m.App, m.Epoch, "amy", "nope")())
	m = drain(t, m)

	if m.State != constants.StateNotice {
		t.Fatalf("State = %v, want notice", m.State)
	}
	want := fmt.Sprintf(constants.NoticeLoginFailed, "Invalid username or password")
	if got := m.CurrentNotice(); got != want {
		t.Errorf("notice = %q, want %q", got, want)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State != constants.StateAuth {
		t.Errorf("State after dismiss = %v, want auth", m.State)
	}
}

func TestLogHabit(t *testing.T) {
	srv, m := setup(t)
	id := srv.AddHabit("amy", "Read", 0, false)
	m = login(t, m)

	m = update(t, m, habits.LogHabitMsg{ID: id})
	if !m.HabitsModel.Pending(id) {
		t.Fatal("log did not mark the card pending")
	}

	m = update(t, m, handlers.LogHabitCmd(m.App, m.Epoch, id)())
	if m.HabitsModel.Pending(id) {
		t.Error("result did not clear pending")
	}
	if got, want := m.CurrentNotice(), fmt.Sprintf(constants.NoticeHabitLogged, constants.HabitLogXP); got != want {
		t.Errorf("notice = %q, want %q", got, want)
	}
	if items := m.HabitsModel.Items(); len(items) != 1 || items[0].Card.CanLog {
		t.Errorf("items after log = %+v, want logged card", items)
	}
}

func TestDeleteOpensConfirmation(t *testing.T) {
	srv, m := setup(t)
	srv.AddHabit("amy", "Read", 0, false)
	m = login(t, m)

	item := m.HabitsModel.Items()[0]
	m = update(t, m, habits.DeleteHabitMsg{Item: item})

	if m.State != constants.StateConfirmDelete || m.PendingDelete == nil {
		t.Fatalf("State = %v, want delete confirmation", m.State)
	}
	if got := srv.Hits("DELETE", "/api/habits/{id}"); got != 0 {
		t.Errorf("delete requests before confirmation = %d, want 0", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State != constants.StateDashboard || m.PendingDelete != nil {
		t.Errorf("esc left state %v", m.State)
	}
}

func TestSessionExpiryReloads(t *testing.T) {
	srv, m := setup(t)
	srv.AddHabit("amy", "Read", 0, false)
	m = login(t, m)
	epoch := m.Epoch

	srv.ExpireSessions()
	m = update(t, m, handlers.EnterCmd(m.App, m.Epoch)())
	m = drain(t, m)

	if m.Epoch != epoch+1 {
		t.Errorf("Epoch = %d, want %d", m.Epoch, epoch+1)
	}
	if m.CurrentNotice() != constants.NoticeSessionExpired {
		t.Errorf("notice = %q, want session expired", m.CurrentNotice())
	}
	if m.Username != "" || len(m.HabitsModel.Items()) != 0 || m.StatsModel.Overlay() != nil {
		t.Error("reload kept dashboard state")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State != constants.StateAuth {
		t.Errorf("State after dismiss = %v, want auth", m.State)
	}
}

func TestStaleResultsDropped(t *testing.T) {
	_, m := setup(t)
	stale := handlers.ActionMsg{
		Epoch:  m.Epoch - 1,
		Key:    dashboard.KeyCreate,
		Result: dashboard.Result{Notice: "late"},
	}

	m = update(t, m, stale)
	if len(m.Notices) != 0 {
		t.Errorf("stale result pushed notices %v", m.Notices)
	}
}

func TestLogoutKeyResets(t *testing.T) {
	_, m := setup(t)
	m = login(t, m)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = drain(t, m)

	if m.State != constants.StateAuth || m.Username != "" {
		t.Errorf("after logout: state %v user %q, want auth screen", m.State, m.Username)
	}
}

func TestNoticeQueue(t *testing.T) {
	_, m := setup(t)
	m = update(t, m, handlers.NoticeMsg{Text: "one"})
	m = update(t, m, handlers.NoticeMsg{Text: "one"})
	m = update(t, m, handlers.NoticeMsg{Text: "two"})

	if len(m.Notices) != 2 {
		t.Fatalf("Notices = %v, want duplicates collapsed", m.Notices)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentNotice() != "two" {
		t.Errorf("CurrentNotice() = %q, want two", m.CurrentNotice())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State != constants.StateAuth {
		t.Errorf("State = %v, want auth", m.State)
	}
}

func TestRegisterEntersDashboardAndShowsNotice(t *testing.T) {
	srv, m := setup(t)

	m = update(t, m, handlers.RegisterCmd(m.App, m.Epoch, "bob", "pw")())
	if m.State != constants.StateNotice || m.CurrentNotice() != constants.MsgRegistrationSuccessful {
		t.Fatalf("after register: state %v notice %q, want the registration notice", m.State, m.CurrentNotice())
	}
	if m.Username != "bob" {
		t.Errorf("Username = %q, want bob", m.Username)
	}

	id := srv.AddHabit("bob", "Read", 1, true)
	m = update(t, m, handlers.EnterCmd(m.App, m.Epoch)())
	if m.State != constants.StateNotice {
		t.Errorf("entry refresh replaced the notice screen with %v", m.State)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State != constants.StateDashboard || len(m.Notices) != 0 {
		t.Fatalf("after dismiss: state %v notices %q, want dashboard", m.State, m.Notices)
	}

	// later notices still reach the screen
	fetches := srv.Hits("GET", "/api/habits")
	m = update(t, m, habits.LogHabitMsg{ID: id})
	m = update(t, m, handlers.LogHabitCmd(m.App, m.Epoch, id)())
	if m.State != constants.StateNotice || m.CurrentNotice() != constants.NoticeAlreadyLogged {
		t.Errorf("after log: state %v notice %q, want %q", m.State, m.CurrentNotice(), constants.NoticeAlreadyLogged)
	}
	if got := srv.Hits("GET", "/api/habits"); got != fetches {
		t.Errorf("already-logged result refetched habits (%d -> %d)", fetches, got)
	}
}

func TestLogHabitAlreadyLoggedElsewhere(t *testing.T) {
	srv, m := setup(t)
	id := srv.AddHabit("amy", "Read", 0, false)
	m = login(t, m)

	// checked off from another device after the list was fetched
	other, err := api.New(srv.URL, api.WithNotifier(api.NotifierFunc(func(string) {})))
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	if _, err := other.Login(context.Background(), models.Credentials{Username: "amy", Password: "pw"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := other.LogHabit(context.Background(), id); err != nil {
		t.Fatalf("LogHabit() error = %v", err)
	}

	fetches := srv.Hits("GET", "/api/habits")
	m = update(t, m, habits.LogHabitMsg{ID: id})
	m = update(t, m, handlers.LogHabitCmd(m.App, m.Epoch, id)())

	if m.CurrentNotice() != constants.NoticeAlreadyLogged {
		t.Errorf("notice = %q, want %q", m.CurrentNotice(), constants.NoticeAlreadyLogged)
	}
	if got := srv.Hits("GET", "/api/habits"); got != fetches {
		t.Errorf("habit fetches = %d, want %d", got, fetches)
	}
	if m.HabitsModel.Pending(id) {
		t.Error("card still pending after the result")
	}
}

func TestCreateHabitResetsFormAndRefetches(t *testing.T) {
	srv, m := setup(t)
	m = login(t, m)

	m = update(t, m, habits.AddHabitMsg{})
	if m.State != constants.StateAddHabit || m.HabitForm == nil {
		t.Fatalf("State = %v, want add habit form", m.State)
	}
	m.HabitForm.Name = "Stretch"
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// a rejected submit keeps the draft
	m = update(t, m, handlers.CreateHabitCmd(m.App, m.Epoch, "")())
	want := fmt.Sprintf(constants.NoticeAddHabitFailed, "Habit name is required")
	if m.CurrentNotice() != want {
		t.Errorf("notice = %q, want %q", m.CurrentNotice(), want)
	}
	if m.HabitForm == nil || m.HabitForm.Name != "Stretch" {
		t.Errorf("rejected create dropped the draft: %+v", m.HabitForm)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	fetches := srv.Hits("GET", "/api/habits")
	m = update(t, m, handlers.CreateHabitCmd(m.App, m.Epoch, m.HabitForm.Name)())

	if m.HabitForm != nil {
		t.Errorf("HabitForm = %+v, want nil after success", m.HabitForm)
	}
	if got := srv.Hits("GET", "/api/habits"); got != fetches+1 {
		t.Errorf("habit fetches = %d, want %d", got, fetches+1)
	}
	items := m.HabitsModel.Items()
	if len(items) != 1 || items[0].Card.Name != "Stretch" {
		t.Errorf("items = %+v, want Stretch", items)
	}
	if m.State != constants.StateDashboard {
		t.Errorf("State = %v, want dashboard", m.State)
	}
}
