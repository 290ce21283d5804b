package state

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/tui/components/habits"
	"github.com/julianstephens/habitdash/internal/tui/components/stats"
)

// AuthFormModel backs the login and register forms
type AuthFormModel struct {
	Username string
	Password string
	Confirm  string
}

// HabitFormModel represents the form model for habit creation
type HabitFormModel struct {
	Name string
}

// SleepFormModel backs the sleep log form
type SleepFormModel struct {
	Bedtime string
	WakeUp  string
	Quality string
}

// ConfirmationFormModel holds the answer of a yes/no form
type ConfirmationFormModel struct {
	Confirmed bool
}

// Model is the shared TUI state. Handlers mutate it through a pointer.
type Model struct {
	App    *cli.Context
	Events chan tea.Msg

	State         constants.SessionState
	PreviousState constants.SessionState
	Keys          KeyMap
	Help          help.Model
	Theme         Theme

	Username    string
	HabitsModel habits.Model
	StatsModel  stats.Model

	Form             *huh.Form
	AuthForm         *AuthFormModel
	HabitForm        *HabitFormModel
	SleepForm        *SleepFormModel
	ConfirmationForm *ConfirmationFormModel
	PendingDelete    *habits.Item

	// Epoch changes on every reset; results of requests started in an older
	// epoch are dropped
	Epoch    int
	Status   string
	Notices  []string
	Quitting bool
	Width    int
	Height   int
}

// New builds a logged-out model. It is also how the dashboard is "reloaded"
// after logout or session expiry: nothing survives except the wiring and the
// terminal size.
func New(app *cli.Context, events chan tea.Msg, width, height int) Model {
	theme := ThemeFor(app.Settings.DarkMode)
	m := Model{
		App:         app,
		Events:      events,
		State:       constants.StateAuth,
		Keys:        DefaultKeyMap(),
		Help:        help.New(),
		Theme:       theme,
		HabitsModel: habits.New(0, 0),
		StatsModel:  stats.New(theme.Accent),
	}
	m.Keys.Sleep.SetEnabled(app.Settings.SleepEnabled)
	m.SetSize(width, height)
	return m
}

// SetSize lays the components out for the terminal size
func (m *Model) SetSize(width, height int) {
	m.Width, m.Height = width, height
	// header, stats and help take roughly six rows
	m.HabitsModel.SetSize(width-4, height-8)
	m.StatsModel.SetWidth(width - 4)
}

// PushNotice queues a modal notice. Consecutive duplicates collapse.
func (m *Model) PushNotice(text string) {
	if text == "" {
		return
	}
	if n := len(m.Notices); n > 0 && m.Notices[n-1] == text {
		return
	}
	if len(m.Notices) == 0 && m.State != constants.StateNotice {
		m.PreviousState = m.State
		m.State = constants.StateNotice
	}
	m.Notices = append(m.Notices, text)
}

// DismissNotice drops the front notice and returns to the previous screen
// when none are left
func (m *Model) DismissNotice() {
	if len(m.Notices) > 0 {
		m.Notices = m.Notices[1:]
	}
	if len(m.Notices) == 0 && m.State == constants.StateNotice {
		m.State = m.PreviousState
	}
}

// CurrentNotice is the notice on screen, "" when none
func (m Model) CurrentNotice() string {
	if len(m.Notices) == 0 {
		return ""
	}
	return m.Notices[0]
}

// Dashboard returns to the habit screen. Unsent form drafts are kept so a
// rejected submit can be corrected. Queued notices stay on screen and
// dismissing the last one lands on the dashboard.
func (m *Model) Dashboard() {
	m.Form = nil
	m.ConfirmationForm = nil
	m.PendingDelete = nil
	if m.State == constants.StateNotice {
		m.PreviousState = constants.StateDashboard
		return
	}
	m.State = constants.StateDashboard
}

// AuthScreen returns to the login/register chooser
func (m *Model) AuthScreen() {
	m.Form = nil
	m.AuthForm = nil
	m.State = constants.StateAuth
}
