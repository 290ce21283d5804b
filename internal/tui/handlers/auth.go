package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

// HandleAuthKeys handles the logged-out chooser screen
func HandleAuthKeys(m *state.Model, msg tea.KeyMsg) tea.Cmd {
	if m.Status != "" {
		// a login is already on the wire
		return nil
	}
	switch {
	case key.Matches(msg, m.Keys.Login):
		m.AuthForm = &state.AuthFormModel{Username: m.App.LastUsername()}
		m.Form = NewLoginForm(m.AuthForm, m.Theme.HuhTheme)
		m.State = constants.StateLogin
		return m.Form.Init()
	case key.Matches(msg, m.Keys.Register):
		m.AuthForm = &state.AuthFormModel{}
		m.Form = NewRegisterForm(m.AuthForm, m.Theme.HuhTheme)
		m.State = constants.StateRegister
		return m.Form.Init()
	}
	return nil
}

// HandleAuthFormState drives the login and register forms
func HandleAuthFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.AuthScreen()
		return nil
	}

	cmd := updateForm(m, msg)

	switch m.Form.State {
	case huh.StateCompleted:
		username := strings.TrimSpace(m.AuthForm.Username)
		password := m.AuthForm.Password
		register := m.State == constants.StateRegister
		m.AuthScreen()
		if register {
			m.Status = "Creating account..."
			return tea.Batch(cmd, RegisterCmd(m.App, m.Epoch, username, password))
		}
		m.Status = "Logging in..."
		return tea.Batch(cmd, LoginCmd(m.App, m.Epoch, username, password))
	case huh.StateAborted:
		m.AuthScreen()
	}
	return cmd
}

// HandleAuthMsg applies a login or register result. Registration always shows
// the server's message; a successful registration is followed by a login.
func HandleAuthMsg(m *state.Model, msg AuthMsg) tea.Cmd {
	m.Status = ""
	if msg.Err != nil {
		m.PushNotice(dashboard.NoticeFor(msg.Err))
		return nil
	}
	if msg.Register {
		m.PushNotice(msg.Reg.Message)
		if !msg.Reg.OK() {
			return nil
		}
	}
	if !msg.Login.OK() {
		m.PushNotice(fmt.Sprintf(constants.NoticeLoginFailed, msg.Login.Message))
		return nil
	}

	m.App.RememberLogin()
	return enterDashboard(m, m.App.Session.Session().Username)
}

// HandleStartMsg applies the startup session check
func HandleStartMsg(m *state.Model, msg StartMsg) tea.Cmd {
	m.Status = ""
	if msg.Err != nil {
		m.PushNotice(dashboard.NoticeFor(msg.Err))
		return nil
	}
	if !msg.Session.Authenticated {
		logger.Debug("No live session, showing login")
		return nil
	}
	return enterDashboard(m, msg.Session.Username)
}

// HandleEnterMsg renders the entry refresh. A failed habit fetch still
// carries the placeholder view.
func HandleEnterMsg(m *state.Model, msg EnterMsg) {
	m.HabitsModel.SetView(msg.View)
	m.StatsModel.SetOverlay(msg.Overlay)
	m.PushNotice(dashboard.NoticeFor(msg.Err))
}

func enterDashboard(m *state.Model, username string) tea.Cmd {
	m.Username = username
	m.Dashboard()
	return Refresh(m)
}

// Refresh re-runs the LoggedIn entry action
func Refresh(m *state.Model) tea.Cmd {
	return tea.Batch(m.StatsModel.SetLoading(true), EnterCmd(m.App, m.Epoch))
}
