package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

// HandleNoticeKeys dismisses the notice on screen
func HandleNoticeKeys(m *state.Model, msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.Quitting = true
		return tea.Quit
	}
	if key.Matches(msg, m.Keys.Dismiss) {
		m.DismissNotice()
	}
	return nil
}

// HandleGlobalKeys handles keys that work on the auth and dashboard screens.
// It reports false when the key belongs to the active component.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	}

	if m.State != constants.StateDashboard {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Refresh):
		return true, Refresh(m)
	case key.Matches(msg, m.Keys.Logout):
		// the reset hook sends ResetMsg, which rebuilds the model
		m.App.Session.Logout()
		return true, nil
	case key.Matches(msg, m.Keys.Sleep):
		if !m.App.Settings.SleepEnabled {
			return false, nil
		}
		return true, OpenSleepForm(m)
	}
	return false, nil
}
