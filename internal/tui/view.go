package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateAuth:
		content = m.viewAuth()
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateLogin, constants.StateRegister, constants.StateAddHabit, constants.StateSleep:
		content = m.Form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateNotice:
		content = m.viewNotice()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.Theme.Doc.Render(content),
		m.viewHelp(),
	)
}

func (m Model) viewHeader() string {
	title := m.Theme.Title.Render(constants.AppName)
	if m.Username == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, m.Theme.Subtle.Render("  "+m.Username))
}

func (m Model) viewAuth() string {
	if m.Status != "" {
		return m.Theme.Subtle.Render(m.Status)
	}
	return "Log in to see your habits.\n\n" +
		m.Theme.Subtle.Render(fmt.Sprintf("Server: %s", m.App.Client.BaseURL()))
}

func (m Model) viewDashboard() string {
	stats := m.StatsModel.View()
	if stats == "" {
		return m.HabitsModel.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, stats, "", m.HabitsModel.View())
}

func (m Model) viewConfirmDelete() string {
	return m.Theme.Danger.Render("Delete habit") + "\n\n" + m.Form.View()
}

func (m Model) viewNotice() string {
	footer := m.Theme.Subtle.Render("enter to dismiss")
	if n := len(m.Notices); n > 1 {
		footer = m.Theme.Subtle.Render(fmt.Sprintf("enter to dismiss (%d more)", n-1))
	}
	return m.Theme.Notice.Render(m.CurrentNotice() + "\n\n" + footer)
}

func (m Model) viewHelp() string {
	switch m.State {
	case constants.StateAuth:
		return m.Help.View(state.AuthKeys{KeyMap: m.Keys})
	case constants.StateDashboard:
		return m.Help.View(m.Keys)
	}
	return ""
}
