package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

// OpenSleepForm shows the sleep log form, keeping any unsent draft
func OpenSleepForm(m *state.Model) tea.Cmd {
	if m.SleepForm == nil {
		m.SleepForm = &state.SleepFormModel{Quality: "3"}
	}
	m.Form = NewSleepForm(m.SleepForm, m.Theme.HuhTheme)
	m.State = constants.StateSleep
	return m.Form.Init()
}

// HandleSleepState drives the sleep form
func HandleSleepState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.Dashboard()
		return nil
	}

	cmd := updateForm(m, msg)

	switch m.Form.State {
	case huh.StateCompleted:
		entry := models.SleepLog{
			Bedtime: strings.TrimSpace(m.SleepForm.Bedtime),
			WakeUp:  strings.TrimSpace(m.SleepForm.WakeUp),
			Quality: m.SleepForm.Quality,
		}
		m.Dashboard()
		if m.App.Dashboard.Busy(dashboard.KeySleep) {
			m.PushNotice(constants.NoticeRequestInFlight)
			return cmd
		}
		return tea.Batch(cmd, LogSleepCmd(m.App, m.Epoch, entry))
	case huh.StateAborted:
		m.Dashboard()
	}
	return cmd
}
