package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/tui/components/habits"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

// HandleAddHabitState handles the add habit state
func HandleAddHabitState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.Dashboard()
		return nil
	}

	cmd := updateForm(m, msg)

	switch m.Form.State {
	case huh.StateCompleted:
		name := strings.TrimSpace(m.HabitForm.Name)
		m.Dashboard()
		if m.App.Dashboard.Busy(dashboard.KeyCreate) {
			m.PushNotice(constants.NoticeRequestInFlight)
			return cmd
		}
		return tea.Batch(cmd, CreateHabitCmd(m.App, m.Epoch, name))
	case huh.StateAborted:
		m.Dashboard()
	}
	return cmd
}

// HandleConfirmDeleteState handles the delete confirmation. Nothing is sent
// unless the user picks Delete.
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.Dashboard()
		return nil
	}

	cmd := updateForm(m, msg)

	switch m.Form.State {
	case huh.StateCompleted:
		item := m.PendingDelete
		confirmed := m.ConfirmationForm.Confirmed
		m.Dashboard()
		m.PendingDelete = nil
		if !confirmed || item == nil {
			return cmd
		}
		m.HabitsModel.SetPending(item.Card.ID, true)
		return tea.Batch(cmd, DeleteHabitCmd(m.App, m.Epoch, item.Card))
	case huh.StateAborted:
		m.Dashboard()
		m.PendingDelete = nil
	}
	return cmd
}

// HandleHabitMessages handles messages from the habits component
func HandleHabitMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		if m.HabitForm == nil {
			m.HabitForm = &state.HabitFormModel{}
		}
		m.Form = NewHabitForm(m.HabitForm, m.Theme.HuhTheme)
		m.State = constants.StateAddHabit
		return true, m.Form.Init()

	case habits.LogHabitMsg:
		if m.App.Dashboard.Busy(dashboard.LogKey(msg.ID)) {
			m.PushNotice(constants.NoticeRequestInFlight)
			return true, nil
		}
		m.HabitsModel.SetPending(msg.ID, true)
		return true, LogHabitCmd(m.App, m.Epoch, msg.ID)

	case habits.DeleteHabitMsg:
		item := msg.Item
		m.PendingDelete = &item
		m.ConfirmationForm = &state.ConfirmationFormModel{}
		m.Form = NewConfirmationForm(m.ConfirmationForm, dashboard.DeletePrompt(item.Card), m.Theme.HuhTheme)
		m.State = constants.StateConfirmDelete
		return true, m.Form.Init()
	}

	return false, nil
}

// HandleActionMsg applies the result of a mutation: the refreshed list and
// overlay if any, then the notice
func HandleActionMsg(m *state.Model, msg ActionMsg) {
	if msg.ID != 0 {
		m.HabitsModel.SetPending(msg.ID, false)
	}
	if msg.Err != nil {
		m.PushNotice(dashboard.NoticeFor(msg.Err))
		return
	}

	res := msg.Result
	if res.Habits != nil {
		m.HabitsModel.SetView(*res.Habits)
	}
	if res.Overlay != nil {
		m.StatsModel.SetOverlay(res.Overlay)
	}
	if res.ResetForm {
		switch msg.Key {
		case dashboard.KeyCreate:
			m.HabitForm = nil
		case dashboard.KeySleep:
			m.SleepForm = nil
		}
	}
	m.PushNotice(res.Notice)
}
