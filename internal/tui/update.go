package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/tui/handlers"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case handlers.NoticeMsg:
		m.PushNotice(msg.Text)
		return m, handlers.ListenEvents(m.Events)

	case handlers.ResetMsg:
		return m.reload(), handlers.ListenEvents(m.Events)

	case handlers.StartMsg:
		if msg.Epoch != m.Epoch {
			return m, nil
		}
		return m, handlers.HandleStartMsg(&m.Model, msg)

	case handlers.EnterMsg:
		if msg.Epoch != m.Epoch {
			return m, nil
		}
		handlers.HandleEnterMsg(&m.Model, msg)
		return m, nil

	case handlers.AuthMsg:
		if msg.Epoch != m.Epoch {
			return m, nil
		}
		return m, handlers.HandleAuthMsg(&m.Model, msg)

	case handlers.ActionMsg:
		if msg.Epoch != m.Epoch {
			logger.Debug("Dropping stale action result", "key", msg.Key)
			return m, nil
		}
		handlers.HandleActionMsg(&m.Model, msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.StatsModel, cmd = m.StatsModel.Update(msg)
		return m, cmd
	}

	switch m.State {
	case constants.StateNotice:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m, handlers.HandleNoticeKeys(&m.Model, msg)
		}
		return m, nil
	case constants.StateLogin, constants.StateRegister:
		return m, handlers.HandleAuthFormState(&m.Model, msg)
	case constants.StateAddHabit:
		return m, handlers.HandleAddHabitState(&m.Model, msg)
	case constants.StateSleep:
		return m, handlers.HandleSleepState(&m.Model, msg)
	case constants.StateConfirmDelete:
		return m, handlers.HandleConfirmDeleteState(&m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
		if m.State == constants.StateAuth {
			return m, handlers.HandleAuthKeys(&m.Model, msg)
		}
	}

	if handled, cmd := handlers.HandleHabitMessages(&m.Model, msg); handled {
		return m, cmd
	}

	if m.State == constants.StateDashboard {
		var cmd tea.Cmd
		m.HabitsModel, cmd = m.HabitsModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

// reload throws the whole dashboard away after logout or expiry. Only the
// wiring and the terminal size survive; a notice already on screen (for
// example the expiry message) is kept.
func (m Model) reload() Model {
	next := state.New(m.App, m.Events, m.Width, m.Height)
	next.Epoch = m.Epoch + 1
	for _, n := range m.Notices {
		next.PushNotice(n)
	}
	if next.State == constants.StateNotice {
		next.PreviousState = constants.StateAuth
	}
	logger.Debug("Dashboard reset", "epoch", next.Epoch)
	return Model{Model: next}
}
