package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/tui/handlers"
	"github.com/julianstephens/habitdash/internal/tui/state"
)

// eventBuffer bounds notices and resets queued while the update loop is busy
const eventBuffer = 32

type Model struct {
	state.Model
}

// NewModel wires the transport notices and session resets into the update
// loop and returns a logged-out model. Printing notices to stderr would tear
// the alt screen, so the notifier is replaced for the life of the program.
func NewModel(app *cli.Context) Model {
	events := make(chan tea.Msg, eventBuffer)

	app.Client.SetNotifier(api.NotifierFunc(func(text string) {
		handlers.Emit(events, handlers.NoticeMsg{Text: text})
	}))
	app.Session.OnReset(func() {
		handlers.Emit(events, handlers.ResetMsg{})
	})

	m := Model{Model: state.New(app, events, 0, 0)}
	m.Status = "Checking session..."
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		handlers.StartCmd(m.App, m.Epoch),
		handlers.ListenEvents(m.Events),
	)
}
