package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/gamification"
	"github.com/julianstephens/habitdash/internal/models"
)

// NoticeMsg carries a transport notice raised outside the update loop
type NoticeMsg struct {
	Text string
}

// ResetMsg is sent when the session ends, by logout or by a 401
type ResetMsg struct{}

// StartMsg is the result of the startup session check
type StartMsg struct {
	Epoch   int
	Session models.Session
	Err     error
}

// EnterMsg is the result of the LoggedIn entry refresh
type EnterMsg struct {
	Epoch   int
	View    dashboard.View
	Overlay *gamification.Overlay
	Err     error
}

// AuthMsg is the result of a login or register attempt
type AuthMsg struct {
	Epoch    int
	Register bool
	Username string
	Reg      api.Outcome
	Login    api.Outcome
	Err      error
}

// ActionMsg is the result of a dashboard mutation
type ActionMsg struct {
	Epoch  int
	Key    string
	ID     int64
	Result dashboard.Result
	Err    error
}

// ListenEvents waits for the next event from the transport or the session
// controller. It must be re-issued after every event.
func ListenEvents(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// Emit sends without blocking; an event is dropped if the queue is full
func Emit(events chan<- tea.Msg, msg tea.Msg) {
	select {
	case events <- msg:
	default:
	}
}

func StartCmd(app *cli.Context, epoch int) tea.Cmd {
	return func() tea.Msg {
		s, err := app.Session.Start(context.Background())
		return StartMsg{Epoch: epoch, Session: s, Err: err}
	}
}

func EnterCmd(app *cli.Context, epoch int) tea.Cmd {
	return func() tea.Msg {
		view, overlay, err := app.Dashboard.Enter(context.Background())
		return EnterMsg{Epoch: epoch, View: view, Overlay: overlay, Err: err}
	}
}

func LoginCmd(app *cli.Context, epoch int, username, password string) tea.Cmd {
	return func() tea.Msg {
		out, err := app.Session.Login(context.Background(), username, password)
		return AuthMsg{Epoch: epoch, Username: username, Login: out, Err: err}
	}
}

func RegisterCmd(app *cli.Context, epoch int, username, password string) tea.Cmd {
	return func() tea.Msg {
		reg, login, err := app.Session.Register(context.Background(), username, password)
		return AuthMsg{Epoch: epoch, Register: true, Username: username, Reg: reg, Login: login, Err: err}
	}
}

func CreateHabitCmd(app *cli.Context, epoch int, name string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Dashboard.CreateHabit(context.Background(), name)
		return ActionMsg{Epoch: epoch, Key: dashboard.KeyCreate, Result: res, Err: err}
	}
}

func LogHabitCmd(app *cli.Context, epoch int, id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Dashboard.LogHabit(context.Background(), id)
		return ActionMsg{Epoch: epoch, Key: dashboard.LogKey(id), ID: id, Result: res, Err: err}
	}
}

// DeleteHabitCmd runs after the user already confirmed in the TUI
func DeleteHabitCmd(app *cli.Context, epoch int, card dashboard.Card) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Dashboard.DeleteHabit(context.Background(), card, dashboard.Answer(true))
		return ActionMsg{Epoch: epoch, Key: dashboard.DeleteKey(card.ID), ID: card.ID, Result: res, Err: err}
	}
}

func LogSleepCmd(app *cli.Context, epoch int, entry models.SleepLog) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Dashboard.LogSleep(context.Background(), entry)
		return ActionMsg{Epoch: epoch, Key: dashboard.KeySleep, Result: res, Err: err}
	}
}
