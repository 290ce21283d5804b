package state

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Login    key.Binding
	Register key.Binding
	Add      key.Binding
	Log      key.Binding
	Delete   key.Binding
	Sleep    key.Binding
	Refresh  key.Binding
	Logout   key.Binding
	Dismiss  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log in"),
		),
		Register: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "register"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Log: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c/enter", "check off"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Sleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "log sleep"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "log out"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "dismiss"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Log, k.Delete, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Log, k.Delete},
		{k.Sleep, k.Refresh, k.Logout},
		{k.Help, k.Quit},
	}
}

// AuthKeys is the help shown on the logged-out screen
type AuthKeys struct {
	KeyMap
}

func (k AuthKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Login, k.Register, k.Quit}
}

func (k AuthKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
