package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/dashboard"
)

type AddHabitMsg struct{}

type LogHabitMsg struct {
	ID int64
}

type DeleteHabitMsg struct {
	Item Item
}

type Item struct {
	Card    dashboard.Card
	Pending bool
}

func (i Item) Title() string {
	if i.Card.CanLog {
		return "○ " + i.Card.Name
	}
	return "✓ " + i.Card.Name
}

func (i Item) Description() string {
	label := i.Card.LogLabel
	if i.Pending {
		label = "⏳ working..."
	}
	desc := fmt.Sprintf("🔥 %d day streak · %s", i.Card.Streak, label)
	if i.Card.Frequency != "" {
		desc = i.Card.Frequency + " · " + desc
	}
	return desc
}

func (i Item) FilterValue() string { return i.Card.Name }

type KeyMap struct {
	Add    key.Binding
	Log    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Log: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check off"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list        list.Model
	keys        KeyMap
	placeholder string
	pending     map[int64]bool
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Delete}
	}

	return Model{
		list:        l,
		keys:        keys,
		placeholder: constants.PlaceholderLoading,
		pending:     make(map[int64]bool),
	}
}

// SetView replaces the list with a freshly fetched projection
func (m *Model) SetView(view dashboard.View) {
	if view.Empty {
		m.placeholder = view.Placeholder
		m.list.SetItems(nil)
		return
	}
	items := make([]list.Item, len(view.Cards))
	for i, card := range view.Cards {
		items[i] = Item{Card: card, Pending: m.pending[card.ID]}
	}
	m.list.SetItems(items)
}

// SetPending marks a card as waiting for the server
func (m *Model) SetPending(id int64, pending bool) {
	if pending {
		m.pending[id] = true
	} else {
		delete(m.pending, id)
	}
	for idx, it := range m.list.Items() {
		if item, ok := it.(Item); ok && item.Card.ID == id {
			item.Pending = pending
			m.list.SetItem(idx, item)
		}
	}
}

// Pending reports whether the card is waiting for the server
func (m Model) Pending(id int64) bool {
	return m.pending[id]
}

// Items returns the cards currently shown
func (m Model) Items() []Item {
	var out []Item
	for _, it := range m.list.Items() {
		if item, ok := it.(Item); ok {
			out = append(out, item)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Log):
			if i, ok := m.list.SelectedItem().(Item); ok {
				// logged-today cards are inert
				if i.Card.CanLog && !i.Pending {
					return m, func() tea.Msg { return LogHabitMsg{ID: i.Card.ID} }
				}
				return m, nil
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Pending {
				return m, func() tea.Msg { return DeleteHabitMsg{Item: i} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  " + m.placeholder
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
