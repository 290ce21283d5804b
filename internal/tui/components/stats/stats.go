// Package stats renders the level progress bar
package stats

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitdash/internal/gamification"
)

type Model struct {
	bar     progress.Model
	spinner spinner.Model
	overlay *gamification.Overlay
	loading bool
	label   lipgloss.Style
}

func New(accent lipgloss.Color) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	return Model{
		bar:     progress.New(progress.WithSolidFill(string(accent)), progress.WithoutPercentage()),
		spinner: s,
		label:   lipgloss.NewStyle().Bold(true),
	}
}

// SetOverlay replaces the displayed counters. A nil overlay clears the bar.
func (m *Model) SetOverlay(o *gamification.Overlay) {
	m.overlay = o
	m.loading = false
}

func (m Model) Overlay() *gamification.Overlay {
	return m.overlay
}

// SetLoading shows the spinner until the next SetOverlay
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Loading() bool {
	return m.loading
}

func (m *Model) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	m.bar.Width = width
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(spinner.TickMsg); ok && m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Label is the text above the bar, e.g. "Level 2 · 150 / 200 XP (75%)"
func Label(o gamification.Overlay) string {
	return fmt.Sprintf("Level %d · %d / %d XP (%s)", o.Level, o.XP, o.XPNeeded, o.PercentLabel())
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " Loading stats..."
	}
	if m.overlay == nil {
		return ""
	}
	return m.label.Render(Label(*m.overlay)) + "\n" + m.bar.ViewAs(m.overlay.Ratio())
}
