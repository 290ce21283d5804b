package state

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette picked by the dark_mode setting
type Theme struct {
	Dark bool

	Accent   lipgloss.Color
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Danger   lipgloss.Style
	Notice   lipgloss.Style
	Doc      lipgloss.Style
	HuhTheme *huh.Theme
}

func ThemeFor(dark bool) Theme {
	if dark {
		return Theme{
			Dark:   true,
			Accent: lipgloss.Color("205"),
			Title: lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Bold(true),
			Subtle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Danger: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Notice: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("214")).
				Padding(1, 3),
			Doc:      lipgloss.NewStyle().Padding(1, 2),
			HuhTheme: huh.ThemeDracula(),
		}
	}
	return Theme{
		Accent: lipgloss.Color("57"),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("57")).
			Padding(0, 1).
			Bold(true),
		Subtle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Danger: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 3),
		Doc:      lipgloss.NewStyle().Padding(1, 2),
		HuhTheme: huh.ThemeBase(),
	}
}
