package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/tui/state"
	"github.com/julianstephens/habitdash/internal/validation"
)

// NewLoginForm creates the login form
func NewLoginForm(fm *state.AuthFormModel, theme *huh.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&fm.Username).
				Validate(validation.Required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(validation.Required("password")),
		),
	).WithTheme(theme)
}

// NewRegisterForm creates the registration form
func NewRegisterForm(fm *state.AuthFormModel, theme *huh.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&fm.Username).
				Validate(validation.Required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(validation.Required("password")),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Confirm).
				Validate(func(s string) error {
					return validation.PasswordsMatch(fm.Password, s)
				}),
		),
	).WithTheme(theme)
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *state.HabitFormModel, theme *huh.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(validation.Required("habit name")),
		),
	).WithTheme(theme)
}

// NewSleepForm creates the sleep log form
func NewSleepForm(fm *state.SleepFormModel, theme *huh.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bedtime (HH:MM)").
				Value(&fm.Bedtime).
				Validate(validation.Clock),
			huh.NewInput().
				Title("Wake Up (HH:MM)").
				Value(&fm.WakeUp).
				Validate(validation.Clock),
			huh.NewSelect[string]().
				Title("Quality").
				Options(
					huh.NewOption("1 - Terrible", "1"),
					huh.NewOption("2 - Poor", "2"),
					huh.NewOption("3 - Okay", "3"),
					huh.NewOption("4 - Good", "4"),
					huh.NewOption("5 - Great", "5"),
				).
				Value(&fm.Quality).
				Validate(validation.QualityString),
		),
	).WithTheme(theme)
}

// NewConfirmationForm creates a yes/no form for destructive actions
func NewConfirmationForm(fm *state.ConfirmationFormModel, prompt string, theme *huh.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&fm.Confirmed),
		),
	).WithTheme(theme)
}

// updateForm feeds msg to the open form
func updateForm(m *state.Model, msg tea.Msg) tea.Cmd {
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	return cmd
}
