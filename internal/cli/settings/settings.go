package settings

import (
	"fmt"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	BaseURL       *string `name:"server" help:"Root URL of the habit API."`
	DarkMode      *bool   `help:"Use the dark palette in the dashboard."`
	SleepEnabled  *bool   `help:"Offer the sleep log form."`
	Timeout       *int    `help:"Per-request timeout in seconds."`
	ConfirmDelete *bool   `help:"Ask before deleting a habit from the command line."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Server:          %s\n", settings.BaseURL)
		fmt.Printf("  Request Timeout: %ds\n", settings.RequestTimeoutSec)
		fmt.Println("\nDashboard:")
		fmt.Printf("  Dark Mode:       %v\n", settings.DarkMode)
		fmt.Printf("  Sleep Enabled:   %v\n", settings.SleepEnabled)
		fmt.Printf("  Confirm Delete:  %v\n", settings.ConfirmDelete)
		return nil
	}

	updated := false
	if c.BaseURL != nil {
		if err := validation.BaseURL(*c.BaseURL); err != nil {
			return err
		}
		settings.BaseURL = *c.BaseURL
		updated = true
	}
	if c.DarkMode != nil {
		settings.DarkMode = *c.DarkMode
		updated = true
	}
	if c.SleepEnabled != nil {
		settings.SleepEnabled = *c.SleepEnabled
		updated = true
	}
	if c.Timeout != nil {
		if err := validation.Timeout(*c.Timeout); err != nil {
			return err
		}
		settings.RequestTimeoutSec = *c.Timeout
		updated = true
	}
	if c.ConfirmDelete != nil {
		settings.ConfirmDelete = *c.ConfirmDelete
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Settings = settings
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
