package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/gamification"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/validation"
)

type LoginCmd struct {
	Username string `short:"u" help:"Account name. Prompted when omitted."`
	Password string `env:"HABITDASH_PASSWORD" help:"Password. Prompted when omitted."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	creds, err := c.credentials(ctx)
	if err != nil {
		return err
	}

	out, err := ctx.Session.Login(context.Background(), creds.Username, creds.Password)
	if err != nil {
		return err
	}
	if !out.OK() {
		return fmt.Errorf(constants.NoticeLoginFailed, out.Message)
	}

	ctx.RememberLogin()
	fmt.Printf("✓ Logged in as %s\n", ctx.Session.Session().Username)
	return nil
}

func (c *LoginCmd) credentials(ctx *cli.Context) (models.Credentials, error) {
	creds := models.Credentials{Username: c.Username, Password: c.Password}
	if creds.Username == "" {
		creds.Username = ctx.LastUsername()
	}
	if creds.Username != "" && creds.Password != "" {
		return creds, nil
	}
	return promptCredentials(creds, false)
}

type RegisterCmd struct {
	Username string `short:"u" help:"Account name. Prompted when omitted."`
	Password string `env:"HABITDASH_PASSWORD" help:"Password. Prompted when omitted."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	creds := models.Credentials{Username: c.Username, Password: c.Password}
	if creds.Username == "" || creds.Password == "" {
		var err error
		if creds, err = promptCredentials(creds, true); err != nil {
			return err
		}
	}

	reg, login, err := ctx.Session.Register(context.Background(), creds.Username, creds.Password)
	if err != nil {
		return err
	}
	if !reg.OK() {
		return fmt.Errorf("registration failed: %s", reg.Message)
	}
	fmt.Printf("✓ %s\n", reg.Message)

	if !login.OK() {
		return fmt.Errorf(constants.NoticeLoginFailed, login.Message)
	}
	ctx.RememberLogin()
	fmt.Printf("✓ Logged in as %s\n", ctx.Session.Session().Username)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	ctx.Session.Logout()
	fmt.Println("Logged out.")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	status, err := ctx.Client.Status(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Server: %s\n", ctx.Client.BaseURL())
	if !status.LoggedIn {
		fmt.Println("Not logged in.")
		return nil
	}

	overlay := gamification.FromStats(status.Stats())
	fmt.Printf("Logged in as %s\n", status.Username)
	fmt.Printf("Level %d  %s  %d / %d XP (%s)\n",
		overlay.Level, Bar(overlay, 20), overlay.XP, overlay.XPNeeded, overlay.PercentLabel())
	return nil
}

// Bar renders the XP progress as a fixed-width text bar
func Bar(o gamification.Overlay, width int) string {
	filled := o.Cells(width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func promptCredentials(creds models.Credentials, confirm bool) (models.Credentials, error) {
	var again string
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Value(&creds.Username).
			Validate(validation.Required("username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(validation.Required("password")),
	}
	if confirm {
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&again).
			Validate(func(s string) error {
				return validation.PasswordsMatch(creds.Password, s)
			}))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return creds, fmt.Errorf("credentials form: %w", err)
	}
	creds.Username = strings.TrimSpace(creds.Username)
	return creds, nil
}
