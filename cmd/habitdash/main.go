package main

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/cli/auth"
	"github.com/julianstephens/habitdash/internal/cli/backups"
	"github.com/julianstephens/habitdash/internal/cli/habits"
	"github.com/julianstephens/habitdash/internal/cli/settings"
	"github.com/julianstephens/habitdash/internal/cli/sleep"
	"github.com/julianstephens/habitdash/internal/cli/system"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/errors"
	"github.com/julianstephens/habitdash/internal/keyring"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/session"
	"github.com/julianstephens/habitdash/internal/storage"
	"github.com/julianstephens/habitdash/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the local settings database." type:"path" default:"~/.config/habitdash/habitdash.db"`
	BaseURL string `help:"Habit API root for this run, overriding the stored setting." env:"HABITDASH_BASE_URL"`
	Debug   bool   `help:"Log debug output to stderr as well as the log file." env:"HABITDASH_DEBUG"`

	Init     system.InitCmd       `cmd:"" help:"Initialize habitdash storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Login    auth.LoginCmd        `cmd:"" help:"Log in to the habit server."`
	Register auth.RegisterCmd     `cmd:"" help:"Create an account and log in."`
	Logout   auth.LogoutCmd       `cmd:"" help:"Forget the stored session."`
	Status   auth.StatusCmd       `cmd:"" help:"Show the session and level progress."`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits and check them off."`
	Sleep    sleep.SleepCmd       `cmd:"" help:"Log a night of sleep."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Summary  system.SummaryCmd    `cmd:"" help:"Print habits and level in one go."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage settings database backups."`
}

func main() {
	// a .env next to the binary is optional
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal dashboard for a habit tracking server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ""
	if ctx.Selected() != nil {
		command = ctx.Selected().Name
	}

	if err := logger.Init(logger.Config{
		Debug:         CLI.Debug,
		ConfigDir:     filepath.Dir(CLI.Config),
		TerminalOwned: command == "tui",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store := sqlite.NewStore(CLI.Config)
	appSettings := storage.DefaultSettings()

	// init creates the store; doctor reports a missing one instead of failing
	if command != "init" {
		if err := store.Load(); err != nil {
			if command != "doctor" {
				errors.Fatal(err)
			}
			logger.Warn("Store not loaded", "error", err)
		} else if s, err := store.GetSettings(); err == nil {
			appSettings = s
		} else {
			errors.Fatal(err)
		}
	}
	if CLI.BaseURL != "" {
		appSettings.BaseURL = strings.TrimRight(CLI.BaseURL, "/")
	}

	client, err := api.New(appSettings.BaseURL,
		api.WithTimeout(time.Duration(appSettings.RequestTimeoutSec)*time.Second),
		api.WithNotifier(api.NotifierFunc(cli.PrintNotice)),
	)
	if err != nil {
		errors.Fatal(err)
	}

	var persister session.Persister
	if keyring.IsAvailable() {
		persister = keyring.NewSessionStore(client.BaseURL())
	} else {
		logger.Warn("OS keyring unavailable, session will not outlive this process")
	}

	appCtx := cli.NewContext(store, appSettings, client, persister)
	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	if err != nil {
		// transport failures were already shown as a notice
		if stderrors.Is(err, api.ErrNoData) {
			os.Exit(errors.ExitCode(err))
		}
		errors.Fatal(err)
	}
}
