package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/keyring"
	"github.com/julianstephens/habitdash/internal/logger"
)

// ErrChecksFailed is returned when at least one doctor check fails
var ErrChecksFailed = errors.New("one or more checks failed")

// schemaReporter is implemented by stores that track migrations
type schemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error) bool {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			return false
		}
		fmt.Printf("✓ %s: OK\n", name)
		return true
	}
	skip := func(name, why string) {
		fmt.Printf("⊘ %s: SKIPPED (%s)\n", name, why)
	}

	report("Settings database", checkSettings(ctx))
	report("Schema version", checkSchemaVersion(ctx))

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		// sessions still work, they just end with the process
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Not available; you will need to log in on every run\n")
	}

	bg := context.Background()
	if report(fmt.Sprintf("Server reachable (%s)", ctx.Client.BaseURL()), checkServer(bg, ctx)) {
		report("Session", checkSession(bg, ctx))
	} else {
		skip("Session", "server not reachable")
	}

	if path := logger.Path(); path != "" {
		fmt.Printf("\nLog file: %s\n", path)
	}

	fmt.Println()
	if hasError {
		return ErrChecksFailed
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkSettings(ctx *cli.Context) error {
	_, err := ctx.Store.GetSettings()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	sr, ok := ctx.Store.(schemaReporter)
	if !ok {
		return nil
	}
	current, latest, err := sr.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d", current, latest)
	}
	return nil
}

func checkServer(ctx context.Context, c *cli.Context) error {
	_, err := c.Client.Ping(ctx)
	return err
}

func checkSession(ctx context.Context, c *cli.Context) error {
	s, err := c.Session.Start(ctx)
	if err != nil {
		return err
	}
	if !s.Authenticated {
		return cli.ErrNotLoggedIn
	}
	fmt.Printf("   Logged in as %s\n", s.Username)
	return nil
}
