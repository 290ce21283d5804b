package sleep

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/validation"
)

// ErrSleepDisabled is returned when the sleep_enabled setting is off
var ErrSleepDisabled = errors.New("sleep logging is disabled, enable it with 'habitdash settings --sleep-enabled'")

type SleepCmd struct {
	Bedtime string `arg:"" help:"Bedtime as HH:MM."`
	WakeUp  string `arg:"" help:"Wake-up time as HH:MM."`
	Quality int    `short:"q" help:"Sleep quality from 1 to 5." default:"3"`
}

func (c *SleepCmd) Validate() error {
	for _, v := range []string{c.Bedtime, c.WakeUp} {
		if err := validation.Clock(v); err != nil {
			return err
		}
	}
	return validation.Quality(c.Quality)
}

func (c *SleepCmd) Run(ctx *cli.Context) error {
	if !ctx.Settings.SleepEnabled {
		return ErrSleepDisabled
	}
	bg := context.Background()
	if _, err := ctx.RequireSession(bg); err != nil {
		return err
	}

	res, err := ctx.Dashboard.LogSleep(bg, models.SleepLog{
		Bedtime: c.Bedtime,
		WakeUp:  c.WakeUp,
		Quality: strconv.Itoa(c.Quality),
	})
	if err != nil {
		return err
	}
	if !res.Outcome.OK() {
		return errors.New(res.Notice)
	}
	fmt.Printf("✓ %s\n", res.Notice)
	return nil
}
