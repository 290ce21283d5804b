package habits

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/dashboard"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with streaks." default:"1"`
	Log    HabitLogCmd    `cmd:"" help:"Check a habit off for today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireSession(bg); err != nil {
		return err
	}

	res, err := ctx.Dashboard.CreateHabit(bg, c.Name)
	if err != nil {
		return err
	}
	if !res.Outcome.OK() {
		return errors.New(res.Notice)
	}

	fmt.Printf("✓ %s\n", res.Outcome.Message)
	if res.Habits != nil {
		printView(*res.Habits)
	}
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireSession(bg); err != nil {
		return err
	}

	view, err := ctx.Dashboard.RefreshHabits(bg)
	if err != nil {
		return err
	}
	printView(view)
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireSession(bg); err != nil {
		return err
	}

	view, err := ctx.Dashboard.RefreshHabits(bg)
	if err != nil {
		return err
	}
	card, err := cli.ResolveHabit(view, c.Habit)
	if err != nil {
		return err
	}
	if !card.CanLog {
		// the server would answer "already logged" anyway
		fmt.Println(constants.NoticeAlreadyLogged)
		return nil
	}

	res, err := ctx.Dashboard.LogHabit(bg, card.ID)
	if err != nil {
		return err
	}
	if !res.Outcome.OK() && res.Outcome.Kind != api.AlreadyLogged {
		return errors.New(res.Notice)
	}
	fmt.Println(res.Notice)
	if res.Overlay != nil {
		fmt.Printf("Level %d  %d / %d XP (%s)\n", res.Overlay.Level, res.Overlay.XP, res.Overlay.XPNeeded, res.Overlay.PercentLabel())
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireSession(bg); err != nil {
		return err
	}

	view, err := ctx.Dashboard.RefreshHabits(bg)
	if err != nil {
		return err
	}
	card, err := cli.ResolveHabit(view, c.Habit)
	if err != nil {
		return err
	}

	confirm := ctx.Confirm
	if c.Yes || !ctx.Settings.ConfirmDelete {
		confirm = dashboard.Answer(true)
	}

	res, err := ctx.Dashboard.DeleteHabit(bg, card, confirm)
	if err != nil {
		return err
	}
	if res.Declined {
		fmt.Println("Deletion cancelled.")
		return nil
	}
	if !res.Outcome.OK() {
		return errors.New(res.Notice)
	}
	fmt.Printf("✓ %s\n", res.Notice)
	return nil
}

func printView(view dashboard.View) {
	if view.Empty {
		fmt.Println(view.Placeholder)
		return
	}
	for _, card := range view.Cards {
		fmt.Printf("%4d  %-28s 🔥 %-4d %s\n", card.ID, card.Name, card.Streak, card.LogLabel)
	}
}
