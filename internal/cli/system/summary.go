package system

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/dashboard"
	"github.com/julianstephens/habitdash/internal/gamification"
)

// SummaryCmd prints the habit list and the level bar in one go
type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	s, err := ctx.RequireSession(context.Background())
	if err != nil {
		return err
	}

	view, overlay, err := fetchSummary(context.Background(), ctx.Dashboard)
	if err != nil {
		return err
	}

	fmt.Printf("%s · Level %d · %d / %d XP (%s)\n", s.Username, overlay.Level, overlay.XP, overlay.XPNeeded, overlay.PercentLabel())
	fmt.Println()
	if view.Empty {
		fmt.Println(view.Placeholder)
		return nil
	}
	done := 0
	for _, card := range view.Cards {
		mark := "[ ]"
		if !card.CanLog {
			mark = "[x]"
			done++
		}
		fmt.Printf("%s %-28s 🔥 %d\n", mark, card.Name, card.Streak)
	}
	fmt.Printf("\n%d of %d done today\n", done, len(view.Cards))
	return nil
}

// fetchSummary loads habits and stats concurrently. Both reads are
// independent; the first failure cancels the other.
func fetchSummary(ctx context.Context, d *dashboard.Dashboard) (dashboard.View, gamification.Overlay, error) {
	var (
		view    dashboard.View
		overlay gamification.Overlay
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view, err = d.RefreshHabits(gctx)
		return err
	})
	g.Go(func() error {
		o, ok, err := d.RefreshStats(gctx)
		if err != nil {
			return err
		}
		if !ok {
			return cli.ErrNotLoggedIn
		}
		overlay = o
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.View{}, gamification.Overlay{}, err
	}
	return view, overlay, nil
}
