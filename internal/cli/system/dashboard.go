package system

import (
	"fmt"

	"github.com/julianstephens/habithaven/internal/cli"
)

// DashboardCmd prints the home screen: profile, today's tasks and prayers
type DashboardCmd struct{}

func (cmd *DashboardCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	u, _ := ctx.Session.User()
	fmt.Printf("Assalamu alaikum, %s\n", u.DisplayName())
	fmt.Printf("Level %d · %d XP · %d day streak\n\n", u.Level, u.XP, u.StreakCount)

	snap := ctx.Dashboard().Load(rctx)

	fmt.Printf("Tasks (%d/%d done)\n", snap.TaskStats.Completed, snap.TaskStats.Total)
	switch {
	case snap.TasksErr != nil:
		fmt.Printf("  ⚠ %v\n", snap.TasksErr)
	case len(snap.Tasks) == 0:
		fmt.Println("  No tasks yet")
	default:
		for _, t := range snap.Tasks {
			fmt.Printf("  %s %s\n", cli.CheckMark(t.IsCompleted), t.Title)
		}
	}

	fmt.Printf("\nPrayers (%d/%d mandatory, %d%%)\n",
		snap.PrayerStats.CompletedMandatory, snap.PrayerStats.Mandatory, snap.PrayerStats.Percentage)
	switch {
	case snap.PrayersErr != nil:
		fmt.Printf("  ⚠ %v\n", snap.PrayersErr)
	default:
		for _, p := range snap.Prayers {
			fmt.Printf("  %s %s\n", cli.CheckMark(p.IsCompleted), p.Name)
		}
	}

	return snap.Err()
}
