package challenges

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/stats"
	"github.com/julianstephens/habithaven/internal/validation"
)

type ChallengeCreateCmd struct {
	Title       string `arg:"" help:"Challenge title."`
	Goal        string `short:"g" required:"" help:"What participants do each day."`
	Days        int    `short:"n" default:"30" help:"Challenge length in days."`
	Description string `short:"d" help:"Challenge description."`
}

func (c *ChallengeCreateCmd) input() services.ChallengeInput {
	return services.ChallengeInput{
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Goal:        strings.TrimSpace(c.Goal),
		TotalDays:   c.Days,
	}
}

func (c *ChallengeCreateCmd) Validate() error {
	return validation.Struct(c.input())
}

func (c *ChallengeCreateCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	ch, err := ctx.Services.Challenges.Create(rctx, c.input())
	if err != nil {
		return err
	}
	if ch.ID != "" {
		fmt.Printf("✓ Created challenge: %s (ID: %s)\n", c.Title, ch.ID)
	} else {
		fmt.Printf("✓ Created challenge: %s\n", c.Title)
	}
	return nil
}

type ChallengeListCmd struct{}

func (c *ChallengeListCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	challenges, err := ctx.Services.Challenges.List(rctx)
	if err != nil {
		return err
	}
	if len(challenges) == 0 {
		fmt.Println("No challenges available")
		return nil
	}

	fmt.Println("Challenges:")
	for _, ch := range challenges {
		status := ""
		if !ch.IsActive() {
			status = " [expired]"
		}
		fmt.Printf("  %s (ID: %s) - %d days%s\n", ch.Title, ch.ID, ch.TotalDays, status)
		if ch.Goal != "" {
			fmt.Printf("      Goal: %s\n", ch.Goal)
		}
	}
	return nil
}

type ChallengeMineCmd struct{}

func (c *ChallengeMineCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	parts, err := ctx.Services.Challenges.Mine(rctx)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		fmt.Println("You have not joined any challenges")
		return nil
	}

	fmt.Println("My challenges:")
	for _, p := range parts {
		pct := stats.ProgressPercentage(p.Progress, p.Challenge.TotalDays)
		fmt.Printf("  %s %s (ID: %s)\n", cli.CheckMark(p.Completed), p.Challenge.Title, p.Challenge.ID)
		fmt.Printf("      %s  day %d/%d\n", cli.ProgressBar(pct, 20), p.Progress, p.Challenge.TotalDays)
	}
	return nil
}

type ChallengeJoinCmd struct {
	ID string `arg:"" help:"Challenge ID."`
}

func (c *ChallengeJoinCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Services.Challenges.Join(rctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Joined challenge %s\n", c.ID)
	return nil
}

type ChallengeProgressCmd struct {
	ID string `arg:"" help:"Challenge ID."`
}

func (c *ChallengeProgressCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	p, err := ctx.Services.Challenges.UpdateProgress(rctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Progress recorded for challenge %s (day %d)\n", c.ID, p.Progress)
	if p.Completed {
		fmt.Println("🎉 Challenge completed!")
	}
	// XP and level change with progress
	if err := ctx.Session.Refresh(rctx); err == nil {
		if u, ok := ctx.Session.User(); ok {
			fmt.Printf("  XP: %d · Level %d\n", u.XP, u.Level)
		}
	}
	return nil
}
