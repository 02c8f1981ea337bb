package groupchallenges

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/validation"
)

type GroupChallengeCreateCmd struct {
	GroupID     string `arg:"" name:"group-id" help:"Group to run the challenge in."`
	Title       string `arg:"" help:"Challenge title."`
	Goal        string `short:"g" required:"" help:"What participants do each day."`
	Days        int    `short:"n" default:"30" help:"Challenge length in days."`
	Description string `short:"d" help:"Challenge description."`
}

func (c *GroupChallengeCreateCmd) input() services.GroupChallengeInput {
	return services.GroupChallengeInput{
		GroupID:     strings.TrimSpace(c.GroupID),
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Goal:        strings.TrimSpace(c.Goal),
		TotalDays:   c.Days,
	}
}

func (c *GroupChallengeCreateCmd) Validate() error {
	return validation.Struct(c.input())
}

func (c *GroupChallengeCreateCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	ch, err := ctx.Services.GroupChallenges.Create(rctx, c.input())
	if err != nil {
		return err
	}
	if ch.ID != "" {
		fmt.Printf("✓ Created group challenge: %s (ID: %s) in group %s\n", c.Title, ch.ID, ch.GroupID)
	} else {
		fmt.Printf("✓ Created group challenge: %s in group %s\n", c.Title, ch.GroupID)
	}
	return nil
}

type GroupChallengeJoinCmd struct {
	ID string `arg:"" help:"Group challenge ID."`
}

func (c *GroupChallengeJoinCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Services.GroupChallenges.Join(rctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Joined group challenge %s\n", c.ID)
	return nil
}

type GroupChallengeProgressCmd struct {
	ID string `arg:"" help:"Group challenge ID."`
}

func (c *GroupChallengeProgressCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Services.GroupChallenges.UpdateProgress(rctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Progress recorded for group challenge %s\n", c.ID)
	return nil
}

type GroupChallengeLeaderboardCmd struct {
	ID    string `arg:"" help:"Group challenge ID."`
	Days  int    `short:"n" help:"Challenge length in days, for progress bars. Looked up from the group when omitted."`
	Group string `help:"Group ID the challenge belongs to."`
}

func (c *GroupChallengeLeaderboardCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	entries, err := ctx.Services.GroupChallenges.Leaderboard(rctx, c.ID)
	if err != nil {
		return err
	}
	days := c.Days
	if days == 0 && c.Group != "" {
		if d, err := ctx.Services.Groups.Details(rctx, c.Group); err == nil && d.Challenge != nil && d.Challenge.ID == c.ID {
			days = d.Challenge.TotalDays
		}
	}

	fmt.Printf("Leaderboard for %s:\n", c.ID)
	cli.PrintLeaderboard(entries, days)
	return nil
}
