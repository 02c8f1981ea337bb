package groups

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/validation"
)

type GroupCreateCmd struct {
	Name        string `arg:"" help:"Group name."`
	Description string `short:"d" help:"Group description."`
}

func (c *GroupCreateCmd) input() services.GroupInput {
	return services.GroupInput{Name: strings.TrimSpace(c.Name), Description: strings.TrimSpace(c.Description)}
}

func (c *GroupCreateCmd) Validate() error {
	return validation.Struct(c.input())
}

func (c *GroupCreateCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	g, err := ctx.Services.Groups.Create(rctx, c.input())
	if err != nil {
		return err
	}
	if g.ID != "" {
		fmt.Printf("✓ Created group: %s (ID: %s)\n", c.Name, g.ID)
	} else {
		fmt.Printf("✓ Created group: %s\n", c.Name)
	}
	return nil
}

type GroupListCmd struct{}

func (c *GroupListCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	groups, err := ctx.Services.Groups.List(rctx)
	if err != nil {
		return err
	}
	printGroups("Groups:", "No groups yet", groups)
	return nil
}

type GroupMineCmd struct{}

func (c *GroupMineCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	groups, err := ctx.Services.Groups.Mine(rctx)
	if err != nil {
		return err
	}
	printGroups("My groups:", "You are not in any groups", groups)
	return nil
}

func printGroups(title, empty string, groups []models.Group) {
	if len(groups) == 0 {
		fmt.Println(empty)
		return
	}
	fmt.Println(title)
	for _, g := range groups {
		fmt.Printf("  %s (ID: %s) - %d members\n", g.Name, g.ID, g.MemberCount)
		if g.Description != "" {
			fmt.Printf("      %s\n", g.Description)
		}
	}
}

type GroupJoinCmd struct {
	ID string `arg:"" help:"Group ID."`
}

func (c *GroupJoinCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Services.Groups.Join(rctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Joined group %s\n", c.ID)
	return nil
}

type GroupLeaveCmd struct {
	ID string `arg:"" help:"Group ID."`
}

func (c *GroupLeaveCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Services.Groups.Leave(rctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Left group %s\n", c.ID)
	return nil
}

type GroupShowCmd struct {
	ID string `arg:"" help:"Group ID."`
}

func (c *GroupShowCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	d, err := ctx.Services.Groups.Details(rctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s (ID: %s)\n", d.Group.Name, d.Group.ID)
	if d.Group.Description != "" {
		fmt.Printf("  %s\n", d.Group.Description)
	}
	fmt.Printf("  %d members\n", d.Group.MemberCount)

	if u, ok := ctx.Session.User(); ok {
		switch {
		case d.IsAdmin(u.ID):
			fmt.Println("  You are an admin of this group")
		case d.IsMember(u.ID):
			fmt.Println("  You are a member of this group")
		}
	}

	printMembers("Admins", d.Admins)
	printMembers("Members", d.Members)

	if d.Challenge == nil {
		fmt.Println("\nNo active group challenge")
		return nil
	}
	ch := d.Challenge
	fmt.Printf("\nChallenge: %s (ID: %s) - %d days\n", ch.Title, ch.ID, ch.TotalDays)
	if ch.Goal != "" {
		fmt.Printf("  Goal: %s\n", ch.Goal)
	}
	fmt.Println()
	cli.PrintLeaderboard(d.Participants, ch.TotalDays)
	return nil
}

func printMembers(title string, members []models.Member) {
	fmt.Printf("\n%s (%d):\n", title, len(members))
	for _, m := range members {
		name := m.FullName
		if name == "" {
			name = m.Username
		}
		if m.Username != "" && m.Username != name {
			fmt.Printf("  %s (@%s)\n", name, m.Username)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}
