package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/stats"
	"github.com/julianstephens/habithaven/internal/validation"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"d" help:"Task description."`
	Date        string `help:"Task date (YYYY-MM-DD). Defaults to today."`
}

func (c *TaskAddCmd) input() services.TaskInput {
	return services.TaskInput{
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Date:        strings.TrimSpace(c.Date),
	}
}

func (c *TaskAddCmd) Validate() error {
	return validation.Struct(c.input())
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	task, err := ctx.Services.Tasks.Create(rctx, c.input())
	if err != nil {
		return err
	}
	if task.ID != "" {
		fmt.Printf("✓ Added task: %s (ID: %s)\n", c.Title, task.ID)
	} else {
		fmt.Printf("✓ Added task: %s\n", c.Title)
	}
	return nil
}

type TaskListCmd struct {
	Pending bool   `help:"Show only pending tasks."`
	Date    string `help:"Show only tasks for a date (YYYY-MM-DD)."`
	ShowIDs bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	tasks, err := ctx.Services.Tasks.List(rctx)
	if err != nil {
		return err
	}
	shown := filter(tasks, c.Pending, c.Date)
	if len(shown) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	summary := stats.Tasks(tasks)
	fmt.Printf("Tasks (%d/%d done, %d%%):\n", summary.Completed, summary.Total, summary.Percentage)
	for _, t := range shown {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", t.ID)
		}
		fmt.Printf("  %s %s%s  %s\n", cli.CheckMark(t.IsCompleted), t.Title, idStr, t.Date)
		if t.Description != "" {
			fmt.Printf("      %s\n", t.Description)
		}
	}
	return nil
}

func filter(tasks []models.Task, pendingOnly bool, date string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if pendingOnly && t.IsCompleted {
			continue
		}
		if date != "" && t.Date != date {
			continue
		}
		out = append(out, t)
	}
	return out
}

type TaskEditCmd struct {
	ID          string `arg:"" help:"Task ID."`
	Title       string `help:"New title."`
	Description string `short:"d" help:"New description."`
	Date        string `help:"New date (YYYY-MM-DD)."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Title == "" && c.Description == "" && c.Date == "" {
		return fmt.Errorf("nothing to change: pass --title, --description or --date")
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}

	// The update endpoint replaces the task, so start from the current values.
	tasks, err := ctx.Services.Tasks.List(rctx)
	if err != nil {
		return err
	}
	current, ok := find(tasks, c.ID)
	if !ok {
		return fmt.Errorf("task %s not found", c.ID)
	}
	in := services.TaskInput{Title: current.Title, Description: current.Description, Date: current.Date}
	if c.Title != "" {
		in.Title = strings.TrimSpace(c.Title)
	}
	if c.Description != "" {
		in.Description = strings.TrimSpace(c.Description)
	}
	if c.Date != "" {
		in.Date = strings.TrimSpace(c.Date)
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	if _, err := ctx.Services.Tasks.Update(rctx, c.ID, in); err != nil {
		return err
	}
	fmt.Printf("✓ Updated task: %s\n", in.Title)
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	return setCompleted(ctx, c.ID, true)
}

type TaskUndoCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskUndoCmd) Run(ctx *cli.Context) error {
	return setCompleted(ctx, c.ID, false)
}

func setCompleted(ctx *cli.Context, id string, done bool) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if _, err := ctx.Services.Tasks.SetCompleted(rctx, id, done); err != nil {
		return err
	}
	if done {
		fmt.Printf("✓ Task %s marked done\n", id)
	} else {
		fmt.Printf("✓ Task %s marked pending\n", id)
	}
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Services.Tasks.Delete(rctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted task %s\n", c.ID)
	return nil
}

func find(tasks []models.Task, id string) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
