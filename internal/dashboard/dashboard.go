// Package dashboard loads the home screen data: today's tasks and prayers.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habithaven/internal/logger"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/stats"
)

type TaskLister interface {
	List(ctx context.Context) ([]models.Task, error)
}

type PrayerSource interface {
	EnsureToday(ctx context.Context) (services.TodayResult, error)
}

type Loader struct {
	Tasks   TaskLister
	Prayers PrayerSource
}

// Snapshot is one dashboard load. A failed half leaves its slice empty and
// records the error; the other half is still usable.
type Snapshot struct {
	Tasks       []models.Task
	Prayers     []models.Prayer
	TaskStats   stats.TaskSummary
	PrayerStats stats.PrayerSummary
	TasksErr    error
	PrayersErr  error
}

// Err joins the per-section errors
func (s Snapshot) Err() error {
	return errors.Join(s.TasksErr, s.PrayersErr)
}

// Load fetches tasks and prayers concurrently. Neither fetch cancels the other.
func (l *Loader) Load(ctx context.Context) Snapshot {
	snap := Snapshot{Tasks: []models.Task{}, Prayers: []models.Prayer{}}

	var g errgroup.Group
	g.Go(func() error {
		tasks, err := l.Tasks.List(ctx)
		if err != nil {
			snap.TasksErr = fmt.Errorf("tasks: %w", err)
			return snap.TasksErr
		}
		snap.Tasks = tasks
		return nil
	})
	g.Go(func() error {
		today, err := l.Prayers.EnsureToday(ctx)
		if err != nil {
			snap.PrayersErr = fmt.Errorf("prayers: %w", err)
			return snap.PrayersErr
		}
		snap.Prayers = today.Prayers
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Warn("Dashboard partially loaded", "error", err)
	}

	snap.TaskStats = stats.Tasks(snap.Tasks)
	snap.PrayerStats = stats.Prayers(snap.Prayers)
	return snap
}
