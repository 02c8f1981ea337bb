package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
)

type stubTasks struct {
	tasks []models.Task
	err   error
}

func (s stubTasks) List(ctx context.Context) ([]models.Task, error) { return s.tasks, s.err }

type stubPrayers struct {
	prayers []models.Prayer
	err     error
}

func (s stubPrayers) EnsureToday(ctx context.Context) (services.TodayResult, error) {
	return services.TodayResult{Prayers: s.prayers}, s.err
}

func TestLoad(t *testing.T) {
	l := &Loader{
		Tasks:   stubTasks{tasks: []models.Task{{ID: "t1", IsCompleted: true}, {ID: "t2"}}},
		Prayers: stubPrayers{prayers: []models.Prayer{{Name: "Fajar", IsCompleted: true}, {Name: "Dhuhr"}}},
	}
	snap := l.Load(context.Background())

	if err := snap.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if snap.TaskStats.Completed != 1 || snap.TaskStats.Pending != 1 {
		t.Errorf("TaskStats = %+v", snap.TaskStats)
	}
	if snap.PrayerStats.Percentage != 50 {
		t.Errorf("PrayerStats = %+v", snap.PrayerStats)
	}
}

func TestLoadPartialFailure(t *testing.T) {
	boom := errors.New("boom")
	l := &Loader{
		Tasks:   stubTasks{err: boom},
		Prayers: stubPrayers{prayers: []models.Prayer{{Name: "Fajar"}}},
	}
	snap := l.Load(context.Background())

	if !errors.Is(snap.TasksErr, boom) || snap.PrayersErr != nil {
		t.Fatalf("TasksErr = %v, PrayersErr = %v", snap.TasksErr, snap.PrayersErr)
	}
	if snap.Tasks == nil || len(snap.Tasks) != 0 {
		t.Errorf("Tasks = %#v, want empty", snap.Tasks)
	}
	if len(snap.Prayers) != 1 {
		t.Errorf("Prayers = %+v, want the successful half", snap.Prayers)
	}
	if !errors.Is(snap.Err(), boom) {
		t.Errorf("Err() = %v", snap.Err())
	}
}
