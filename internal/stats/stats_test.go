package stats

import (
	"testing"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
)

func dayOfPrayers(completed ...string) []models.Prayer {
	done := map[string]bool{}
	for _, name := range completed {
		done[name] = true
	}
	var out []models.Prayer
	for _, name := range constants.PrayerOrder {
		out = append(out, models.Prayer{ID: name, Name: name, IsCompleted: done[name]})
	}
	return out
}

func TestPrayers(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		want      PrayerSummary
	}{
		{"none", nil, PrayerSummary{Total: 6, Mandatory: 5}},
		{
			"all five plus tahajjud",
			[]string{"Tahajjud", "Fajar", "Dhuhr", "Asr", "Maghrib", "Isha"},
			PrayerSummary{Completed: 6, Total: 6, CompletedMandatory: 5, Mandatory: 5, Percentage: 100},
		},
		{
			"tahajjud only",
			[]string{"Tahajjud"},
			PrayerSummary{Completed: 1, Total: 6, Mandatory: 5},
		},
		{
			"two of five",
			[]string{"Fajar", "Isha"},
			PrayerSummary{Completed: 2, Total: 6, CompletedMandatory: 2, Mandatory: 5, Percentage: 40},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prayers(dayOfPrayers(tt.completed...)); got != tt.want {
				t.Errorf("Prayers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrayersEmpty(t *testing.T) {
	if got := Prayers(nil); got != (PrayerSummary{}) {
		t.Errorf("Prayers(nil) = %+v", got)
	}
}

func TestTasks(t *testing.T) {
	tasks := []models.Task{{IsCompleted: true}, {}, {IsCompleted: true}}
	want := TaskSummary{Total: 3, Completed: 2, Pending: 1, Percentage: 67}
	if got := Tasks(tasks); got != want {
		t.Errorf("Tasks() = %+v, want %+v", got, want)
	}
	if got := Tasks(nil); got != (TaskSummary{}) {
		t.Errorf("Tasks(nil) = %+v", got)
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		progress, total, want int
	}{
		{0, 30, 0},
		{15, 30, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{30, 30, 100},
		{45, 30, 100},
		{-5, 30, 0},
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := ProgressPercentage(tt.progress, tt.total); got != tt.want {
			t.Errorf("ProgressPercentage(%d, %d) = %d, want %d", tt.progress, tt.total, got, tt.want)
		}
	}
}

func TestLeaderboard(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "a", Progress: 3},
		{UserID: "b", Progress: 5},
		{UserID: "c", Progress: 10, Completed: true},
	}
	want := LeaderboardSummary{Participants: 3, Completed: 1, AverageProgress: 60}
	if got := Leaderboard(entries, 10); got != want {
		t.Errorf("Leaderboard() = %+v, want %+v", got, want)
	}
	if got := Leaderboard(entries, 0); got.AverageProgress != 0 {
		t.Errorf("Leaderboard(totalDays=0).AverageProgress = %d", got.AverageProgress)
	}
	if got := Leaderboard(nil, 10); got != (LeaderboardSummary{}) {
		t.Errorf("Leaderboard(nil) = %+v", got)
	}
}

func TestRankedKeepsReceivedOrder(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "low", Progress: 1},
		{UserID: "high", Progress: 9},
		{UserID: "mid", Progress: 5},
		{UserID: "last", Progress: 7},
	}
	got := Ranked(entries)

	want := []struct {
		id    string
		medal constants.Medal
	}{
		{"low", constants.MedalGold},
		{"high", constants.MedalSilver},
		{"mid", constants.MedalBronze},
		{"last", constants.MedalNone},
	}
	for i, w := range want {
		if got[i].UserID != w.id || got[i].Medal != w.medal || got[i].Rank != i+1 {
			t.Errorf("Ranked()[%d] = %+v, want %s/%q", i, got[i], w.id, w.medal)
		}
	}
}
