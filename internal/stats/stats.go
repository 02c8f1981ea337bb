// Package stats derives the summary numbers shown next to prayers, tasks,
// challenges and leaderboards.
package stats

import (
	"math"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
)

type PrayerSummary struct {
	Completed          int
	Total              int
	CompletedMandatory int
	Mandatory          int
	Percentage         int // completed mandatory prayers, 0-100
}

type TaskSummary struct {
	Total      int
	Completed  int
	Pending    int
	Percentage int
}

type LeaderboardSummary struct {
	Participants    int
	Completed       int
	AverageProgress int // percent of the challenge length, 0-100
}

// RankedEntry is a leaderboard row with its display position
type RankedEntry struct {
	models.LeaderboardEntry
	Rank  int // 1-based
	Medal constants.Medal
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// Prayers summarizes a day's prayers. Tahajjud counts toward Completed but
// never toward the mandatory percentage.
func Prayers(prayers []models.Prayer) PrayerSummary {
	s := PrayerSummary{Total: len(prayers)}
	for _, p := range prayers {
		if p.IsCompleted {
			s.Completed++
		}
		if !p.IsMandatory() {
			continue
		}
		s.Mandatory++
		if p.IsCompleted {
			s.CompletedMandatory++
		}
	}
	s.Percentage = percent(s.CompletedMandatory, s.Mandatory)
	return s
}

func Tasks(tasks []models.Task) TaskSummary {
	s := TaskSummary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	s.Percentage = percent(s.Completed, s.Total)
	return s
}

// ProgressPercentage is progress as a share of totalDays, clamped to 0-100.
// A non-positive totalDays yields 0.
func ProgressPercentage(progress, totalDays int) int {
	if totalDays <= 0 {
		return 0
	}
	return min(max(percent(progress, totalDays), 0), 100)
}

// Leaderboard summarizes a group challenge's participants
func Leaderboard(entries []models.LeaderboardEntry, totalDays int) LeaderboardSummary {
	s := LeaderboardSummary{Participants: len(entries)}
	sum := 0
	for _, e := range entries {
		sum += e.Progress
		if e.Completed {
			s.Completed++
		}
	}
	if s.Participants == 0 || totalDays <= 0 {
		return s
	}
	s.AverageProgress = percent(sum, s.Participants*totalDays)
	return s
}

// MedalFor returns the podium medal for a 0-based position
func MedalFor(position int) constants.Medal {
	switch position {
	case 0:
		return constants.MedalGold
	case 1:
		return constants.MedalSilver
	case 2:
		return constants.MedalBronze
	default:
		return constants.MedalNone
	}
}

// Ranked assigns ranks and medals in the order the entries were received.
// The backend's ordering is authoritative.
func Ranked(entries []models.LeaderboardEntry) []RankedEntry {
	out := make([]RankedEntry, len(entries))
	for i, e := range entries {
		out[i] = RankedEntry{LeaderboardEntry: e, Rank: i + 1, Medal: MedalFor(i)}
	}
	return out
}
