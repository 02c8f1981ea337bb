package challengelist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
)

func TestSetChallengesOrder(t *testing.T) {
	fast := models.Challenge{ID: "c1", Title: "Fast Mondays", TotalDays: 4, Status: constants.ChallengeActive}
	dhikr := models.Challenge{ID: "c2", Title: "Daily Dhikr", TotalDays: 30, Status: constants.ChallengeActive}
	group := models.Challenge{ID: "c3", Title: "Circle", TotalDays: 10, IsGroup: true, GroupID: "g1"}

	m := New(80, 20)
	m.SetChallenges(
		[]models.Challenge{fast, dhikr, group},
		[]models.ChallengeParticipation{{Challenge: dhikr, Progress: 3}},
	)

	items := m.Items()
	if len(items) != 2 {
		t.Fatalf("items = %+v, want joined dhikr then fast", items)
	}
	if items[0].Challenge.ID != "c2" || !items[0].Joined || items[0].Progress != 3 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Challenge.ID != "c1" || items[1].Joined {
		t.Errorf("second item = %+v", items[1])
	}
}

func TestJoinAndProgressKeys(t *testing.T) {
	c := models.Challenge{ID: "c1", Title: "Fast Mondays", TotalDays: 4, Status: constants.ChallengeActive}
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	p := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}

	open := New(80, 20)
	open.SetChallenges([]models.Challenge{c}, nil)
	if _, cmd := open.Update(enter); cmd == nil || cmd() != (JoinChallengeMsg{ID: "c1"}) {
		t.Error("enter should join an open challenge")
	}
	if _, cmd := open.Update(p); cmd != nil {
		t.Error("progress needs a joined challenge")
	}

	joined := New(80, 20)
	joined.SetChallenges(nil, []models.ChallengeParticipation{{Challenge: c, Progress: 1}})
	if _, cmd := joined.Update(p); cmd == nil || cmd() != (ProgressChallengeMsg{ID: "c1"}) {
		t.Error("p should log progress")
	}

	done := New(80, 20)
	done.SetChallenges(nil, []models.ChallengeParticipation{{Challenge: c, Progress: 4, Completed: true}})
	if _, cmd := done.Update(p); cmd != nil {
		t.Error("completed challenges take no more progress")
	}
}
