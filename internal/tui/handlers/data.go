package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/dashboard"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// HandleDataMessages applies load and mutation results. Results from an
// earlier generation, or that arrive while signed out, belong to a
// previous session and are dropped.
func HandleDataMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	var gen int
	switch msg := msg.(type) {
	case DashboardMsg:
		gen = msg.Gen
	case TasksMsg:
		gen = msg.Gen
	case PrayersMsg:
		gen = msg.Gen
	case ChallengesMsg:
		gen = msg.Gen
	case GroupsMsg:
		gen = msg.Gen
	case GroupDetailMsg:
		gen = msg.Gen
	case DoneMsg:
		gen = msg.Gen
	default:
		return false, nil
	}
	if !m.SignedIn || gen != m.Generation {
		return true, nil
	}

	switch msg := msg.(type) {
	case DashboardMsg:
		applySnapshot(m, msg.Snapshot)
	case TasksMsg:
		applyTasks(m, msg)
	case PrayersMsg:
		applyPrayers(m, msg)
	case ChallengesMsg:
		applyChallenges(m, msg)
	case GroupsMsg:
		applyGroups(m, msg)
	case GroupDetailMsg:
		applyGroupDetail(m, msg)
	case DoneMsg:
		return true, HandleDone(m, msg)
	}
	return true, nil
}

func applySnapshot(m *state.Model, snap dashboard.Snapshot) {
	m.Snapshot = snap
	m.TaskList.SetTasks(snap.Tasks)
	m.PrayerList.SetPrayers(snap.Prayers)
	if err := snap.Err(); err != nil {
		m.Alert = errors.Alert(err)
	}
}

// HandleDone ends a mutation and reloads the section it changed
func HandleDone(m *state.Model, msg DoneMsg) tea.Cmd {
	m.Busy = false
	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		return nil
	}
	m.Alert = ""
	m.Notice = msg.Notice
	cmds := []tea.Cmd{Reload(m, msg.Section)}
	if msg.Refresh {
		cmds = append(cmds, refreshUser(m))
	}
	return tea.Batch(cmds...)
}
