package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// LoadAll fetches every tab after a successful sign-in
func LoadAll(m *state.Model) tea.Cmd {
	return tea.Batch(loadDashboard(m), loadChallenges(m), loadGroups(m))
}

// Reload re-fetches the data behind a view
func Reload(m *state.Model, section constants.SessionState) tea.Cmd {
	switch section {
	case constants.StateDashboard:
		return loadDashboard(m)
	case constants.StateTasks:
		return loadTasks(m)
	case constants.StatePrayers:
		return loadPrayers(m)
	case constants.StateChallenges:
		return loadChallenges(m)
	case constants.StateGroups:
		return loadGroups(m)
	case constants.StateGroupDetail:
		if m.Detail == nil {
			return loadGroups(m)
		}
		return tea.Batch(loadGroupDetail(m, m.Detail.Group.ID), loadGroups(m))
	}
	return nil
}

func loadDashboard(m *state.Model) tea.Cmd {
	loader, gen := m.Loader, m.Generation
	return func() tea.Msg {
		return DashboardMsg{Gen: gen, Snapshot: loader.Load(context.Background())}
	}
}

// mutate runs fn as a busy-guarded mutation of section
func mutate(m *state.Model, section constants.SessionState, notice string, fn func(ctx context.Context) error) tea.Cmd {
	gen := m.Generation
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return DoneMsg{Gen: gen, Section: section, Err: err}
		}
		return DoneMsg{Gen: gen, Section: section, Notice: notice}
	}
}

// withRefresh marks a successful mutation as one that changed the profile
func withRefresh(cmd tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		msg := cmd().(DoneMsg)
		msg.Refresh = msg.Err == nil
		return msg
	}
}
