// Package tui is the interactive HabitHaven client. Every backend call runs
// as a tea.Cmd; state only changes on the update loop.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/session"
	"github.com/julianstephens/habithaven/internal/tui/components/challengelist"
	"github.com/julianstephens/habithaven/internal/tui/components/grouplist"
	"github.com/julianstephens/habithaven/internal/tui/components/tasklist"
	"github.com/julianstephens/habithaven/internal/tui/handlers"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

type Model struct {
	state.Model
}

func NewModel(svc *services.Services, sess *session.Controller) Model {
	return Model{Model: state.New(svc, sess)}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, handlers.InitSession(&m.Model))
}

func (m Model) ShortHelp() []key.Binding {
	k := m.Keys
	switch m.State {
	case constants.StateAuth:
		return []key.Binding{k.Login, k.Register, k.Quit}
	case constants.StateGroupDetail:
		return []key.Binding{k.Dismiss, k.JoinGroup, k.LeaveGroup, k.JoinGroupChallenge, k.GroupProgress, k.NewGroupChallenge}
	case constants.StateConfirmDelete:
		return []key.Binding{k.Confirm, k.Cancel}
	}
	return []key.Binding{k.Tab, k.Refresh, k.Logout, k.Quit, k.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	k := m.Keys
	global := []key.Binding{k.Tab, k.ShiftTab, k.Refresh, k.Logout, k.Dismiss, k.Quit, k.Help}
	var actions []key.Binding
	switch m.State {
	case constants.StateTasks:
		tk := tasklist.DefaultKeyMap()
		actions = []key.Binding{tk.Add, tk.Edit, tk.Toggle, tk.Delete}
	case constants.StateChallenges:
		ck := challengelist.DefaultKeyMap()
		actions = []key.Binding{ck.Create, ck.Join, ck.Progress}
	case constants.StateGroups:
		gk := grouplist.DefaultKeyMap()
		actions = []key.Binding{gk.Create, gk.Open}
	case constants.StateGroupDetail:
		actions = []key.Binding{k.JoinGroup, k.LeaveGroup, k.NewGroupChallenge, k.JoinGroupChallenge, k.GroupProgress}
	}
	return [][]key.Binding{global, actions}
}
