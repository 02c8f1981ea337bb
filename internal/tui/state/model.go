// Package state holds the shared TUI model that the update handlers mutate.
package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/dashboard"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/session"
	"github.com/julianstephens/habithaven/internal/tui/components/challengelist"
	"github.com/julianstephens/habithaven/internal/tui/components/grouplist"
	"github.com/julianstephens/habithaven/internal/tui/components/leaderboard"
	"github.com/julianstephens/habithaven/internal/tui/components/prayerlist"
	"github.com/julianstephens/habithaven/internal/tui/components/tasklist"
)

// Tab is one of the main views reachable with tab/shift+tab
type Tab struct {
	State constants.SessionState
	Title string
}

// Tabs are the main views, in tab order
var Tabs = []Tab{
	{constants.StateDashboard, "Dashboard"},
	{constants.StateTasks, "Tasks"},
	{constants.StatePrayers, "Prayers"},
	{constants.StateChallenges, "Challenges"},
	{constants.StateGroups, "Groups"},
}

// Model represents the shared state for the TUI
type Model struct {
	Services *services.Services
	Session  *session.Controller
	Loader   *dashboard.Loader

	State    constants.SessionState
	Keys     KeyMap
	Help     help.Model
	Spinner  spinner.Model
	Quitting bool
	Width    int
	Height   int

	// Busy is set while a backend call started by the user is in flight;
	// action keys are ignored until it finishes
	Busy bool
	// LoadingDetail is set while a group opened from the list is loading.
	// Only that load clears Busy; detail refreshes leave it alone.
	LoadingDetail bool
	// Generation advances on every reset. Backend results carry the
	// generation they were started in and are dropped once it moves on.
	Generation int
	Alert      string
	Notice     string
	SignedIn   bool

	User     models.User
	Snapshot dashboard.Snapshot

	TaskList      tasklist.Model
	PrayerList    prayerlist.Model
	ChallengeList challengelist.Model
	GroupList     grouplist.Model
	Detail        *models.GroupDetails
	Leaderboard   leaderboard.Model

	Form          *huh.Form
	FormReturn    constants.SessionState
	LoginForm     *LoginFormModel
	RegisterForm  *RegisterFormModel
	TaskForm      *TaskFormModel
	ChallengeForm *ChallengeFormModel
	GroupForm     *GroupFormModel
	TaskToDelete  tasklist.DeleteTaskMsg
}

// New creates a signed-out model that is busy until the stored session
// has been checked
func New(svc *services.Services, sess *session.Controller) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		Services: svc,
		Session:  sess,
		Loader:   &dashboard.Loader{Tasks: svc.Tasks, Prayers: svc.Prayers},
		State:    constants.StateAuth,
		Keys:     DefaultKeyMap(),
		Help:     help.New(),
		Spinner:  sp,
		Busy:     true,
	}
	m.Reset()
	return m
}

// Reset drops every loaded collection and the user, and starts a new
// generation so results still in flight are ignored
func (m *Model) Reset() {
	m.Generation++
	m.SignedIn = false
	m.LoadingDetail = false
	m.User = models.User{}
	m.Snapshot = dashboard.Snapshot{}
	m.TaskList = tasklist.New(nil, 0, 0)
	m.PrayerList = prayerlist.New(nil, 0, 0)
	m.ChallengeList = challengelist.New(0, 0)
	m.GroupList = grouplist.New(0, 0)
	m.Detail = nil
	m.Leaderboard = leaderboard.New(0, 0)
	m.Form = nil
	m.LoginForm, m.RegisterForm, m.TaskForm, m.ChallengeForm, m.GroupForm = nil, nil, nil, nil, nil
	m.TaskToDelete = tasklist.DeleteTaskMsg{}
	m.Resize()
}

// Resize fits every component to the last window size
func (m *Model) Resize() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	w, h := m.Width-4, max(m.Height-8, 4)
	m.TaskList.SetSize(w, h)
	m.PrayerList.SetSize(w, h)
	m.ChallengeList.SetSize(w, h)
	m.GroupList.SetSize(w, h)
	m.Leaderboard.SetSize(w, max(h-8, 3))
	m.Help.Width = m.Width
}

// IsTab reports whether the current view is one of Tabs
func (m Model) IsTab() bool {
	for _, t := range Tabs {
		if t.State == m.State {
			return true
		}
	}
	return false
}

// NextTab returns the tab step positions away, wrapping around
func (m Model) NextTab(step int) constants.SessionState {
	for i, t := range Tabs {
		if t.State == m.State {
			return Tabs[(i+step+len(Tabs))%len(Tabs)].State
		}
	}
	return constants.StateDashboard
}

// Filtering reports whether the active list owns the keyboard for its filter
func (m Model) Filtering() bool {
	switch m.State {
	case constants.StateTasks:
		return m.TaskList.Filtering()
	case constants.StateChallenges:
		return m.ChallengeList.Filtering()
	case constants.StateGroups:
		return m.GroupList.Filtering()
	}
	return false
}
