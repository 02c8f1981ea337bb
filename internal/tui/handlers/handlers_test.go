package handlers

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/cli/clitest"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/tui/components/challengelist"
	"github.com/julianstephens/habithaven/internal/tui/components/grouplist"
	"github.com/julianstephens/habithaven/internal/tui/components/prayerlist"
	"github.com/julianstephens/habithaven/internal/tui/components/tasklist"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// newSignedIn returns a dashboard model whose session holds amina's token
func newSignedIn(t *testing.T) (*state.Model, *clitest.Backend) {
	t.Helper()
	backend := clitest.New(t)
	ctx := backend.LoggedInContext(t)
	m := state.New(ctx.Services, ctx.Session)
	HandleSessionMessages(&m, SessionMsg{Gen: m.Generation, User: models.User{ID: "u1", FullName: "Amina Yusuf"}, Authenticated: true})
	return &m, backend
}

func keyPress(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTaskMutationsAgainstBackend(t *testing.T) {
	m, backend := newSignedIn(t)

	done := createTask(m, state.TaskFormModel{Title: "Read Quran", Date: "2025-03-14"})().(DoneMsg)
	if done.Err != nil || done.Section != constants.StateTasks || done.Gen != m.Generation {
		t.Fatalf("createTask = %+v", done)
	}
	if len(backend.Tasks()) != 1 {
		t.Fatalf("backend tasks = %v", backend.Tasks())
	}

	loaded := loadTasks(m)().(TasksMsg)
	if loaded.Err != nil || len(loaded.Tasks) != 1 {
		t.Fatalf("loadTasks = %+v", loaded)
	}
	HandleDataMessages(m, loaded)
	if m.TaskList.Len() != 1 || m.Snapshot.TaskStats.Total != 1 {
		t.Errorf("task list = %d, stats = %+v", m.TaskList.Len(), m.Snapshot.TaskStats)
	}

	id := loaded.Tasks[0].ID
	if done := setTaskCompleted(m, id, true)().(DoneMsg); done.Err != nil {
		t.Fatalf("setTaskCompleted: %v", done.Err)
	}
	if backend.Tasks()[0]["completed"] != true {
		t.Errorf("task should be completed: %v", backend.Tasks()[0])
	}

	if done := deleteTask(m, id, "Read Quran")().(DoneMsg); done.Err != nil || done.Notice != "Deleted task: Read Quran" {
		t.Fatalf("deleteTask = %+v", done)
	}
	if len(backend.Tasks()) != 0 {
		t.Errorf("backend tasks after delete = %v", backend.Tasks())
	}
}

func TestPrayersLoadCreatesToday(t *testing.T) {
	m, backend := newSignedIn(t)

	msg := loadPrayers(m)().(PrayersMsg)
	if msg.Err != nil {
		t.Fatalf("loadPrayers: %v", msg.Err)
	}
	if len(msg.Today.Prayers) != 6 || len(backend.Prayers()) != 6 {
		t.Fatalf("prayers = %d, backend = %d", len(msg.Today.Prayers), len(backend.Prayers()))
	}
	HandleDataMessages(m, msg)
	if m.Snapshot.PrayerStats.Mandatory != 5 {
		t.Errorf("prayer stats = %+v", m.Snapshot.PrayerStats)
	}

	first := msg.Today.Prayers[0]
	done := togglePrayer(m, first.ID, first.Name)().(DoneMsg)
	if done.Err != nil || done.Section != constants.StatePrayers {
		t.Fatalf("togglePrayer = %+v", done)
	}
}

func TestGroupLifecycleAgainstBackend(t *testing.T) {
	m, backend := newSignedIn(t)

	if done := createGroup(m, state.GroupFormModel{Name: "Fajr Friends"})().(DoneMsg); done.Err != nil {
		t.Fatalf("createGroup: %v", done.Err)
	}
	groups := loadGroups(m)().(GroupsMsg)
	if groups.Err != nil || len(groups.All) != 1 || len(groups.Mine) != 1 {
		t.Fatalf("loadGroups = %+v", groups)
	}
	id := groups.All[0].ID

	m.State = constants.StateGroups
	if handled, cmd := HandleComponentMessages(m, grouplist.OpenGroupMsg{ID: id}); !handled || cmd == nil {
		t.Fatal("OpenGroupMsg should load the group")
	}
	detail := loadGroupDetail(m, id)().(GroupDetailMsg)
	if detail.Err != nil || detail.ID != id {
		t.Fatalf("loadGroupDetail = %+v", detail)
	}
	HandleDataMessages(m, detail)
	if m.State != constants.StateGroupDetail || m.Detail == nil || m.Busy {
		t.Fatalf("state = %v, busy = %v", m.State, m.Busy)
	}
	if m.Detail.Group.Name != "Fajr Friends" {
		t.Errorf("detail group = %+v", m.Detail.Group)
	}

	if done := createGroupChallenge(m, state.ChallengeFormModel{GroupID: id, Title: "Daily Dhikr", Goal: "100 dhikr", TotalDays: "10"})().(DoneMsg); done.Err != nil {
		t.Fatalf("createGroupChallenge: %v", done.Err)
	}
	if members := backend.Members(id); len(members) != 1 {
		t.Errorf("members = %v", members)
	}
}

func TestSubmitFormValidation(t *testing.T) {
	tests := []struct {
		name  string
		state constants.SessionState
		setup func(m *state.Model)
	}{
		{"register short password", constants.StateRegister, func(m *state.Model) {
			m.RegisterForm = &state.RegisterFormModel{FullName: "Bilal", Username: "bilal", Email: "bilal@example.com", Password: "123"}
		}},
		{"challenge without days", constants.StateAddChallenge, func(m *state.Model) {
			m.ChallengeForm = &state.ChallengeFormModel{Title: "Fast", Goal: "Mondays", TotalDays: "0"}
		}},
		{"group challenge without group", constants.StateAddGroupChallenge, func(m *state.Model) {
			m.ChallengeForm = &state.ChallengeFormModel{Title: "Fast", Goal: "Mondays", TotalDays: "7"}
		}},
		{"group without name", constants.StateAddGroup, func(m *state.Model) {
			m.GroupForm = &state.GroupFormModel{Name: "  "}
		}},
		{"task with bad date", constants.StateAddTask, func(m *state.Model) {
			m.TaskForm = &state.TaskFormModel{Title: "Read", Date: "14/03/2025"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newSignedIn(t)
			tt.setup(m)
			m.Form = NewGroupForm(&state.GroupFormModel{})
			m.State = tt.state
			m.FormReturn = constants.StateDashboard

			SubmitForm(m)
			if m.Alert == "" {
				t.Error("invalid input should raise an alert")
			}
			if m.Busy || m.State != tt.state || m.Form == nil {
				t.Errorf("form should stay open, busy = %v state = %v", m.Busy, m.State)
			}
		})
	}
}

func TestSubmitFormStartsRequest(t *testing.T) {
	m, _ := newSignedIn(t)
	m.GroupForm = &state.GroupFormModel{Name: "Fajr Friends"}
	m.Form = NewGroupForm(m.GroupForm)
	m.State = constants.StateAddGroup
	m.FormReturn = constants.StateGroups
	m.Alert = "old"

	cmd := SubmitForm(m)
	if cmd == nil || !m.Busy || m.Alert != "" {
		t.Fatalf("busy = %v, alert = %q", m.Busy, m.Alert)
	}
	if m.State != constants.StateGroups || m.Form != nil {
		t.Errorf("form should close back to groups, state = %v", m.State)
	}
}

func TestHandleComponentMessages(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.Msg
		wantState constants.SessionState
		wantBusy  bool
	}{
		{"add task opens form", tasklist.AddTaskMsg{}, constants.StateAddTask, false},
		{"edit task opens form", tasklist.EditTaskMsg{Task: models.Task{ID: "t1", Title: "Read"}}, constants.StateAddTask, false},
		{"delete task confirms", tasklist.DeleteTaskMsg{ID: "t1", Title: "Read"}, constants.StateConfirmDelete, false},
		{"toggle task", tasklist.ToggleTaskMsg{ID: "t1", Done: true}, constants.StateTasks, true},
		{"toggle prayer", prayerlist.TogglePrayerMsg{ID: "p1", Name: "Fajr"}, constants.StateTasks, true},
		{"create challenge opens form", challengelist.CreateChallengeMsg{}, constants.StateAddChallenge, false},
		{"join challenge", challengelist.JoinChallengeMsg{ID: "c1"}, constants.StateTasks, true},
		{"challenge progress", challengelist.ProgressChallengeMsg{ID: "c1"}, constants.StateTasks, true},
		{"create group opens form", grouplist.CreateGroupMsg{}, constants.StateAddGroup, false},
		{"open group", grouplist.OpenGroupMsg{ID: "g1"}, constants.StateTasks, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newSignedIn(t)
			m.State = constants.StateTasks

			handled, _ := HandleComponentMessages(m, tt.msg)
			if !handled {
				t.Fatal("message should be handled")
			}
			if m.State != tt.wantState || m.Busy != tt.wantBusy {
				t.Errorf("state = %v busy = %v, want %v %v", m.State, m.Busy, tt.wantState, tt.wantBusy)
			}
		})
	}

	m, _ := newSignedIn(t)
	if handled, _ := HandleComponentMessages(m, keyPress("x")); handled {
		t.Error("key presses are not component actions")
	}
}

func TestEditTaskPrefillsForm(t *testing.T) {
	m, _ := newSignedIn(t)
	HandleTaskMessages(m, tasklist.EditTaskMsg{Task: models.Task{ID: "t1", Title: "Read", Description: "Juz 1", Date: "2025-03-14"}})
	want := state.TaskFormModel{ID: "t1", Title: "Read", Description: "Juz 1", Date: "2025-03-14"}
	if m.TaskForm == nil || *m.TaskForm != want {
		t.Errorf("TaskForm = %+v, want %+v", m.TaskForm, want)
	}
}

func TestConfirmDeleteWhileBusy(t *testing.T) {
	m, _ := newSignedIn(t)
	m.State = constants.StateConfirmDelete
	m.TaskToDelete = tasklist.DeleteTaskMsg{ID: "t1", Title: "Read"}
	m.Busy = true

	if cmd := HandleConfirmDeleteState(m, keyPress("y")); cmd != nil {
		t.Error("delete should not start while another request runs")
	}
	if m.State != constants.StateTasks {
		t.Errorf("state = %v, want tasks", m.State)
	}
}

func TestGroupDetailKeys(t *testing.T) {
	details := models.GroupDetails{
		Group:   models.Group{ID: "g1", Name: "Fajr Friends"},
		Admins:  []models.Member{{UserID: "u1"}},
		Members: []models.Member{{UserID: "u1"}},
	}

	tests := []struct {
		name      string
		key       string
		wantBusy  bool
		wantAlert string
		wantState constants.SessionState
	}{
		{"join as member", "+", false, "You are already a member of this group", constants.StateGroupDetail},
		{"leave", "-", true, "", constants.StateGroupDetail},
		{"admin creates challenge", "n", false, "", constants.StateAddGroupChallenge},
		{"join missing challenge", "c", false, "This group has no active challenge", constants.StateGroupDetail},
		{"progress missing challenge", "p", false, "This group has no active challenge", constants.StateGroupDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newSignedIn(t)
			d := details
			m.Detail = &d
			m.State = constants.StateGroupDetail

			handled, _ := HandleKeys(m, keyPress(tt.key))
			if !handled {
				t.Fatal("key should be handled")
			}
			if m.Busy != tt.wantBusy || m.Alert != tt.wantAlert || m.State != tt.wantState {
				t.Errorf("busy = %v alert = %q state = %v", m.Busy, m.Alert, m.State)
			}
		})
	}
}

func TestGlobalKeys(t *testing.T) {
	m, _ := newSignedIn(t)

	m.Alert = "boom"
	m.Notice = "saved"
	HandleKeys(m, keyPress("esc"))
	if m.Alert != "" || m.Notice != "saved" {
		t.Errorf("first esc clears the alert only, alert = %q notice = %q", m.Alert, m.Notice)
	}
	HandleKeys(m, keyPress("esc"))
	if m.Notice != "" {
		t.Errorf("second esc clears the notice, got %q", m.Notice)
	}

	HandleKeys(m, keyPress("?"))
	if !m.Help.ShowAll {
		t.Error("? should expand the help")
	}

	if handled, cmd := HandleKeys(m, keyPress("q")); !handled || cmd == nil || !m.Quitting {
		t.Error("q should quit")
	}
}

func TestAuthKeysIgnoredWhileBusy(t *testing.T) {
	backend := clitest.New(t)
	ctx := backend.Context(t)
	m := state.New(ctx.Services, ctx.Session)

	if handled, _ := HandleKeys(&m, keyPress("l")); !handled || m.State != constants.StateAuth {
		t.Errorf("l before the session check should be swallowed, state = %v", m.State)
	}

	m.Busy = false
	HandleKeys(&m, keyPress("r"))
	if m.State != constants.StateRegister || m.RegisterForm == nil {
		t.Errorf("r should open registration, state = %v", m.State)
	}
}

func TestStaleSessionDropped(t *testing.T) {
	backend := clitest.New(t)
	ctx := backend.Context(t)
	m := state.New(ctx.Services, ctx.Session)
	gen := m.Generation
	m.Reset()

	handled, cmd := HandleSessionMessages(&m, SessionMsg{Gen: gen, User: models.User{ID: "u1"}, Authenticated: true})
	if !handled || cmd != nil || m.SignedIn {
		t.Errorf("a session from an earlier generation should be dropped, signedIn = %v", m.SignedIn)
	}
}
