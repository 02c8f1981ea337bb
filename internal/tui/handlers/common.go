package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/tui/components/challengelist"
	"github.com/julianstephens/habithaven/internal/tui/components/grouplist"
	"github.com/julianstephens/habithaven/internal/tui/components/prayerlist"
	"github.com/julianstephens/habithaven/internal/tui/components/tasklist"
	"github.com/julianstephens/habithaven/internal/tui/state"
	"github.com/julianstephens/habithaven/internal/validation"
)

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// OpenForm shows form in formState; esc or completion returns to back
func OpenForm(m *state.Model, form *huh.Form, formState, back constants.SessionState) tea.Cmd {
	m.Form = form
	m.State = formState
	m.FormReturn = back
	m.Notice = ""
	return m.Form.Init()
}

func CloseForm(m *state.Model) {
	m.Form = nil
	m.State = m.FormReturn
}

// HandleFormState forwards msg to the open form and submits it on completion
func HandleFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		CloseForm(m)
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		cmds = append(cmds, SubmitForm(m))
	case huh.StateAborted:
		CloseForm(m)
	}
	return tea.Batch(cmds...)
}

// SubmitForm validates the completed form and starts its backend call
func SubmitForm(m *state.Model) tea.Cmd {
	switch m.State {
	case constants.StateLogin:
		return submitLogin(m)
	case constants.StateRegister:
		return submitRegister(m)
	case constants.StateAddTask:
		return submitTask(m)
	case constants.StateAddChallenge:
		return submitChallenge(m)
	case constants.StateAddGroupChallenge:
		return submitGroupChallenge(m)
	case constants.StateAddGroup:
		return submitGroup(m)
	}
	CloseForm(m)
	return nil
}

// submit starts run when in is valid. Invalid input reopens the form with
// the values kept.
func submit(m *state.Model, in any, reopen func() *huh.Form, run func() tea.Cmd) tea.Cmd {
	if err := validation.Struct(in); err != nil {
		m.Alert = errors.Alert(err)
		m.Form = reopen()
		return m.Form.Init()
	}
	m.Alert = ""
	CloseForm(m)
	m.Busy = true
	return run()
}

// HandleComponentMessages routes the action messages emitted by the lists.
// Actions are dropped while another request is in flight.
func HandleComponentMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case tasklist.AddTaskMsg, tasklist.EditTaskMsg, tasklist.DeleteTaskMsg, tasklist.ToggleTaskMsg,
		prayerlist.TogglePrayerMsg,
		challengelist.CreateChallengeMsg, challengelist.JoinChallengeMsg, challengelist.ProgressChallengeMsg,
		grouplist.CreateGroupMsg, grouplist.OpenGroupMsg:
		if m.Busy {
			return true, nil
		}
	default:
		return false, nil
	}

	if handled, cmd := HandleTaskMessages(m, msg); handled {
		return true, cmd
	}
	if handled, cmd := HandlePrayerMessages(m, msg); handled {
		return true, cmd
	}
	if handled, cmd := HandleChallengeMessages(m, msg); handled {
		return true, cmd
	}
	return HandleGroupMessages(m, msg)
}

// UpdateActive forwards msg to the component behind the current view
func UpdateActive(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.State {
	case constants.StateTasks:
		m.TaskList, cmd = m.TaskList.Update(msg)
	case constants.StatePrayers:
		m.PrayerList, cmd = m.PrayerList.Update(msg)
	case constants.StateChallenges:
		m.ChallengeList, cmd = m.ChallengeList.Update(msg)
	case constants.StateGroups:
		m.GroupList, cmd = m.GroupList.Update(msg)
	case constants.StateGroupDetail:
		m.Leaderboard, cmd = m.Leaderboard.Update(msg)
	}
	return cmd
}

func NewLoginForm(fm *state.LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(notEmpty("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(notEmpty("password")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewRegisterForm(fm *state.RegisterFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&fm.FullName).
				Validate(notEmpty("full name")),
			huh.NewInput().
				Title("Username").
				Value(&fm.Username).
				Validate(notEmpty("username")),
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(notEmpty("email")),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(notEmpty("password")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewTaskForm(fm *state.TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(notEmpty("title")),
			huh.NewText().
				Title("Description (optional)").
				Value(&fm.Description),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Description("Leave empty for today").
				Value(&fm.Date),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewChallengeForm(fm *state.ChallengeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(notEmpty("title")),
			huh.NewInput().
				Title("Goal").
				Description("What participants do each day").
				Value(&fm.Goal).
				Validate(notEmpty("goal")),
			huh.NewInput().
				Title("Length (days)").
				Value(&fm.TotalDays).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || i <= 0 {
						return fmt.Errorf("length must be a positive number of days")
					}
					return nil
				}),
			huh.NewText().
				Title("Description (optional)").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewGroupForm(fm *state.GroupFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Group name").
				Value(&fm.Name).
				Validate(notEmpty("group name")),
			huh.NewText().
				Title("Description (optional)").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}
