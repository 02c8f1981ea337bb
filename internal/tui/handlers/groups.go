package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/tui/components/grouplist"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// HandleGroupMessages handles the group list actions
func HandleGroupMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case grouplist.CreateGroupMsg:
		m.GroupForm = &state.GroupFormModel{}
		return true, OpenForm(m, NewGroupForm(m.GroupForm), constants.StateAddGroup, constants.StateGroups)
	case grouplist.OpenGroupMsg:
		m.Busy = true
		m.LoadingDetail = true
		return true, loadGroupDetail(m, msg.ID)
	}
	return false, nil
}

// HandleGroupDetailKeys handles membership and challenge keys on the
// group detail view
func HandleGroupDetailKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.Detail == nil {
		return false, nil
	}
	d := m.Detail
	k := m.Keys
	if !key.Matches(msg, k.JoinGroup, k.LeaveGroup, k.NewGroupChallenge, k.JoinGroupChallenge, k.GroupProgress) {
		return false, nil
	}
	if m.Busy {
		return true, nil
	}

	switch {
	case key.Matches(msg, k.JoinGroup):
		if d.IsMember(m.User.ID) {
			m.Alert = "You are already a member of this group"
			return true, nil
		}
		m.Busy = true
		return true, joinGroup(m, d.Group.ID)
	case key.Matches(msg, k.LeaveGroup):
		if !d.IsMember(m.User.ID) {
			m.Alert = "You are not a member of this group"
			return true, nil
		}
		m.Busy = true
		return true, leaveGroup(m, d.Group.ID)
	case key.Matches(msg, k.NewGroupChallenge):
		if !d.IsAdmin(m.User.ID) {
			m.Alert = "Only group admins can create challenges"
			return true, nil
		}
		m.ChallengeForm = &state.ChallengeFormModel{GroupID: d.Group.ID, TotalDays: defaultChallengeDays}
		return true, OpenForm(m, NewChallengeForm(m.ChallengeForm), constants.StateAddGroupChallenge, constants.StateGroupDetail)
	}

	if d.Challenge == nil {
		m.Alert = "This group has no active challenge"
		return true, nil
	}
	m.Busy = true
	if key.Matches(msg, k.JoinGroupChallenge) {
		return true, joinGroupChallenge(m, d.Challenge.ID)
	}
	return true, groupChallengeProgress(m, d.Challenge.ID)
}

func applyGroups(m *state.Model, msg GroupsMsg) {
	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		return
	}
	m.GroupList.SetGroups(msg.All, msg.Mine)
}

// applyGroupDetail settles a detail load. A load started from the list
// opens the view and ends the busy state; a refresh only replaces the
// details of the group still on screen.
func applyGroupDetail(m *state.Model, msg GroupDetailMsg) {
	opening := m.LoadingDetail
	if opening {
		m.LoadingDetail = false
		m.Busy = false
	}

	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		if m.State == constants.StateGroupDetail && m.Detail == nil {
			m.State = constants.StateGroups
		}
		return
	}
	if !opening && (m.State != constants.StateGroupDetail || m.Detail == nil || m.Detail.Group.ID != msg.ID) {
		return
	}

	d := msg.Details
	m.Detail = &d
	totalDays := 0
	if d.Challenge != nil {
		totalDays = d.Challenge.TotalDays
	}
	m.Leaderboard.SetEntries(d.Participants, totalDays)
	if opening && m.State == constants.StateGroups {
		m.State = constants.StateGroupDetail
	}
}

func submitGroup(m *state.Model) tea.Cmd {
	fm := *m.GroupForm
	return submit(m, fm.Input(),
		func() *huh.Form { return NewGroupForm(m.GroupForm) },
		func() tea.Cmd { return createGroup(m, fm) },
	)
}

func submitGroupChallenge(m *state.Model) tea.Cmd {
	fm := *m.ChallengeForm
	return submit(m, fm.GroupInput(),
		func() *huh.Form { return NewChallengeForm(m.ChallengeForm) },
		func() tea.Cmd { return createGroupChallenge(m, fm) },
	)
}

func loadGroups(m *state.Model) tea.Cmd {
	svc, gen := m.Services, m.Generation
	return func() tea.Msg {
		ctx := context.Background()
		all, err := svc.Groups.List(ctx)
		if err != nil {
			return GroupsMsg{Gen: gen, Err: err}
		}
		mine, err := svc.Groups.Mine(ctx)
		return GroupsMsg{Gen: gen, All: all, Mine: mine, Err: err}
	}
}

func loadGroupDetail(m *state.Model, id string) tea.Cmd {
	svc, gen := m.Services, m.Generation
	return func() tea.Msg {
		d, err := svc.Groups.Details(context.Background(), id)
		return GroupDetailMsg{Gen: gen, ID: id, Details: d, Err: err}
	}
}

func createGroup(m *state.Model, fm state.GroupFormModel) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateGroups, fmt.Sprintf("Created group: %s", fm.Name), func(ctx context.Context) error {
		_, err := svc.Groups.Create(ctx, fm.Input())
		return err
	})
}

func joinGroup(m *state.Model, id string) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateGroupDetail, "Joined group", func(ctx context.Context) error {
		return svc.Groups.Join(ctx, id)
	})
}

func leaveGroup(m *state.Model, id string) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateGroupDetail, "Left group", func(ctx context.Context) error {
		return svc.Groups.Leave(ctx, id)
	})
}

func createGroupChallenge(m *state.Model, fm state.ChallengeFormModel) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateGroupDetail, fmt.Sprintf("Created group challenge: %s", fm.Title), func(ctx context.Context) error {
		_, err := svc.GroupChallenges.Create(ctx, fm.GroupInput())
		return err
	})
}

func joinGroupChallenge(m *state.Model, id string) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateGroupDetail, "Joined group challenge", func(ctx context.Context) error {
		return svc.GroupChallenges.Join(ctx, id)
	})
}

func groupChallengeProgress(m *state.Model, id string) tea.Cmd {
	svc := m.Services
	cmd := mutate(m, constants.StateGroupDetail, "Progress recorded", func(ctx context.Context) error {
		return svc.GroupChallenges.UpdateProgress(ctx, id)
	})
	return withRefresh(cmd)
}
