package handlers

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/tui/components/challengelist"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// defaultChallengeDays prefills the length field of new challenges
const defaultChallengeDays = "30"

// HandleChallengeMessages handles the challenge list actions
func HandleChallengeMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case challengelist.CreateChallengeMsg:
		m.ChallengeForm = &state.ChallengeFormModel{TotalDays: defaultChallengeDays}
		return true, OpenForm(m, NewChallengeForm(m.ChallengeForm), constants.StateAddChallenge, constants.StateChallenges)
	case challengelist.JoinChallengeMsg:
		m.Busy = true
		return true, joinChallenge(m, msg.ID)
	case challengelist.ProgressChallengeMsg:
		m.Busy = true
		return true, challengeProgress(m, msg.ID)
	}
	return false, nil
}

func applyChallenges(m *state.Model, msg ChallengesMsg) {
	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		return
	}
	m.ChallengeList.SetChallenges(msg.All, msg.Mine)
}

func submitChallenge(m *state.Model) tea.Cmd {
	fm := *m.ChallengeForm
	return submit(m, fm.Input(),
		func() *huh.Form { return NewChallengeForm(m.ChallengeForm) },
		func() tea.Cmd { return createChallenge(m, fm) },
	)
}

func loadChallenges(m *state.Model) tea.Cmd {
	svc, gen := m.Services, m.Generation
	return func() tea.Msg {
		ctx := context.Background()
		all, err := svc.Challenges.List(ctx)
		if err != nil {
			return ChallengesMsg{Gen: gen, Err: err}
		}
		mine, err := svc.Challenges.Mine(ctx)
		return ChallengesMsg{Gen: gen, All: all, Mine: mine, Err: err}
	}
}

func createChallenge(m *state.Model, fm state.ChallengeFormModel) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateChallenges, fmt.Sprintf("Created challenge: %s", fm.Title), func(ctx context.Context) error {
		_, err := svc.Challenges.Create(ctx, fm.Input())
		return err
	})
}

func joinChallenge(m *state.Model, id string) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateChallenges, "Joined challenge", func(ctx context.Context) error {
		return svc.Challenges.Join(ctx, id)
	})
}

func challengeProgress(m *state.Model, id string) tea.Cmd {
	svc := m.Services
	cmd := mutate(m, constants.StateChallenges, "Progress recorded", func(ctx context.Context) error {
		_, err := svc.Challenges.UpdateProgress(ctx, id)
		return err
	})
	return withRefresh(cmd)
}
