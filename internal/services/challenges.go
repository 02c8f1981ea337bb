package services

import (
	"context"
	"fmt"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
)

type ChallengeService struct {
	client Requester
}

func NewChallengeService(client Requester) *ChallengeService {
	return &ChallengeService{client: client}
}

type ChallengeInput struct {
	Title       string `json:"title" validate:"notblank,max=120"`
	Description string `json:"description" validate:"max=500"`
	Goal        string `json:"goal" validate:"notblank,max=200"`
	TotalDays   int    `json:"totalDays" validate:"gt=0"`
}

type challengeBody struct {
	ChallengeInput
	IsGroup bool `json:"isGroup"`
}

func (s *ChallengeService) Create(ctx context.Context, in ChallengeInput) (models.Challenge, error) {
	res := s.client.Post(ctx, constants.EndpointCreateChallenge, challengeBody{ChallengeInput: in})
	c, err := mutationOf(res, challengeDTO.toModel, "challenge")
	if err != nil {
		return models.Challenge{}, fmt.Errorf("create challenge: %w", err)
	}
	return c, nil
}

// List returns the challenges available to join
func (s *ChallengeService) List(ctx context.Context) ([]models.Challenge, error) {
	challenges, err := listOf(s.client.Get(ctx, constants.EndpointListChallenges), challengeDTO.toModel)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return challenges, nil
}

// Mine returns the current user's participations
func (s *ChallengeService) Mine(ctx context.Context) ([]models.ChallengeParticipation, error) {
	parts, err := listOf(s.client.Get(ctx, constants.EndpointMyChallenges), participationDTO.toModel)
	if err != nil {
		return nil, fmt.Errorf("list my challenges: %w", err)
	}
	return parts, nil
}

func (s *ChallengeService) Join(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, fmt.Sprintf(constants.EndpointJoinChallenge, id), nil).Err(); err != nil {
		return fmt.Errorf("join challenge %s: %w", id, err)
	}
	return nil
}

// UpdateProgress records one more day of progress. The returned
// participation is zero when the backend sends no body.
func (s *ChallengeService) UpdateProgress(ctx context.Context, id string) (models.ChallengeParticipation, error) {
	res := s.client.Patch(ctx, fmt.Sprintf(constants.EndpointChallengeProgress, id), nil)
	p, err := mutationOf(res, participationDTO.toModel, "participation", "userChallenge")
	if err != nil {
		return models.ChallengeParticipation{}, fmt.Errorf("update challenge %s progress: %w", id, err)
	}
	if p.Challenge.ID == "" {
		p.Challenge.ID = id
	}
	return p, nil
}
