package services

import (
	"context"
	"fmt"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
)

type GroupChallengeService struct {
	client Requester
}

func NewGroupChallengeService(client Requester) *GroupChallengeService {
	return &GroupChallengeService{client: client}
}

type GroupChallengeInput struct {
	GroupID     string `json:"groupId" validate:"notblank"`
	Title       string `json:"title" validate:"notblank,max=120"`
	Description string `json:"description" validate:"max=500"`
	Goal        string `json:"goal" validate:"notblank,max=200"`
	TotalDays   int    `json:"totalDays" validate:"gt=0"`
}

func (s *GroupChallengeService) Create(ctx context.Context, in GroupChallengeInput) (models.Challenge, error) {
	res := s.client.Post(ctx, constants.EndpointCreateGroupChallenge, in)
	c, err := mutationOf(res, challengeDTO.toModel, "challenge", "groupChallenge")
	if err != nil {
		return models.Challenge{}, fmt.Errorf("create group challenge: %w", err)
	}
	c.IsGroup = true
	if c.GroupID == "" {
		c.GroupID = in.GroupID
	}
	return c, nil
}

func (s *GroupChallengeService) Join(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, fmt.Sprintf(constants.EndpointJoinGroupChallenge, id), nil).Err(); err != nil {
		return fmt.Errorf("join group challenge %s: %w", id, err)
	}
	return nil
}

func (s *GroupChallengeService) UpdateProgress(ctx context.Context, id string) error {
	if err := s.client.Patch(ctx, fmt.Sprintf(constants.EndpointGroupChallengeProgress, id), nil).Err(); err != nil {
		return fmt.Errorf("update group challenge %s progress: %w", id, err)
	}
	return nil
}

// Leaderboard returns the participants in the order the backend ranked them
func (s *GroupChallengeService) Leaderboard(ctx context.Context, id string) ([]models.LeaderboardEntry, error) {
	entries, err := listOf(s.client.Get(ctx, fmt.Sprintf(constants.EndpointLeaderboard, id)), leaderboardDTO.toModel)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard %s: %w", id, err)
	}
	return entries, nil
}
