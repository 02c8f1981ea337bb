package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/logger"
	"github.com/julianstephens/habithaven/internal/models"
)

type GroupService struct {
	client Requester
}

func NewGroupService(client Requester) *GroupService {
	return &GroupService{client: client}
}

type GroupInput struct {
	Name        string `json:"name" validate:"notblank,max=80"`
	Description string `json:"description" validate:"max=500"`
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (models.Group, error) {
	g, err := mutationOf(s.client.Post(ctx, constants.EndpointCreateGroup, in), groupDTO.toModel, "group")
	if err != nil {
		return models.Group{}, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := listOf(s.client.Get(ctx, constants.EndpointListGroups), groupDTO.toModel)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Mine returns the groups the current user belongs to
func (s *GroupService) Mine(ctx context.Context) ([]models.Group, error) {
	groups, err := listOf(s.client.Get(ctx, constants.EndpointMyGroups), groupDTO.toModel)
	if err != nil {
		return nil, fmt.Errorf("list my groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) Join(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, fmt.Sprintf(constants.EndpointJoinGroup, id), nil).Err(); err != nil {
		return fmt.Errorf("join group %s: %w", id, err)
	}
	return nil
}

func (s *GroupService) Leave(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, fmt.Sprintf(constants.EndpointLeaveGroup, id), nil).Err(); err != nil {
		return fmt.Errorf("leave group %s: %w", id, err)
	}
	return nil
}

func (s *GroupService) Details(ctx context.Context, id string) (models.GroupDetails, error) {
	res := s.client.Get(ctx, fmt.Sprintf(constants.EndpointGroupDetails, id))
	if err := res.Err(); err != nil {
		return models.GroupDetails{}, fmt.Errorf("fetch group %s: %w", id, err)
	}
	details, err := decodeGroupDetails(res.Data)
	if err != nil {
		return models.GroupDetails{}, fmt.Errorf("fetch group %s: %w", id, err)
	}
	if details.Group.ID == "" {
		details.Group.ID = id
	}
	if details.Challenge != nil && details.Challenge.GroupID == "" {
		details.Challenge.GroupID = details.Group.ID
	}
	return details, nil
}

// decodeGroupDetails accepts the group either as the payload itself or
// nested under "group". Role lists may be explicit "admins"/"members"
// arrays or a single "members" array tagged with "role".
func decodeGroupDetails(body []byte) (models.GroupDetails, error) {
	obj, err := api.ObjectPayload(body)
	if err != nil {
		return models.GroupDetails{}, err
	}
	root := gjson.ParseBytes(obj)
	groupRes := root
	if g := root.Get("group"); g.IsObject() {
		groupRes = g
	}

	var gd groupDTO
	if err := json.Unmarshal([]byte(groupRes.Raw), &gd); err != nil {
		return models.GroupDetails{}, fmt.Errorf("%w: %w", api.ErrMalformedPayload, err)
	}
	details := models.GroupDetails{
		Group:        gd.toModel(),
		Admins:       []models.Member{},
		Members:      []models.Member{},
		Participants: []models.LeaderboardEntry{},
	}

	adminIDs := map[string]bool{}
	addAdmin := func(m models.Member) {
		if adminIDs[m.UserID] {
			return
		}
		adminIDs[m.UserID] = true
		details.Admins = append(details.Admins, m)
	}

	explicitAdmins := firstArray("admins", root, groupRes)
	for _, d := range decodeMembers(explicitAdmins) {
		addAdmin(d.toModel())
	}
	members := decodeMembers(firstArray("members", root, groupRes))
	if !explicitAdmins.Exists() {
		for _, d := range members {
			if d.isAdmin() {
				addAdmin(d.toModel())
			}
		}
	}
	for _, d := range members {
		m := d.toModel()
		if adminIDs[m.UserID] {
			continue
		}
		details.Members = append(details.Members, m)
	}
	if gd.MemberCount == nil && gd.MemberCountSnake == nil {
		details.Group.MemberCount = len(details.Admins) + len(details.Members)
	}

	challengeRes := firstObject([]string{"challenge", "groupChallenge", "activeChallenge"}, root, groupRes)
	if challengeRes.Exists() {
		var cd challengeDTO
		if err := json.Unmarshal([]byte(challengeRes.Raw), &cd); err == nil {
			c := cd.toModel()
			c.IsGroup = true
			details.Challenge = &c
		}
	}

	participants := firstArray("participants", root, challengeRes)
	if !participants.Exists() {
		participants = firstArray("leaderboard", root, challengeRes)
	}
	participants.ForEach(func(_, v gjson.Result) bool {
		var ld leaderboardDTO
		if err := json.Unmarshal([]byte(v.Raw), &ld); err != nil {
			logger.Debug("Skipping undecodable participant", "error", err)
			return true
		}
		details.Participants = append(details.Participants, ld.toModel())
		return true
	})

	return details, nil
}

// decodeMembers accepts member objects and bare user ids
func decodeMembers(res gjson.Result) []memberDTO {
	out := []memberDTO{}
	res.ForEach(func(_, v gjson.Result) bool {
		var d memberDTO
		switch {
		case v.IsObject():
			if err := json.Unmarshal([]byte(v.Raw), &d); err != nil {
				logger.Debug("Skipping undecodable member", "error", err)
				return true
			}
		case v.Type == gjson.String || v.Type == gjson.Number:
			d.UserID = &flexRef{ID: v.String()}
		default:
			return true
		}
		out = append(out, d)
		return true
	})
	return out
}

func firstArray(key string, candidates ...gjson.Result) gjson.Result {
	for _, c := range candidates {
		if res := c.Get(key); res.IsArray() {
			return res
		}
	}
	return gjson.Result{}
}

func firstObject(keys []string, candidates ...gjson.Result) gjson.Result {
	for _, c := range candidates {
		for _, key := range keys {
			if res := c.Get(key); res.IsObject() {
				return res
			}
		}
	}
	return gjson.Result{}
}
