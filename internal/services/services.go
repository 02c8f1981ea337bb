// Package services wraps the HabitHaven backend endpoints and normalizes
// their responses into the canonical models.
package services

import (
	"context"

	"github.com/julianstephens/habithaven/internal/api"
)

// Requester is the subset of *api.Client the services depend on
type Requester interface {
	Get(ctx context.Context, endpoint string) api.Result
	Post(ctx context.Context, endpoint string, body any) api.Result
	Put(ctx context.Context, endpoint string, body any) api.Result
	Patch(ctx context.Context, endpoint string, body any) api.Result
	Delete(ctx context.Context, endpoint string) api.Result
}

// Services bundles every domain service over one client
type Services struct {
	Auth            *AuthService
	Tasks           *TaskService
	Prayers         *PrayerService
	Challenges      *ChallengeService
	Groups          *GroupService
	GroupChallenges *GroupChallengeService
}

func New(client Requester) *Services {
	return &Services{
		Auth:            NewAuthService(client),
		Tasks:           NewTaskService(client),
		Prayers:         NewPrayerService(client),
		Challenges:      NewChallengeService(client),
		Groups:          NewGroupService(client),
		GroupChallenges: NewGroupChallengeService(client),
	}
}

// listOf decodes a list response. A not-found failure is an empty list.
func listOf[D any, M any](res api.Result, conv func(D) M) ([]M, error) {
	if err := res.Err(); err != nil {
		if api.IsNotFound(err) {
			return []M{}, nil
		}
		return nil, err
	}
	dtos := api.DecodeList[D](res.Data)
	out := make([]M, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, conv(d))
	}
	return out, nil
}

// objectOf decodes an object response, descending into the first present key.
func objectOf[D any, M any](res api.Result, conv func(D) M, keys ...string) (M, error) {
	var zero M
	if err := res.Err(); err != nil {
		return zero, err
	}
	dto, err := api.DecodeObject[D](res.Data, keys...)
	if err != nil {
		return zero, err
	}
	return conv(dto), nil
}

// mutationOf is objectOf for mutations: the call succeeded even when the
// response carries no usable object, so the zero model is returned.
func mutationOf[D any, M any](res api.Result, conv func(D) M, keys ...string) (M, error) {
	var zero M
	if err := res.Err(); err != nil {
		return zero, err
	}
	dto, err := api.DecodeObject[D](res.Data, keys...)
	if err != nil {
		return zero, nil
	}
	return conv(dto), nil
}
