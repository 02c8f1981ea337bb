package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/logger"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/utils"
)

type PrayerService struct {
	client Requester
	Now    func() time.Time
}

func NewPrayerService(client Requester) *PrayerService {
	return &PrayerService{client: client, Now: time.Now}
}

// TodayResult is today's prayer set. NeedsCreation is set when the backend
// reported that no set exists yet for today.
type TodayResult struct {
	Prayers       []models.Prayer
	NeedsCreation bool
}

func (s *PrayerService) decode(res api.Result) ([]models.Prayer, error) {
	date := utils.Today(s.Now)
	prayers, err := listOf(res, func(d prayerDTO) models.Prayer { return d.toModel(date) })
	if err != nil {
		return nil, err
	}
	sortPrayers(prayers)
	return prayers, nil
}

// Today fetches today's prayers. A not-found response is an empty set that
// needs creation, not an error.
func (s *PrayerService) Today(ctx context.Context) (TodayResult, error) {
	res := s.client.Get(ctx, constants.EndpointTodayPrayers)
	if err := res.Err(); err != nil && api.IsNotFound(err) {
		return TodayResult{Prayers: []models.Prayer{}, NeedsCreation: true}, nil
	}
	prayers, err := s.decode(res)
	if err != nil {
		return TodayResult{}, fmt.Errorf("fetch today's prayers: %w", err)
	}
	return TodayResult{Prayers: prayers}, nil
}

// LogToday creates today's prayer set. The backend treats repeats as no-ops.
func (s *PrayerService) LogToday(ctx context.Context) ([]models.Prayer, error) {
	prayers, err := s.decode(s.client.Post(ctx, constants.EndpointLogPrayers, nil))
	if err != nil {
		return nil, fmt.Errorf("log today's prayers: %w", err)
	}
	return prayers, nil
}

// EnsureToday returns today's prayers, creating the set first when none exist
func (s *PrayerService) EnsureToday(ctx context.Context) (TodayResult, error) {
	current, err := s.Today(ctx)
	if err != nil {
		return TodayResult{}, err
	}
	if !current.NeedsCreation && len(current.Prayers) > 0 {
		return current, nil
	}

	logger.Debug("Creating today's prayer set")
	if _, err := s.LogToday(ctx); err != nil {
		return TodayResult{}, err
	}
	return s.Today(ctx)
}

// Toggle flips a prayer's completion state
func (s *PrayerService) Toggle(ctx context.Context, id string) (models.Prayer, error) {
	date := utils.Today(s.Now)
	endpoint := fmt.Sprintf(constants.EndpointTogglePrayer, id)
	p, err := mutationOf(s.client.Post(ctx, endpoint, nil), func(d prayerDTO) models.Prayer { return d.toModel(date) }, "prayer")
	if err != nil {
		return models.Prayer{}, fmt.Errorf("toggle prayer %s: %w", id, err)
	}
	return p, nil
}

// sortPrayers orders a day's prayers by constants.PrayerOrder; unknown names go last.
func sortPrayers(prayers []models.Prayer) {
	rank := func(name string) int {
		if i := slices.Index(constants.PrayerOrder, name); i >= 0 {
			return i
		}
		return len(constants.PrayerOrder)
	}
	slices.SortStableFunc(prayers, func(a, b models.Prayer) int {
		return rank(a.Name) - rank(b.Name)
	})
}
