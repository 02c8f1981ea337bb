package services

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/utils"
)

type TaskService struct {
	client Requester
	Now    func() time.Time
}

func NewTaskService(client Requester) *TaskService {
	return &TaskService{client: client, Now: time.Now}
}

// TaskInput is the create/update body. An empty Date means today.
type TaskInput struct {
	Title       string `json:"title" validate:"notblank,max=120"`
	Description string `json:"description" validate:"max=500"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (s *TaskService) withDate(in TaskInput) TaskInput {
	if in.Date == "" {
		in.Date = utils.Today(s.Now)
	}
	return in
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (models.Task, error) {
	t, err := mutationOf(s.client.Post(ctx, constants.EndpointCreateTask, s.withDate(in)), taskDTO.toModel, "task")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := listOf(s.client.Get(ctx, constants.EndpointListTasks), taskDTO.toModel)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (models.Task, error) {
	endpoint := fmt.Sprintf(constants.EndpointUpdateTask, id)
	t, err := mutationOf(s.client.Put(ctx, endpoint, s.withDate(in)), taskDTO.toModel, "task")
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// SetCompleted marks a task done or not done
func (s *TaskService) SetCompleted(ctx context.Context, id string, completed bool) (models.Task, error) {
	endpoint := fmt.Sprintf(constants.EndpointCompleteTask, id)
	body := map[string]bool{"isCompleted": completed}
	t, err := mutationOf(s.client.Put(ctx, endpoint, body), taskDTO.toModel, "task")
	if err != nil {
		return models.Task{}, fmt.Errorf("complete task %s: %w", id, err)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, fmt.Sprintf(constants.EndpointDeleteTask, id)).Err(); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}
