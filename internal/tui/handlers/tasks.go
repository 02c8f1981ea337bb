package handlers

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/stats"
	"github.com/julianstephens/habithaven/internal/tui/components/tasklist"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// HandleTaskMessages handles the task list actions
func HandleTaskMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.TaskForm = &state.TaskFormModel{}
		return true, OpenForm(m, NewTaskForm(m.TaskForm), constants.StateAddTask, constants.StateTasks)
	case tasklist.EditTaskMsg:
		t := msg.Task
		m.TaskForm = &state.TaskFormModel{ID: t.ID, Title: t.Title, Description: t.Description, Date: t.Date}
		return true, OpenForm(m, NewTaskForm(m.TaskForm), constants.StateAddTask, constants.StateTasks)
	case tasklist.DeleteTaskMsg:
		m.TaskToDelete = msg
		m.State = constants.StateConfirmDelete
		return true, nil
	case tasklist.ToggleTaskMsg:
		m.Busy = true
		return true, setTaskCompleted(m, msg.ID, msg.Done)
	}
	return false, nil
}

func applyTasks(m *state.Model, msg TasksMsg) {
	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		return
	}
	m.Snapshot.Tasks = msg.Tasks
	m.Snapshot.TaskStats = stats.Tasks(msg.Tasks)
	m.Snapshot.TasksErr = nil
	m.TaskList.SetTasks(msg.Tasks)
}

func submitTask(m *state.Model) tea.Cmd {
	fm := *m.TaskForm
	return submit(m, fm.Input(),
		func() *huh.Form { return NewTaskForm(m.TaskForm) },
		func() tea.Cmd {
			if fm.ID != "" {
				return updateTask(m, fm)
			}
			return createTask(m, fm)
		},
	)
}

func loadTasks(m *state.Model) tea.Cmd {
	svc, gen := m.Services, m.Generation
	return func() tea.Msg {
		tasks, err := svc.Tasks.List(context.Background())
		return TasksMsg{Gen: gen, Tasks: tasks, Err: err}
	}
}

func createTask(m *state.Model, fm state.TaskFormModel) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateTasks, fmt.Sprintf("Added task: %s", fm.Title), func(ctx context.Context) error {
		_, err := svc.Tasks.Create(ctx, fm.Input())
		return err
	})
}

func updateTask(m *state.Model, fm state.TaskFormModel) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateTasks, fmt.Sprintf("Updated task: %s", fm.Title), func(ctx context.Context) error {
		_, err := svc.Tasks.Update(ctx, fm.ID, fm.Input())
		return err
	})
}

func setTaskCompleted(m *state.Model, id string, done bool) tea.Cmd {
	svc := m.Services
	notice := "Task marked pending"
	if done {
		notice = "Task done"
	}
	return mutate(m, constants.StateTasks, notice, func(ctx context.Context) error {
		_, err := svc.Tasks.SetCompleted(ctx, id, done)
		return err
	})
}

func deleteTask(m *state.Model, id, title string) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StateTasks, fmt.Sprintf("Deleted task: %s", title), func(ctx context.Context) error {
		return svc.Tasks.Delete(ctx, id)
	})
}
