package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// HandleConfirmDeleteState handles the delete confirmation state. Every
// key is consumed; y deletes TaskToDelete and n or esc cancels.
func HandleConfirmDeleteState(m *state.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.State = constants.StateTasks
		if m.Busy {
			return nil
		}
		m.Busy = true
		return deleteTask(m, m.TaskToDelete.ID, m.TaskToDelete.Title)
	case key.Matches(msg, m.Keys.Cancel):
		m.State = constants.StateTasks
	}
	return nil
}
