package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// HandleKeys routes a key press to the handler for the current state.
// It reports false when the key should reach the active component.
func HandleKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}

	if m.State == constants.StateConfirmDelete {
		return true, HandleConfirmDeleteState(m, msg)
	}

	// An active list filter owns the keyboard
	if m.Filtering() {
		return false, nil
	}

	if handled, cmd := HandleGlobalKeys(m, msg); handled {
		return true, cmd
	}
	if m.State == constants.StateAuth {
		return true, HandleAuthKeys(m, msg)
	}
	if handled, cmd := HandleNavigationKeys(m, msg); handled {
		return true, cmd
	}
	if m.State == constants.StateGroupDetail {
		return HandleGroupDetailKeys(m, msg)
	}
	return false, nil
}

// HandleGlobalKeys handles the keys available on every screen
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Dismiss):
		switch {
		case m.Alert != "":
			m.Alert = ""
		case m.State == constants.StateGroupDetail:
			m.State = constants.StateGroups
			m.Detail = nil
		default:
			m.Notice = ""
		}
		return true, nil
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	}
	return false, nil
}

// HandleNavigationKeys handles tab cycling, refresh and logout once signed in
func HandleNavigationKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Tab) && m.IsTab():
		m.State = m.NextTab(1)
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab) && m.IsTab():
		m.State = m.NextTab(-1)
		return true, nil
	case key.Matches(msg, m.Keys.Refresh):
		m.Alert = ""
		return true, Reload(m, m.State)
	case key.Matches(msg, m.Keys.Logout):
		if m.Busy {
			return true, nil
		}
		m.Busy = true
		return true, logout(m)
	}
	return false, nil
}
