package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if handled, cmd := handlers.HandleSessionMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleDataMessages(&m.Model, msg); handled {
		return m, cmd
	}

	if m.Form != nil {
		cmd := handlers.HandleFormState(&m.Model, msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleKeys(&m.Model, msg); handled {
			return m, cmd
		}
	}

	if handled, cmd := handlers.HandleComponentMessages(&m.Model, msg); handled {
		return m, cmd
	}

	cmd := handlers.UpdateActive(&m.Model, msg)
	return m, cmd
}
