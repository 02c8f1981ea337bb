package prayerlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/models"
)

type TogglePrayerMsg struct {
	ID   string
	Name string
}

type Item struct {
	Prayer models.Prayer
}

func (i Item) Title() string {
	return cli.CheckMark(i.Prayer.IsCompleted) + " " + i.Prayer.Name
}

func (i Item) Description() string {
	status := "pending"
	if i.Prayer.IsCompleted {
		status = "completed"
	}
	if !i.Prayer.IsMandatory() {
		status += " | optional"
	}
	return status
}

func (i Item) FilterValue() string { return i.Prayer.Name }

type Model struct {
	list   list.Model
	toggle key.Binding
}

func New(prayers []models.Prayer, width, height int) Model {
	l := list.New(items(prayers), list.NewDefaultDelegate(), width, height)
	l.Title = "Prayers"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	toggle := key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{toggle} }

	return Model{list: l, toggle: toggle}
}

func items(prayers []models.Prayer) []list.Item {
	out := make([]list.Item, len(prayers))
	for i, p := range prayers {
		out[i] = Item{Prayer: p}
	}
	return out
}

func (m *Model) SetPrayers(prayers []models.Prayer) {
	m.list.SetItems(items(prayers))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.toggle) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			return m, func() tea.Msg { return TogglePrayerMsg{ID: i.Prayer.ID, Name: i.Prayer.Name} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No prayers for today yet.\n  Press 'r' to create today's set."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
