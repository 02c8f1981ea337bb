package grouplist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/models"
)

type CreateGroupMsg struct{}

type OpenGroupMsg struct {
	ID string
}

type Item struct {
	Group  models.Group
	Member bool
}

func (i Item) Title() string {
	if i.Member {
		return "● " + i.Group.Name
	}
	return "○ " + i.Group.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d members", i.Group.MemberCount)
	if i.Member {
		desc += " | joined"
	}
	if i.Group.Description != "" {
		desc += " | " + i.Group.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Group.Name }

type KeyMap struct {
	Create key.Binding
	Open   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Create: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "create"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Groups"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Create, keys.Open}
	}

	return Model{list: l, keys: keys}
}

// SetGroups lists the user's groups first, then the rest
func (m *Model) SetGroups(all, mine []models.Group) {
	member := make(map[string]bool, len(mine))
	var out []list.Item
	for _, g := range mine {
		member[g.ID] = true
		out = append(out, Item{Group: g, Member: true})
	}
	for _, g := range all {
		if !member[g.ID] {
			out = append(out, Item{Group: g})
		}
	}
	m.list.SetItems(out)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Create):
			return m, func() tea.Msg { return CreateGroupMsg{} }
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenGroupMsg{ID: i.Group.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No groups yet.\n  Press 'a' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
