package challengelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/stats"
)

type CreateChallengeMsg struct{}

type JoinChallengeMsg struct {
	ID string
}

type ProgressChallengeMsg struct {
	ID string
}

// Item is a challenge, joined or not. Joined items carry the user's progress.
type Item struct {
	Challenge models.Challenge
	Joined    bool
	Progress  int
	Completed bool
}

func (i Item) Title() string {
	switch {
	case i.Completed:
		return "✓ " + i.Challenge.Title
	case i.Joined:
		return "● " + i.Challenge.Title
	default:
		return "○ " + i.Challenge.Title
	}
}

func (i Item) Description() string {
	if !i.Joined {
		desc := fmt.Sprintf("%d days | %s", i.Challenge.TotalDays, i.Challenge.Goal)
		if !i.Challenge.IsActive() {
			desc += " | expired"
		}
		return desc
	}
	pct := stats.ProgressPercentage(i.Progress, i.Challenge.TotalDays)
	return fmt.Sprintf("%s day %d/%d", cli.ProgressBar(pct, 12), i.Progress, i.Challenge.TotalDays)
}

func (i Item) FilterValue() string { return i.Challenge.Title }

type KeyMap struct {
	Create   key.Binding
	Join     key.Binding
	Progress key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Create: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "create"),
		),
		Join: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "join"),
		),
		Progress: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "log progress"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Challenges"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Create, keys.Join, keys.Progress}
	}

	return Model{list: l, keys: keys}
}

// SetChallenges lists the user's participations first, then every other
// challenge that can still be joined
func (m *Model) SetChallenges(all []models.Challenge, mine []models.ChallengeParticipation) {
	joined := make(map[string]bool, len(mine))
	var out []list.Item
	for _, p := range mine {
		joined[p.Challenge.ID] = true
		out = append(out, Item{Challenge: p.Challenge, Joined: true, Progress: p.Progress, Completed: p.Completed})
	}
	for _, c := range all {
		if joined[c.ID] || c.IsGroup {
			continue
		}
		out = append(out, Item{Challenge: c})
	}
	m.list.SetItems(out)
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		out = append(out, it.(Item))
	}
	return out
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		i, selected := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Create):
			return m, func() tea.Msg { return CreateChallengeMsg{} }
		case key.Matches(msg, m.keys.Join):
			if selected && !i.Joined && i.Challenge.IsActive() {
				return m, func() tea.Msg { return JoinChallengeMsg{ID: i.Challenge.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Progress):
			if selected && i.Joined && !i.Completed {
				return m, func() tea.Msg { return ProgressChallengeMsg{ID: i.Challenge.ID} }
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
		return "\n  No challenges yet.\n  Press 'a' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
