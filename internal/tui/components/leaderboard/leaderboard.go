// Package leaderboard renders a group challenge's participants as a table.
package leaderboard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/stats"
)

type Model struct {
	table   table.Model
	summary stats.LeaderboardSummary
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return Model{table: t}
}

func columns(width int) []table.Column {
	name := max(width-46, 16)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: name},
		{Title: "Progress", Width: 20},
		{Title: "XP", Width: 8},
		{Title: "Done", Width: 6},
	}
}

// SetEntries fills the table in received order; the backend's ranking is kept
func (m *Model) SetEntries(entries []models.LeaderboardEntry, totalDays int) {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range stats.Ranked(entries) {
		rank := cli.MedalIcon(e.Medal)
		if rank == "" {
			rank = strconv.Itoa(e.Rank)
		}
		name := e.FullName
		if name == "" {
			name = e.Username
		}
		pct := stats.ProgressPercentage(e.Progress, totalDays)
		rows = append(rows, table.Row{rank, name, cli.ProgressBar(pct, 10), strconv.Itoa(e.XP), cli.CheckMark(e.Completed)})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.summary = stats.Leaderboard(entries, totalDays)
}

func (m Model) Rows() []table.Row {
	return m.table.Rows()
}

func (m Model) Summary() stats.LeaderboardSummary {
	return m.summary
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.table.Rows()) == 0 {
		return "  No participants yet"
	}
	return m.table.View() + fmt.Sprintf("\n  %d participants · %d completed · average progress %d%%",
		m.summary.Participants, m.summary.Completed, m.summary.AverageProgress)
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetHeight(height)
}
