package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// dashboardTaskLimit caps the tasks listed on the dashboard card
const dashboardTaskLimit = 5

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateAuth:
		content = m.viewAuth()
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateTasks:
		content = m.TaskList.View()
	case constants.StatePrayers:
		content = m.viewPrayers()
	case constants.StateChallenges:
		content = m.ChallengeList.View()
	case constants.StateGroups:
		content = m.GroupList.View()
	case constants.StateGroupDetail:
		content = m.viewGroupDetail()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewForm()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewStatus(),
		content,
		"",
		m.Help.View(m),
	))
}

func (m Model) viewHeader() string {
	if !m.SignedIn {
		return titleStyle.Render("🌙 HabitHaven")
	}

	var tabViews []string
	for _, t := range state.Tabs {
		style := inactiveTabStyle
		if t.State == m.State || (t.State == constants.StateGroups && m.State == constants.StateGroupDetail) {
			style = activeTabStyle
		}
		tabViews = append(tabViews, style.Render(t.Title))
	}
	badge := mutedStyle.Render(fmt.Sprintf("  %s · Lv %d · %d XP", m.User.DisplayName(), m.User.Level, m.User.XP))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabViews, badge)...)
}

func (m Model) viewStatus() string {
	switch {
	case m.Busy:
		return m.Spinner.View() + " Working..."
	case m.Alert != "":
		return dangerStyle.Render("✗ "+m.Alert) + mutedStyle.Render(" (esc to dismiss)")
	case m.Notice != "":
		return successStyle.Render("✓ " + m.Notice)
	}
	return ""
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString("\nBuild good habits, one day at a time.\n\n")
	b.WriteString("  l  Log in\n")
	b.WriteString("  r  Create an account\n")
	return b.String()
}

func (m Model) viewDashboard() string {
	u := m.User
	profile := cardStyle.Render(strings.Join([]string{
		titleStyle.Render("Assalamu alaikum, " + u.DisplayName()),
		fmt.Sprintf("Level %d · %d XP", u.Level, u.XP),
		fmt.Sprintf("🔥 %d day streak", u.StreakCount),
		fmt.Sprintf("Daily score: %d", u.DailyScore),
		fmt.Sprintf("Badges: %d", len(u.Badges)),
	}, "\n"))

	ts := m.Snapshot.TaskStats
	taskLines := []string{
		titleStyle.Render("Today's tasks"),
		fmt.Sprintf("%d/%d done %s", ts.Completed, ts.Total, cli.ProgressBar(ts.Percentage, 10)),
	}
	switch {
	case m.Snapshot.TasksErr != nil:
		taskLines = append(taskLines, dangerStyle.Render("Could not load tasks"))
	case len(m.Snapshot.Tasks) == 0:
		taskLines = append(taskLines, mutedStyle.Render("No tasks yet"))
	}
	for i, t := range m.Snapshot.Tasks {
		if i == dashboardTaskLimit {
			taskLines = append(taskLines, mutedStyle.Render(fmt.Sprintf("…and %d more", len(m.Snapshot.Tasks)-i)))
			break
		}
		taskLines = append(taskLines, cli.CheckMark(t.IsCompleted)+" "+t.Title)
	}

	ps := m.Snapshot.PrayerStats
	prayerLines := []string{
		titleStyle.Render("Prayers"),
		fmt.Sprintf("%d/%d mandatory %s", ps.CompletedMandatory, ps.Mandatory, cli.ProgressBar(ps.Percentage, 10)),
	}
	if m.Snapshot.PrayersErr != nil {
		prayerLines = append(prayerLines, dangerStyle.Render("Could not load prayers"))
	}
	for _, p := range m.Snapshot.Prayers {
		prayerLines = append(prayerLines, cli.CheckMark(p.IsCompleted)+" "+p.Name)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		profile,
		lipgloss.JoinHorizontal(lipgloss.Top,
			cardStyle.Render(strings.Join(taskLines, "\n")),
			cardStyle.Render(strings.Join(prayerLines, "\n")),
		),
	)
}

func (m Model) viewPrayers() string {
	ps := m.Snapshot.PrayerStats
	summary := fmt.Sprintf("%d/%d mandatory prayers · %d%%", ps.CompletedMandatory, ps.Mandatory, ps.Percentage)
	return lipgloss.JoinVertical(lipgloss.Left, m.PrayerList.View(), mutedStyle.Render(summary))
}

func (m Model) viewGroupDetail() string {
	d := m.Detail
	if d == nil {
		return mutedStyle.Render("Loading group...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Group.Name) + "\n")
	if d.Group.Description != "" {
		b.WriteString(d.Group.Description + "\n")
	}
	role := "You are not a member"
	switch {
	case d.IsAdmin(m.User.ID):
		role = "You are an admin"
	case d.IsMember(m.User.ID):
		role = "You are a member"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d members · %s", d.Group.MemberCount, role)) + "\n\n")

	b.WriteString("Admins: " + memberNames(d.Admins) + "\n")
	b.WriteString("Members: " + memberNames(d.Members) + "\n\n")

	if d.Challenge == nil {
		b.WriteString(mutedStyle.Render("No active group challenge"))
		return b.String()
	}
	c := d.Challenge
	b.WriteString(titleStyle.Render("🏆 "+c.Title) + "\n")
	b.WriteString(fmt.Sprintf("Goal: %s · %d days\n\n", c.Goal, c.TotalDays))
	b.WriteString(m.Leaderboard.View())
	return b.String()
}

func memberNames(members []models.Member) string {
	if len(members) == 0 {
		return mutedStyle.Render("none")
	}
	names := make([]string, len(members))
	for i, mem := range members {
		names[i] = mem.FullName
		if names[i] == "" {
			names[i] = mem.Username
		}
	}
	return strings.Join(names, ", ")
}

func (m Model) viewConfirmDelete() string {
	return fmt.Sprintf("\nDelete task %s?\n\n%s",
		titleStyle.Render(m.TaskToDelete.Title),
		mutedStyle.Render("y to delete · n to cancel"))
}

func (m Model) viewForm() string {
	if m.Form == nil {
		return ""
	}
	var title string
	switch m.State {
	case constants.StateLogin:
		title = "Log in"
	case constants.StateRegister:
		title = "Create an account"
	case constants.StateAddTask:
		title = "New task"
		if m.TaskForm != nil && m.TaskForm.ID != "" {
			title = "Edit task"
		}
	case constants.StateAddChallenge:
		title = "New challenge"
	case constants.StateAddGroup:
		title = "New group"
	case constants.StateAddGroupChallenge:
		title = "New group challenge"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		m.Form.View(),
		mutedStyle.Render("esc to cancel"),
	)
}
