package handlers

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/stats"
	"github.com/julianstephens/habithaven/internal/tui/components/prayerlist"
	"github.com/julianstephens/habithaven/internal/tui/state"
)

// HandlePrayerMessages handles the prayer list actions
func HandlePrayerMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(prayerlist.TogglePrayerMsg); ok {
		m.Busy = true
		return true, togglePrayer(m, msg.ID, msg.Name)
	}
	return false, nil
}

func applyPrayers(m *state.Model, msg PrayersMsg) {
	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		return
	}
	m.Snapshot.Prayers = msg.Today.Prayers
	m.Snapshot.PrayerStats = stats.Prayers(msg.Today.Prayers)
	m.Snapshot.PrayersErr = nil
	m.PrayerList.SetPrayers(msg.Today.Prayers)
}

// loadPrayers fetches today's prayers, creating the day's set on first view
func loadPrayers(m *state.Model) tea.Cmd {
	svc, gen := m.Services, m.Generation
	return func() tea.Msg {
		today, err := svc.Prayers.EnsureToday(context.Background())
		return PrayersMsg{Gen: gen, Today: today, Err: err}
	}
}

func togglePrayer(m *state.Model, id, name string) tea.Cmd {
	svc := m.Services
	return mutate(m, constants.StatePrayers, fmt.Sprintf("Updated %s", name), func(ctx context.Context) error {
		_, err := svc.Prayers.Toggle(ctx, id)
		return err
	})
}
