package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/config"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/dashboard"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/session"
	"github.com/julianstephens/habithaven/internal/stats"
	"github.com/julianstephens/habithaven/internal/utils"
)

// Context is shared by every command
type Context struct {
	Config   config.Config
	Client   *api.Client
	Services *services.Services
	Session  *session.Controller
}

// NewContext wires the client, services and session for cfg. The session
// is the client's token source.
func NewContext(cfg config.Config, store session.TokenStore) *Context {
	client := api.New(cfg.APIURL, nil)
	svc := services.New(client)
	if now, err := utils.ClockInTimezone(cfg.Timezone); err == nil {
		svc.Tasks.Now = now
		svc.Prayers.Now = now
	}
	sess := session.New(svc.Auth, store)
	client.SetTokenSource(sess)
	return &Context{
		Config:   cfg,
		Client:   client,
		Services: svc,
		Session:  sess,
	}
}

// Dashboard returns a loader over the context's services
func (c *Context) Dashboard() *dashboard.Loader {
	return &dashboard.Loader{Tasks: c.Services.Tasks, Prayers: c.Services.Prayers}
}

// Interruptible returns a context cancelled on Ctrl-C
func Interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// RequireAuth restores the persisted session and fails for anonymous users
func (c *Context) RequireAuth(ctx context.Context) error {
	if err := c.Session.Init(ctx); err != nil {
		return err
	}
	return c.Session.RequireAuth()
}

// CheckMark renders a completion flag
func CheckMark(done bool) string {
	if done {
		return "✓"
	}
	return "○"
}

// ProgressBar renders pct (0-100) as a fixed-width bar
func ProgressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}

// MedalIcon renders a podium medal; positions off the podium render empty
func MedalIcon(m constants.Medal) string {
	switch m {
	case constants.MedalGold:
		return "🥇"
	case constants.MedalSilver:
		return "🥈"
	case constants.MedalBronze:
		return "🥉"
	default:
		return ""
	}
}

// PrintLeaderboard prints entries in received order with podium medals and
// a participation summary
func PrintLeaderboard(entries []models.LeaderboardEntry, totalDays int) {
	if len(entries) == 0 {
		fmt.Println("  No participants yet")
		return
	}
	for _, e := range stats.Ranked(entries) {
		medal := MedalIcon(e.Medal)
		if medal == "" {
			medal = fmt.Sprintf("%d.", e.Rank)
		}
		name := e.FullName
		if name == "" {
			name = e.Username
		}
		pct := stats.ProgressPercentage(e.Progress, totalDays)
		fmt.Printf("  %-3s %-24s %s  %d XP %s\n", medal, name, ProgressBar(pct, 10), e.XP, CheckMark(e.Completed))
	}
	summary := stats.Leaderboard(entries, totalDays)
	fmt.Printf("\n  %d participants · %d completed · average progress %d%%\n",
		summary.Participants, summary.Completed, summary.AverageProgress)
}
