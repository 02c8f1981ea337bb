package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/cli/auth"
	"github.com/julianstephens/habithaven/internal/cli/challenges"
	"github.com/julianstephens/habithaven/internal/cli/groupchallenges"
	"github.com/julianstephens/habithaven/internal/cli/groups"
	"github.com/julianstephens/habithaven/internal/cli/prayers"
	"github.com/julianstephens/habithaven/internal/cli/system"
	"github.com/julianstephens/habithaven/internal/cli/tasks"
	"github.com/julianstephens/habithaven/internal/config"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/keyring"
	"github.com/julianstephens/habithaven/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	APIURL    string `name:"api-url" help:"Backend base URL (default ${defaultAPIURL})." env:"HABITHAVEN_API_URL"`
	ConfigDir string `help:"Directory for logs and local state." type:"path" default:"${defaultConfigDir}" env:"HABITHAVEN_CONFIG_DIR"`
	Timezone  string `help:"IANA timezone that decides the current day (default: system local)." env:"HABITHAVEN_TIMEZONE"`
	Debug     bool   `help:"Log debug output to stderr." env:"HABITHAVEN_DEBUG"`

	Tui       system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Dashboard system.DashboardCmd `cmd:"" help:"Show today's progress."`
	Login     auth.LoginCmd       `cmd:"" help:"Log in to your account."`
	Register  auth.RegisterCmd    `cmd:"" help:"Create an account."`
	Logout    auth.LogoutCmd      `cmd:"" help:"Log out and forget the stored token."`
	Whoami    auth.WhoamiCmd      `cmd:"" help:"Show the logged in user."`
	Account   struct {
		Update   auth.AccountUpdateCmd   `cmd:"" help:"Update your name, username or email."`
		Password auth.AccountPasswordCmd `cmd:"" help:"Change your password."`
	} `cmd:"" help:"Manage your account."`

	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Mark a task done."`
		Undo   tasks.TaskUndoCmd   `cmd:"" help:"Mark a task pending."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`

	Prayer struct {
		Today  prayers.PrayerTodayCmd  `cmd:"" help:"Show today's prayers."`
		Log    prayers.PrayerLogCmd    `cmd:"" help:"Create today's prayer record."`
		Toggle prayers.PrayerToggleCmd `cmd:"" help:"Toggle a prayer by name or ID."`
	} `cmd:"" help:"Track daily prayers."`

	Challenge struct {
		Create   challenges.ChallengeCreateCmd   `cmd:"" help:"Create a challenge."`
		List     challenges.ChallengeListCmd     `cmd:"" help:"List all challenges."`
		Mine     challenges.ChallengeMineCmd     `cmd:"" help:"List challenges you joined."`
		Join     challenges.ChallengeJoinCmd     `cmd:"" help:"Join a challenge."`
		Progress challenges.ChallengeProgressCmd `cmd:"" help:"Log today's progress."`
	} `cmd:"" help:"Individual challenges."`

	Group struct {
		Create groups.GroupCreateCmd `cmd:"" help:"Create a group."`
		List   groups.GroupListCmd   `cmd:"" help:"List all groups."`
		Mine   groups.GroupMineCmd   `cmd:"" help:"List groups you belong to."`
		Join   groups.GroupJoinCmd   `cmd:"" help:"Join a group."`
		Leave  groups.GroupLeaveCmd  `cmd:"" help:"Leave a group."`
		Show   groups.GroupShowCmd   `cmd:"" help:"Show group members and its challenge."`
	} `cmd:"" help:"Groups."`

	GroupChallenge struct {
		Create      groupchallenges.GroupChallengeCreateCmd      `cmd:"" help:"Create a challenge for a group you administer."`
		Join        groupchallenges.GroupChallengeJoinCmd        `cmd:"" help:"Join a group challenge."`
		Progress    groupchallenges.GroupChallengeProgressCmd    `cmd:"" help:"Log today's progress."`
		Leaderboard groupchallenges.GroupChallengeLeaderboardCmd `cmd:"" help:"Show a group challenge leaderboard."`
	} `cmd:"" name:"group-challenge" help:"Group challenges."`

	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks."`
	Keyring struct {
		Status system.KeyringStatusCmd `cmd:"" help:"Show whether a token is stored."`
		Clear  system.KeyringClearCmd  `cmd:"" help:"Remove the stored token."`
	} `cmd:"" help:"Inspect the OS keyring entry."`
	DebugCmd system.DebugCmd `cmd:"" name:"debug" help:"Debugging helpers." hidden:""`
}

func main() {
	if err := config.LoadEnvFile(""); err != nil {
		errors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit, prayer and challenge tracker"),
		kong.UsageOnError(),
		kong.Vars{
			"version":          constants.Version,
			"defaultAPIURL":    constants.DefaultAPIURL,
			"defaultConfigDir": constants.DefaultConfigDir,
		},
	)

	cfg, err := config.New(CLI.APIURL, CLI.ConfigDir, CLI.Timezone, CLI.Debug)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		errors.Fatal(err)
	}

	errors.Fatal(ctx.Run(cli.NewContext(cfg, keyring.Store{})))
}
