package constants

import "time"

// SessionState represents the current screen of the TUI application
type SessionState int

// ChallengeStatus represents the lifecycle state of a challenge
type ChallengeStatus string

// Medal represents a leaderboard podium position
type Medal string

const (
	AppName            = "habithaven"
	DefaultKeyringUser = "access-token"
	DefaultConfigDir   = "~/.config/habithaven"
	DefaultAPIURL      = "http://localhost:5000/api"
	DefaultEnvFile     = ".env"
	Version            = "v0.3.0"

	// Environment variables
	EnvAPIURL    = "HABITHAVEN_API_URL"
	EnvConfigDir = "HABITHAVEN_CONFIG_DIR"
	EnvDebug     = "HABITHAVEN_DEBUG"
	EnvEnvFile   = "HABITHAVEN_ENV_FILE"
	EnvTimezone  = "HABITHAVEN_TIMEZONE"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// RequestTimeout bounds every backend call made by the HTTP client
	RequestTimeout = 15 * time.Second

	// Prayer names
	PrayerFajar    = "Fajar"
	PrayerDhuhr    = "Dhuhr"
	PrayerAsr      = "Asr"
	PrayerMaghrib  = "Maghrib"
	PrayerIsha     = "Isha"
	PrayerTahajjud = "Tahajjud"

	// Challenge statuses
	ChallengeActive  ChallengeStatus = "active"
	ChallengeExpired ChallengeStatus = "expired"

	// Medals
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
	MedalNone   Medal = ""

	// User-facing messages
	MsgFallbackError    = "An error occurred"
	MsgUserNotExists    = "User does not exist. Please register first."
	MsgInvalidLogin     = "Invalid email or password. Please try again."
	MsgNetworkError     = "Network error. Please check your connection and try again."
	MsgNotAuthenticated = "not logged in. Run 'habithaven login' first"

	// Session States
	StateAuth SessionState = iota
	StateDashboard
	StateTasks
	StatePrayers
	StateChallenges
	StateGroups
	StateGroupDetail
	StateLogin
	StateRegister
	StateAddTask
	StateAddChallenge
	StateAddGroup
	StateAddGroupChallenge
	StateConfirmDelete
)

// PrayerOrder is the display order of a day's prayers
var PrayerOrder = []string{
	PrayerTahajjud,
	PrayerFajar,
	PrayerDhuhr,
	PrayerAsr,
	PrayerMaghrib,
	PrayerIsha,
}
