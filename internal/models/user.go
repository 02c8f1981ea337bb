package models

// User is the authenticated account as reported by the backend
type User struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullName"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Level       int      `json:"level"`
	XP          int      `json:"xp"`
	StreakCount int      `json:"streakCount"`
	Badges      []string `json:"badges"`
	DailyScore  int      `json:"dailyScore"`
}

// DisplayName prefers the full name and falls back to the username
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
