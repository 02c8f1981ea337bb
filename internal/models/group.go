package models

import "time"

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Member is a user's role-tagged membership in a group
type Member struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// LeaderboardEntry is one participant's standing in a group challenge
type LeaderboardEntry struct {
	UserID     string   `json:"userId"`
	FullName   string   `json:"fullName"`
	Username   string   `json:"username"`
	XP         int      `json:"xp"`
	Progress   int      `json:"progress"`
	CurrentDay int      `json:"currentDay"`
	Completed  bool     `json:"completed"`
	Badges     []string `json:"badges"`
}

// GroupDetails is the aggregate view of a single group
type GroupDetails struct {
	Group        Group              `json:"group"`
	Admins       []Member           `json:"admins"`
	Members      []Member           `json:"members"`
	Challenge    *Challenge         `json:"challenge,omitempty"`
	Participants []LeaderboardEntry `json:"participants"`
}

// IsAdmin reports whether userID is one of the group's admins
func (d GroupDetails) IsAdmin(userID string) bool {
	for _, a := range d.Admins {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// IsMember reports whether userID belongs to the group in any role
func (d GroupDetails) IsMember(userID string) bool {
	if d.IsAdmin(userID) {
		return true
	}
	for _, m := range d.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
