// Package handlers holds the update logic of the TUI. Each handler mutates
// the shared state.Model and returns the commands to run next.
package handlers

import (
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/dashboard"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
)

// Every message produced by a backend call carries Gen, the model's
// Generation when the call started.

// SessionMsg reports the session after init, login or registration.
// Authenticated is false for anonymous sessions.
type SessionMsg struct {
	Gen           int
	User          models.User
	Authenticated bool
	Notice        string
	Err           error
}

type UserMsg struct {
	Gen  int
	User models.User
}

type LoggedOutMsg struct{}

type DashboardMsg struct {
	Gen      int
	Snapshot dashboard.Snapshot
}

type TasksMsg struct {
	Gen   int
	Tasks []models.Task
	Err   error
}

type PrayersMsg struct {
	Gen   int
	Today services.TodayResult
	Err   error
}

type ChallengesMsg struct {
	Gen  int
	All  []models.Challenge
	Mine []models.ChallengeParticipation
	Err  error
}

type GroupsMsg struct {
	Gen  int
	All  []models.Group
	Mine []models.Group
	Err  error
}

// GroupDetailMsg answers a detail load for group ID
type GroupDetailMsg struct {
	Gen     int
	ID      string
	Details models.GroupDetails
	Err     error
}

// DoneMsg finishes a mutation. On success the Section is reloaded.
type DoneMsg struct {
	Gen     int
	Section constants.SessionState
	Notice  string
	Err     error
	// Refresh re-reads the profile for mutations that award XP
	Refresh bool
}
