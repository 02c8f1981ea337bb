package models

import (
	"time"

	"github.com/julianstephens/habithaven/internal/constants"
)

type Challenge struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Goal        string                    `json:"goal"`
	TotalDays   int                       `json:"totalDays"`
	Status      constants.ChallengeStatus `json:"status"`
	IsGroup     bool                      `json:"isGroup"`
	GroupID     string                    `json:"groupId,omitempty"` // set for group challenges only
}

// IsActive reports whether the challenge still accepts progress
func (c Challenge) IsActive() bool {
	return c.Status != constants.ChallengeExpired
}

// ChallengeParticipation links the current user to a challenge
type ChallengeParticipation struct {
	Challenge  Challenge  `json:"challenge"`
	Progress   int        `json:"progress"`
	CurrentDay int        `json:"currentDay"`
	Completed  bool       `json:"completed"`
	JoinedAt   *time.Time `json:"joinedAt,omitempty"`
}
