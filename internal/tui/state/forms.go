package state

import (
	"strconv"
	"strings"

	"github.com/julianstephens/habithaven/internal/services"
)

// LoginFormModel represents the form model for logging in
type LoginFormModel struct {
	Email    string
	Password string
}

// RegisterFormModel represents the form model for creating an account
type RegisterFormModel struct {
	FullName string
	Username string
	Email    string
	Password string
}

// TaskFormModel backs both the add and the edit task form. ID is empty when adding.
type TaskFormModel struct {
	ID          string
	Title       string
	Description string
	Date        string
}

func (fm TaskFormModel) Input() services.TaskInput {
	return services.TaskInput{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Date:        strings.TrimSpace(fm.Date),
	}
}

// ChallengeFormModel backs the individual and the group challenge forms.
// GroupID is set for group challenges only.
type ChallengeFormModel struct {
	GroupID     string
	Title       string
	Description string
	Goal        string
	TotalDays   string
}

// Days parses TotalDays; anything unparsable is 0 and fails validation
func (fm ChallengeFormModel) Days() int {
	n, _ := strconv.Atoi(strings.TrimSpace(fm.TotalDays))
	return n
}

func (fm ChallengeFormModel) Input() services.ChallengeInput {
	return services.ChallengeInput{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Goal:        strings.TrimSpace(fm.Goal),
		TotalDays:   fm.Days(),
	}
}

func (fm ChallengeFormModel) GroupInput() services.GroupChallengeInput {
	return services.GroupChallengeInput{
		GroupID:     fm.GroupID,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Goal:        strings.TrimSpace(fm.Goal),
		TotalDays:   fm.Days(),
	}
}

// GroupFormModel represents the form model for group creation
type GroupFormModel struct {
	Name        string
	Description string
}

func (fm GroupFormModel) Input() services.GroupInput {
	return services.GroupInput{Name: strings.TrimSpace(fm.Name), Description: strings.TrimSpace(fm.Description)}
}
