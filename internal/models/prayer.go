package models

import (
	"time"

	"github.com/julianstephens/habithaven/internal/constants"
)

type Prayer struct {
	ID          string     `json:"id"`
	Name        string     `json:"prayerName"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Date        string     `json:"date"` // YYYY-MM-DD format
}

// IsMandatory reports whether the prayer is one of the five obligatory prayers
func (p Prayer) IsMandatory() bool {
	return p.Name != constants.PrayerTahajjud
}
