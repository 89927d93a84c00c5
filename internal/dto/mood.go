package dto

import "time"

// LogMoodRequest records one mood entry; date defaults to now.
type LogMoodRequest struct {
	Mood int        `json:"mood" binding:"required,min=1,max=5"`
	Note string     `json:"note"`
	Date *time.Time `json:"date"`
}
