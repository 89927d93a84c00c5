package domain

import "time"

// HabitFrequency is how often a habit is meant to recur.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
)

// Habit is a recurring activity with a completion history and a running streak.
// CompletedDates are normalized to midnight UTC; the set contains at most one
// entry per calendar day.
type Habit struct {
	HabitID        string         `json:"habitID"`
	UserID         string         `json:"userID"`
	Name           string         `json:"name"`
	Frequency      HabitFrequency `json:"frequency"`
	StreakCount    int            `json:"streakCount"`
	CompletedDates []time.Time    `json:"completedDates"`
	AuditFields
}
