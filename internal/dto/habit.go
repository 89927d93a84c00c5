package dto

import "time"

// CreateHabitRequest creates a habit; frequency defaults to daily.
type CreateHabitRequest struct {
	Name      string `json:"name" binding:"required"`
	Frequency string `json:"frequency" binding:"omitempty,oneof=daily weekly"`
}

// UpdateHabitRequest renames a habit or changes its cadence.
type UpdateHabitRequest struct {
	Name      *string `json:"name"`
	Frequency *string `json:"frequency" binding:"omitempty,oneof=daily weekly"`
}

// ToggleHabitCompletionRequest marks or unmarks a day; defaults to today.
type ToggleHabitCompletionRequest struct {
	Date *time.Time `json:"date"`
}
