package dto

import "time"

// CreateTaskRequest creates a task. Priority and category default server-side
// when omitted.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string     `json:"category" binding:"omitempty,oneof=academic personal health work"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest mutates a task. Pointers distinguish omitted fields from
// zero values.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    *string    `json:"category" binding:"omitempty,oneof=academic personal health work"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}
