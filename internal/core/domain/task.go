package domain

import "time"

// TaskPriority grades how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskCategory buckets tasks for dashboard grouping.
type TaskCategory string

const (
	CategoryAcademic TaskCategory = "academic"
	CategoryPersonal TaskCategory = "personal"
	CategoryHealth   TaskCategory = "health"
	CategoryWork     TaskCategory = "work"
)

// Task is a single to-do item owned by one user.
type Task struct {
	TaskID      string       `json:"taskID"`
	UserID      string       `json:"userID"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Completed   bool         `json:"completed"`
	AuditFields
}
