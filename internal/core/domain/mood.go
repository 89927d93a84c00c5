package domain

import "time"

// Mood is a single mood log entry with a 1-5 score.
type Mood struct {
	MoodID     string    `json:"moodID"`
	UserID     string    `json:"userID"`
	Score      int       `json:"mood"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
}
