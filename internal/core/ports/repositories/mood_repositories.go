package repositories

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// MoodRepository persists mood log entries.
type MoodRepository interface {
	SaveMood(ctx context.Context, mood domain.Mood) error
	FindMoodsByUser(ctx context.Context, userID string) ([]domain.Mood, error)
}
