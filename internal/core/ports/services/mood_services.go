package services

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
)

// MoodSvcFacade manages a user's mood log.
type MoodSvcFacade interface {
	// ListMoods returns the user's mood history, newest first.
	ListMoods(ctx context.Context, userID string) ([]domain.Mood, error)
	LogMood(ctx context.Context, userID string, req dto.LogMoodRequest) (*domain.Mood, error)
}
