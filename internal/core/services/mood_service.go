package services

import (
	"context"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/google/uuid"
)

type moodService struct {
	BaseService
	moodRepo portsrepo.MoodRepository
}

// NewMoodService creates a new instance of moodService.
func NewMoodService(moodRepo portsrepo.MoodRepository) portssvc.MoodSvcFacade {
	return &moodService{moodRepo: moodRepo}
}

var _ portssvc.MoodSvcFacade = (*moodService)(nil)

func (s *moodService) ListMoods(ctx context.Context, userID string) ([]domain.Mood, error) {
	return s.moodRepo.FindMoodsByUser(ctx, userID)
}

func (s *moodService) LogMood(ctx context.Context, userID string, req dto.LogMoodRequest) (*domain.Mood, error) {
	now := time.Now()
	mood := domain.Mood{
		MoodID:     uuid.NewString(),
		UserID:     userID,
		Score:      req.Mood,
		Note:       req.Note,
		RecordedAt: now,
		CreatedAt:  now,
	}
	if req.Date != nil {
		mood.RecordedAt = *req.Date
	}

	if err := s.moodRepo.SaveMood(ctx, mood); err != nil {
		return nil, err
	}
	return &mood, nil
}
