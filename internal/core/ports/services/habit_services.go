package services

import (
	"context"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
)

// HabitSvcFacade manages a user's habits. Every operation enforces ownership.
type HabitSvcFacade interface {
	ListHabits(ctx context.Context, userID string) ([]domain.Habit, error)
	CreateHabit(ctx context.Context, userID string, req dto.CreateHabitRequest) (*domain.Habit, error)
	UpdateHabit(ctx context.Context, userID string, habitID string, req dto.UpdateHabitRequest) (*domain.Habit, error)

	// ToggleHabitCompletion flips the completion mark for the given calendar day
	// (normalized to midnight UTC) and adjusts the streak counter.
	ToggleHabitCompletion(ctx context.Context, userID string, habitID string, date time.Time) (*domain.Habit, error)

	DeleteHabit(ctx context.Context, userID string, habitID string) error
}
