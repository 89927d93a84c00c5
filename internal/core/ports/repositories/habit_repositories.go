package repositories

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// HabitRepository persists habits and their completion history.
type HabitRepository interface {
	SaveHabit(ctx context.Context, habit domain.Habit) error
	FindHabitByID(ctx context.Context, habitID string) (*domain.Habit, error)
	FindHabitsByUser(ctx context.Context, userID string) ([]domain.Habit, error)
	UpdateHabit(ctx context.Context, habit domain.Habit) error
	DeleteHabit(ctx context.Context, habitID string) error
}
