package repositories

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	SaveTask(ctx context.Context, task domain.Task) error
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	FindTasksByUser(ctx context.Context, userID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, taskID string) error
}
