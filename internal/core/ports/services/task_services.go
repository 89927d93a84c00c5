package services

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
)

// TaskSvcFacade manages a user's tasks. Every operation enforces ownership.
type TaskSvcFacade interface {
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID string, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID string, taskID string) error
}
