package services

import (
	"context"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/google/uuid"
)

type taskService struct {
	BaseService
	taskRepo portsrepo.TaskRepository
}

// NewTaskService creates a new instance of taskService.
func NewTaskService(taskRepo portsrepo.TaskRepository) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func (s *taskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.taskRepo.FindTasksByUser(ctx, userID)
}

func (s *taskService) CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*domain.Task, error) {
	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.PriorityMedium,
		Category:    domain.CategoryPersonal,
		DueDate:     req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.Priority != "" {
		task.Priority = domain.TaskPriority(req.Priority)
	}
	if req.Category != "" {
		task.Category = domain.TaskCategory(req.Category)
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, userID string, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.findOwnedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.Category != nil {
		task.Category = domain.TaskCategory(*req.Category)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = time.Now()
	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID string, taskID string) error {
	if _, err := s.findOwnedTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.taskRepo.DeleteTask(ctx, taskID)
}

// findOwnedTask loads a task and enforces ownership.
func (s *taskService) findOwnedTask(ctx context.Context, userID string, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}
