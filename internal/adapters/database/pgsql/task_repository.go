package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *PgxTaskRepository {
	return &PgxTaskRepository{db: db}
}

var _ portsrepo.TaskRepository = (*PgxTaskRepository)(nil)

const taskColumns = `task_id, user_id, title, description, priority, category, due_date, completed, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.Category,
		&t.DueDate,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
        INSERT INTO tasks (task_id, user_id, title, description, priority, category, due_date, completed, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		task.TaskID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		task.Category,
		task.DueDate,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE task_id = $1;`, taskColumns)
	task, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID %s: %w", taskID, err)
	}
	return task, nil
}

func (r *PgxTaskRepository) FindTasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = $1 ORDER BY created_at DESC;`, taskColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", rows.Err())
	}
	return tasks, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
        UPDATE tasks
        SET title = $1, description = $2, priority = $3, category = $4,
            due_date = $5, completed = $6, updated_at = $7
        WHERE task_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		task.Title,
		task.Description,
		task.Priority,
		task.Category,
		task.DueDate,
		task.Completed,
		task.UpdatedAt,
		task.TaskID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update task query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1;`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
