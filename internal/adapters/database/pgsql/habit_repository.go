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

type PgxHabitRepository struct {
	db *pgxpool.Pool
}

func NewHabitRepository(db *pgxpool.Pool) *PgxHabitRepository {
	return &PgxHabitRepository{db: db}
}

var _ portsrepo.HabitRepository = (*PgxHabitRepository)(nil)

const habitColumns = `habit_id, user_id, name, frequency, streak_count, completed_dates, created_at, updated_at`

func scanHabit(row pgx.Row) (*domain.Habit, error) {
	var h domain.Habit
	err := row.Scan(
		&h.HabitID,
		&h.UserID,
		&h.Name,
		&h.Frequency,
		&h.StreakCount,
		&h.CompletedDates,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PgxHabitRepository) SaveHabit(ctx context.Context, habit domain.Habit) error {
	query := `
        INSERT INTO habits (habit_id, user_id, name, frequency, streak_count, completed_dates, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		habit.HabitID,
		habit.UserID,
		habit.Name,
		habit.Frequency,
		habit.StreakCount,
		habit.CompletedDates,
		habit.CreatedAt,
		habit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

func (r *PgxHabitRepository) FindHabitByID(ctx context.Context, habitID string) (*domain.Habit, error) {
	query := fmt.Sprintf(`SELECT %s FROM habits WHERE habit_id = $1;`, habitColumns)
	habit, err := scanHabit(r.db.QueryRow(ctx, query, habitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find habit by ID %s: %w", habitID, err)
	}
	return habit, nil
}

func (r *PgxHabitRepository) FindHabitsByUser(ctx context.Context, userID string) ([]domain.Habit, error) {
	query := fmt.Sprintf(`SELECT %s FROM habits WHERE user_id = $1 ORDER BY created_at ASC;`, habitColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []domain.Habit{}
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit row: %w", err)
		}
		habits = append(habits, *habit)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating habit rows: %w", rows.Err())
	}
	return habits, nil
}

func (r *PgxHabitRepository) UpdateHabit(ctx context.Context, habit domain.Habit) error {
	query := `
        UPDATE habits
        SET name = $1, frequency = $2, streak_count = $3, completed_dates = $4, updated_at = $5
        WHERE habit_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		habit.Name,
		habit.Frequency,
		habit.StreakCount,
		habit.CompletedDates,
		habit.UpdatedAt,
		habit.HabitID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update habit query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("habit not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxHabitRepository) DeleteHabit(ctx context.Context, habitID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM habits WHERE habit_id = $1;`, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("habit not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
