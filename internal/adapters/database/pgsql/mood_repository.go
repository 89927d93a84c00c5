package pgsql

import (
	"context"
	"fmt"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMoodRepository struct {
	db *pgxpool.Pool
}

func NewMoodRepository(db *pgxpool.Pool) *PgxMoodRepository {
	return &PgxMoodRepository{db: db}
}

var _ portsrepo.MoodRepository = (*PgxMoodRepository)(nil)

func (r *PgxMoodRepository) SaveMood(ctx context.Context, mood domain.Mood) error {
	query := `
        INSERT INTO moods (mood_id, user_id, score, note, recorded_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		mood.MoodID,
		mood.UserID,
		mood.Score,
		mood.Note,
		mood.RecordedAt,
		mood.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

func (r *PgxMoodRepository) FindMoodsByUser(ctx context.Context, userID string) ([]domain.Mood, error) {
	query := `
        SELECT mood_id, user_id, score, note, recorded_at, created_at
        FROM moods
        WHERE user_id = $1
        ORDER BY recorded_at DESC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	moods := []domain.Mood{}
	for rows.Next() {
		var m domain.Mood
		err := rows.Scan(
			&m.MoodID,
			&m.UserID,
			&m.Score,
			&m.Note,
			&m.RecordedAt,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mood row: %w", err)
		}
		moods = append(moods, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating mood rows: %w", rows.Err())
	}
	return moods, nil
}
