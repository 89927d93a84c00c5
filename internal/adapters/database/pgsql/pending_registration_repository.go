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

type PgxPendingRegistrationRepository struct {
	db *pgxpool.Pool
}

func NewPendingRegistrationRepository(db *pgxpool.Pool) *PgxPendingRegistrationRepository {
	return &PgxPendingRegistrationRepository{db: db}
}

var _ portsrepo.PendingRegistrationRepository = (*PgxPendingRegistrationRepository)(nil)

func (r *PgxPendingRegistrationRepository) UpsertPending(ctx context.Context, pending domain.PendingRegistration) error {
	query := `
        INSERT INTO pending_registrations (email, name, otp_hash, expires_at, created_at)
        VALUES (lower($1), $2, $3, $4, $5)
        ON CONFLICT (email) DO UPDATE SET
            name = EXCLUDED.name,
            otp_hash = EXCLUDED.otp_hash,
            expires_at = EXCLUDED.expires_at,
            created_at = EXCLUDED.created_at;
    `
	_, err := r.db.Exec(ctx, query,
		pending.Email,
		pending.Name,
		pending.OTPHash,
		pending.ExpiresAt,
		pending.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pending registration: %w", err)
	}
	return nil
}

// ConsumePending deletes and returns the matching row in one statement, so a
// pending registration verifies at most once even under concurrent requests.
func (r *PgxPendingRegistrationRepository) ConsumePending(ctx context.Context, email string, otpHash string) (*domain.PendingRegistration, error) {
	query := `
        DELETE FROM pending_registrations
        WHERE email = lower($1) AND otp_hash = $2 AND expires_at > now()
        RETURNING email, name, otp_hash, expires_at, created_at;
    `
	var p domain.PendingRegistration
	err := r.db.QueryRow(ctx, query, email, otpHash).Scan(
		&p.Email,
		&p.Name,
		&p.OTPHash,
		&p.ExpiresAt,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidOrExpiredCode
		}
		return nil, fmt.Errorf("failed to consume pending registration: %w", err)
	}
	return &p, nil
}

func (r *PgxPendingRegistrationRepository) DeletePending(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM pending_registrations WHERE email = lower($1);`, email); err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}
	return nil
}

func (r *PgxPendingRegistrationRepository) SweepExpired(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM pending_registrations WHERE expires_at <= now();`)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired pending registrations: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
