package pgsql

import (
	"context"
	"fmt"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPushSubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewPushSubscriptionRepository(db *pgxpool.Pool) *PgxPushSubscriptionRepository {
	return &PgxPushSubscriptionRepository{db: db}
}

var _ portsrepo.PushSubscriptionRepository = (*PgxPushSubscriptionRepository)(nil)

func (r *PgxPushSubscriptionRepository) UpsertSubscription(ctx context.Context, sub domain.PushSubscription) error {
	// An endpoint re-registered from another account moves to the new owner.
	query := `
        INSERT INTO push_subscriptions (subscription_id, user_id, endpoint, p256dh, auth_key, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (endpoint) DO UPDATE SET
            user_id = EXCLUDED.user_id,
            p256dh = EXCLUDED.p256dh,
            auth_key = EXCLUDED.auth_key;
    `
	_, err := r.db.Exec(ctx, query,
		sub.SubscriptionID,
		sub.UserID,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
		sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return nil
}

func (r *PgxPushSubscriptionRepository) FindSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	query := `
        SELECT subscription_id, user_id, endpoint, p256dh, auth_key, created_at
        FROM push_subscriptions
        WHERE user_id = $1;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []domain.PushSubscription{}
	for rows.Next() {
		var s domain.PushSubscription
		err := rows.Scan(
			&s.SubscriptionID,
			&s.UserID,
			&s.Endpoint,
			&s.P256dh,
			&s.Auth,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan push subscription row: %w", err)
		}
		subs = append(subs, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating push subscription rows: %w", rows.Err())
	}
	return subs, nil
}

func (r *PgxPushSubscriptionRepository) DeleteSubscriptionByEndpoint(ctx context.Context, userID string, endpoint string) error {
	query := `DELETE FROM push_subscriptions WHERE endpoint = $1 AND user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, endpoint, userID)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("push subscription not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPushSubscriptionRepository) DeleteSubscriptionByID(ctx context.Context, subscriptionID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM push_subscriptions WHERE subscription_id = $1;`, subscriptionID); err != nil {
		return fmt.Errorf("failed to delete push subscription by ID: %w", err)
	}
	return nil
}
