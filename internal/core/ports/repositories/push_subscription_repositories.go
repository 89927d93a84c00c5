package repositories

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// PushSubscriptionRepository persists Web Push endpoint registrations.
type PushSubscriptionRepository interface {
	// UpsertSubscription creates the subscription or, when the endpoint already
	// exists, reassigns it to the given user with fresh keys.
	UpsertSubscription(ctx context.Context, sub domain.PushSubscription) error

	FindSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)

	// DeleteSubscriptionByEndpoint removes the user's registration of an endpoint.
	DeleteSubscriptionByEndpoint(ctx context.Context, userID string, endpoint string) error

	// DeleteSubscriptionByID prunes a subscription outright, e.g. when the push
	// service reports the endpoint gone.
	DeleteSubscriptionByID(ctx context.Context, subscriptionID string) error
}
