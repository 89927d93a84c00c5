package services

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// NotificationSvcFacade manages Web Push subscription bookkeeping and delivery.
type NotificationSvcFacade interface {
	// VAPIDPublicKey returns the key browsers need to subscribe.
	VAPIDPublicKey() string

	// Subscribe registers (or reassigns) a push endpoint for the user.
	Subscribe(ctx context.Context, userID string, endpoint string, p256dh string, auth string) error

	// Unsubscribe removes the user's registration of the endpoint.
	Unsubscribe(ctx context.Context, userID string, endpoint string) error

	// SendTest pushes a test notification to every subscription the user has,
	// pruning endpoints the push service reports as gone.
	SendTest(ctx context.Context, userID string) error
}

// PushSenderSvc is the outbound Web Push channel.
type PushSenderSvc interface {
	SendNotification(ctx context.Context, sub domain.PushSubscription, payload domain.PushPayload) error
	PublicKey() string
}
