package services

import (
	"context"
	"errors"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type notificationService struct {
	BaseService
	pushRepo   portsrepo.PushSubscriptionRepository
	pushSender portssvc.PushSenderSvc
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(pushRepo portsrepo.PushSubscriptionRepository, pushSender portssvc.PushSenderSvc) portssvc.NotificationSvcFacade {
	return &notificationService{pushRepo: pushRepo, pushSender: pushSender}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) VAPIDPublicKey() string {
	return s.pushSender.PublicKey()
}

func (s *notificationService) Subscribe(ctx context.Context, userID string, endpoint string, p256dh string, auth string) error {
	sub := domain.PushSubscription{
		SubscriptionID: uuid.NewString(),
		UserID:         userID,
		Endpoint:       endpoint,
		P256dh:         p256dh,
		Auth:           auth,
		CreatedAt:      time.Now(),
	}
	if err := s.pushRepo.UpsertSubscription(ctx, sub); err != nil {
		return err
	}
	s.LogInfo(ctx, "push subscription registered", "user_id", userID)
	return nil
}

func (s *notificationService) Unsubscribe(ctx context.Context, userID string, endpoint string) error {
	return s.pushRepo.DeleteSubscriptionByEndpoint(ctx, userID, endpoint)
}

// SendTest pushes a test notification to every subscription the user has.
// Endpoints the push service reports as gone are pruned along the way.
func (s *notificationService) SendTest(ctx context.Context, userID string) error {
	subs, err := s.pushRepo.FindSubscriptionsByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return apperrors.ErrNotFound
	}

	payload := domain.PushPayload{
		Title: "LifeOS",
		Body:  "Push notifications are working!",
	}

	var lastErr error
	delivered := 0
	for _, sub := range subs {
		if err := s.pushSender.SendNotification(ctx, sub, payload); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// The push service no longer knows this endpoint.
				if delErr := s.pushRepo.DeleteSubscriptionByID(ctx, sub.SubscriptionID); delErr != nil {
					s.LogError(ctx, delErr, "failed to prune dead push subscription", "subscription_id", sub.SubscriptionID)
				}
				continue
			}
			s.LogError(ctx, err, "push delivery failed", "subscription_id", sub.SubscriptionID)
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 && lastErr != nil {
		return apperrors.ErrDeliveryFailure
	}
	return nil
}
