package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
)

// WebPushSender delivers notifications over the Web Push protocol using VAPID
// authentication.
type WebPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
}

// NewWebPushSender creates a sender from the configured VAPID key pair.
func NewWebPushSender(cfg *config.Config) *WebPushSender {
	return &WebPushSender{
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		subscriber: cfg.VAPIDSubscriber,
	}
}

var _ portssvc.PushSenderSvc = (*WebPushSender)(nil)

func (s *WebPushSender) PublicKey() string {
	return s.publicKey
}

// SendNotification pushes one payload to one endpoint. A 404 or 410 from the
// push service maps to apperrors.ErrNotFound so callers can prune the
// subscription.
func (s *WebPushSender) SendNotification(ctx context.Context, sub domain.PushSubscription, payload domain.PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return apperrors.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push service returned non-2xx status: %s", resp.Status)
	}
	return nil
}
