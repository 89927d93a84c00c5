package repositories

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// PendingRegistrationRepository stores unconfirmed registrations keyed by
// lowercased email. Durable rather than in-process so verification can land on
// any instance.
type PendingRegistrationRepository interface {
	// UpsertPending creates or replaces the pending registration for its email.
	UpsertPending(ctx context.Context, pending domain.PendingRegistration) error

	// ConsumePending atomically deletes and returns the pending registration
	// matching email+digest with an unexpired window, or
	// apperrors.ErrInvalidOrExpiredCode.
	ConsumePending(ctx context.Context, email string, otpHash string) (*domain.PendingRegistration, error)

	// DeletePending discards a pending registration, e.g. to roll back a failed
	// delivery.
	DeletePending(ctx context.Context, email string) error

	// SweepExpired deletes all pending registrations whose window has passed.
	SweepExpired(ctx context.Context) (int64, error)
}
