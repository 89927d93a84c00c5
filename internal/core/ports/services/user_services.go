package services

import (
	"context"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// UpdateProfile applies name/email/password changes and, when avatarURL is
	// non-empty, replaces the stored avatar reference.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest, avatarURL string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeleteAccount removes the user and cascades to all owned records.
	DeleteAccount(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
