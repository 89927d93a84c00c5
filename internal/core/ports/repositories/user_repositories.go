package repositories

import (
	"context"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
)

// UserReaderRepository defines read operations for user records.
type UserReaderRepository interface {
	// FindUserByID retrieves a user by internal ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, matched case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByPhone retrieves a user by phone number (E.164 exact match).
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// UserWriterRepository defines write operations for user records.
type UserWriterRepository interface {
	// CreateUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// email or phone unique constraint is violated.
	CreateUser(ctx context.Context, user domain.User) error

	// UpdateUser persists profile mutations (name, email, password hash, avatar,
	// google binding).
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser hard-deletes a user; owned rows cascade in the store.
	DeleteUser(ctx context.Context, userID string) error
}

// UserOTPRepository defines the credential-slot operations used by the OTP issuer.
type UserOTPRepository interface {
	// SetOTP writes the code digest and absolute expiry into the purpose slot,
	// overwriting any previous unconsumed code for that slot.
	SetOTP(ctx context.Context, userID string, purpose domain.OTPPurpose, otpHash string, expiresAt time.Time) error

	// ClearOTP empties the purpose slot. Used to roll back issuance when
	// delivery fails.
	ClearOTP(ctx context.Context, userID string, purpose domain.OTPPurpose) error

	// ConsumeOTP atomically clears the purpose slot and returns the user, but
	// only when the stored digest matches and the expiry is in the future. A
	// miss for any reason returns apperrors.ErrInvalidOrExpiredCode; the store's
	// single-statement conditional update is what makes double-consume
	// impossible under concurrency.
	ConsumeOTP(ctx context.Context, email string, purpose domain.OTPPurpose, otpHash string) (*domain.User, error)
}

// UserRepository combines all user persistence concerns.
type UserRepository interface {
	UserReaderRepository
	UserWriterRepository
	UserOTPRepository
}
