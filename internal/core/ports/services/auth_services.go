package services

import (
	"context"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade orchestrates every authentication method exposed by the API.
// Each method resolves (or creates) a user; session minting stays with the
// token service so handlers control the response shape.
type AuthSvcFacade interface {
	// SendLoginOTP issues a sign-in code to an existing account's email.
	SendLoginOTP(ctx context.Context, email string) error
	// VerifyLoginOTP consumes a sign-in code and returns the resolved user.
	VerifyLoginOTP(ctx context.Context, email string, code string) (*domain.User, error)

	// SendRegisterOTP records a pending registration and mails its code. Fails
	// with apperrors.ErrDuplicate when the email already has an account.
	SendRegisterOTP(ctx context.Context, name string, email string) error
	// VerifyRegisterOTP promotes a pending registration into a durable user.
	VerifyRegisterOTP(ctx context.Context, email string, code string) (*domain.User, error)

	// SendResetOTP issues a password-reset code to an existing account's email.
	SendResetOTP(ctx context.Context, email string) error
	// ResetPassword consumes a reset code and stores the new password hash.
	ResetPassword(ctx context.Context, email string, code string, newPassword string) (*domain.User, error)

	// PhoneLogin verifies a provider ID token and resolves the user by the
	// provider-directory phone number. Returns *apperrors.NeedsRegistrationError
	// when the verified phone has no account.
	PhoneLogin(ctx context.Context, idToken string) (*domain.User, error)
	// PhoneRegister verifies a provider ID token and creates a user bound to
	// the verified phone number.
	PhoneRegister(ctx context.Context, idToken string, name string) (*domain.User, error)

	// GoogleLogin verifies a Google ID token and finds-or-creates the user by
	// the token's email claim. An existing user without an avatar is backfilled
	// from the provider profile photo.
	GoogleLogin(ctx context.Context, idToken string) (*domain.User, error)

	// RegisterWithPassword and LoginWithPassword keep the legacy password path.
	RegisterWithPassword(ctx context.Context, name string, email string, password string) (*domain.User, error)
	LoginWithPassword(ctx context.Context, email string, password string) (*domain.User, error)
}

// OTPIssuerSvc produces, delivers, and consumes one-time codes. Used by the auth
// service; split out so tests can exercise the code lifecycle in isolation.
type OTPIssuerSvc interface {
	// IssueUserOTP binds a fresh code to an existing user's purpose slot and
	// delivers it. A delivery failure rolls the slot back.
	IssueUserOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error

	// IssueRegistrationOTP upserts a pending registration with a fresh code and
	// delivers it, sweeping expired pendings first.
	IssueRegistrationOTP(ctx context.Context, name string, email string) error

	// VerifyUserOTP consumes a user-slot code exactly once.
	VerifyUserOTP(ctx context.Context, email string, code string, purpose domain.OTPPurpose) (*domain.User, error)

	// VerifyRegistrationOTP consumes a pending-registration code exactly once.
	VerifyRegistrationOTP(ctx context.Context, email string, code string) (*domain.PendingRegistration, error)
}

// TokenSvcFacade defines the interface for session token management.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed session token for the user. Fixed
	// validity window; the server keeps no session state and performs no
	// revocation.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// PhoneVerifierSvc validates provider-issued ID tokens for the phone auth flows
// and resolves the verified phone number from the provider directory.
type PhoneVerifierSvc interface {
	VerifyPhoneToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
