package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/utils"
	"github.com/google/uuid"
)

// authService implements AuthSvcFacade. It resolves users through verified
// channels only: a consumed one-time code, a provider-verified ID token, or a
// password check. Client-supplied identity fields never select the account.
type authService struct {
	BaseService
	userRepo      portsrepo.UserRepository
	otpIssuer     portssvc.OTPIssuerSvc
	phoneVerifier portssvc.PhoneVerifierSvc
	googleOAuth   portssvc.GoogleOAuthHandlerSvcFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo portsrepo.UserRepository,
	otpIssuer portssvc.OTPIssuerSvc,
	phoneVerifier portssvc.PhoneVerifierSvc,
	googleOAuth portssvc.GoogleOAuthHandlerSvcFacade,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:      userRepo,
		otpIssuer:     otpIssuer,
		phoneVerifier: phoneVerifier,
		googleOAuth:   googleOAuth,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// SendLoginOTP issues a sign-in code to an existing account's email.
func (s *authService) SendLoginOTP(ctx context.Context, email string) error {
	return s.otpIssuer.IssueUserOTP(ctx, email, domain.OTPPurposeLogin)
}

// VerifyLoginOTP consumes a sign-in code and returns the resolved user.
func (s *authService) VerifyLoginOTP(ctx context.Context, email string, code string) (*domain.User, error) {
	return s.otpIssuer.VerifyUserOTP(ctx, email, code, domain.OTPPurposeLogin)
}

// SendRegisterOTP records a pending registration and mails its code.
func (s *authService) SendRegisterOTP(ctx context.Context, name string, email string) error {
	return s.otpIssuer.IssueRegistrationOTP(ctx, name, email)
}

// VerifyRegisterOTP promotes a pending registration into a durable user.
func (s *authService) VerifyRegisterOTP(ctx context.Context, email string, code string) (*domain.User, error) {
	pending, err := s.otpIssuer.VerifyRegistrationOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID: uuid.NewString(),
		Name:   pending.Name,
		Email:  &pending.Email,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// The pending entry was already consumed; a duplicate here means an
		// account appeared for this email in the meantime.
		return nil, err
	}

	s.LogInfo(ctx, "user registered via email code", "user_id", user.UserID)
	return &user, nil
}

// SendResetOTP issues a password-reset code to an existing account's email.
func (s *authService) SendResetOTP(ctx context.Context, email string) error {
	return s.otpIssuer.IssueUserOTP(ctx, email, domain.OTPPurposeReset)
}

// ResetPassword consumes a reset code and stores the new password hash.
func (s *authService) ResetPassword(ctx context.Context, email string, code string, newPassword string) (*domain.User, error) {
	user, err := s.otpIssuer.VerifyUserOTP(ctx, email, code, domain.OTPPurposeReset)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash new password: %w", err)
	}
	user.PasswordHash = &hash
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to store new password: %w", err)
	}

	s.LogInfo(ctx, "password reset completed", "user_id", user.UserID)
	return user, nil
}

// PhoneLogin verifies a provider ID token and resolves the user by the phone
// number the provider vouches for. The client never supplies the phone number.
func (s *authService) PhoneLogin(ctx context.Context, idToken string) (*domain.User, error) {
	identity, err := s.phoneVerifier.VerifyPhoneToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if identity.Phone == "" {
		return nil, fmt.Errorf("%w: verified token carries no phone number", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByPhone(ctx, identity.Phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NeedsRegistrationError{Phone: identity.Phone}
		}
		return nil, err
	}
	return user, nil
}

// PhoneRegister verifies a provider ID token and creates a user bound to the
// verified phone number.
func (s *authService) PhoneRegister(ctx context.Context, idToken string, name string) (*domain.User, error) {
	identity, err := s.phoneVerifier.VerifyPhoneToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if identity.Phone == "" {
		return nil, fmt.Errorf("%w: verified token carries no phone number", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByPhone(ctx, identity.Phone); err == nil {
		return nil, apperrors.ErrDuplicate
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID: uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Phone:  &identity.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "user registered via phone", "user_id", user.UserID)
	return &user, nil
}

// GoogleLogin verifies a Google ID token and finds-or-creates the user by the
// token's email claim.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*domain.User, error) {
	payload, err := s.googleOAuth.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: token carries no email claim", apperrors.ErrInvalidToken)
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	googleID := payload.Subject

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		// Backfill provider details the account is missing.
		changed := false
		if user.Avatar == "" && picture != "" {
			user.Avatar = picture
			changed = true
		}
		if user.GoogleID == nil && googleID != "" {
			user.GoogleID = &googleID
			changed = true
		}
		if changed {
			user.UpdatedAt = time.Now()
			if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
				s.LogError(ctx, err, "failed to backfill google profile details", "user_id", user.UserID)
			}
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:   uuid.NewString(),
		Name:     name,
		Email:    &email,
		Avatar:   picture,
		GoogleID: &googleID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.userRepo.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "user registered via google", "user_id", newUser.UserID)
	return &newUser, nil
}

// RegisterWithPassword creates an account on the legacy email+password path.
func (s *authService) RegisterWithPassword(ctx context.Context, name string, email string, password string) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicate
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        &email,
		PasswordHash: &hash,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "user registered via password", "user_id", user.UserID)
	return &user, nil
}

// LoginWithPassword checks credentials on the legacy email+password path.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *authService) LoginWithPassword(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
