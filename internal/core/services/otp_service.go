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
)

// otpService owns the one-time-code lifecycle: generate, persist the digest,
// deliver, consume. Codes live in purpose slots on the user row (login, reset)
// or on a pending registration; re-issuing overwrites the previous code, so at
// most one code per slot is live at a time.
type otpService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	pendingRepo portsrepo.PendingRegistrationRepository
	emailSender portssvc.EmailSenderSvc
	otpExpiry   time.Duration
}

// NewOTPService creates a new instance of otpService.
func NewOTPService(
	userRepo portsrepo.UserRepository,
	pendingRepo portsrepo.PendingRegistrationRepository,
	emailSender portssvc.EmailSenderSvc,
	otpExpiry time.Duration,
) portssvc.OTPIssuerSvc {
	return &otpService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		emailSender: emailSender,
		otpExpiry:   otpExpiry,
	}
}

var _ portssvc.OTPIssuerSvc = (*otpService)(nil)

// IssueUserOTP binds a fresh code to the user's purpose slot and emails it.
// The slot is written before delivery; if delivery fails the slot is rolled
// back so a code that never reached the user cannot linger.
func (s *otpService) IssueUserOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate one-time code: %w", err)
	}

	expiresAt := time.Now().Add(s.otpExpiry)
	if err := s.userRepo.SetOTP(ctx, user.UserID, purpose, utils.HashOTPCode(code), expiresAt); err != nil {
		return fmt.Errorf("failed to store one-time code: %w", err)
	}

	var sendErr error
	switch purpose {
	case domain.OTPPurposeReset:
		sendErr = s.emailSender.SendResetOTPEmail(ctx, user.EmailOrEmpty(), code)
	default:
		sendErr = s.emailSender.SendLoginOTPEmail(ctx, user.EmailOrEmpty(), code)
	}
	if sendErr != nil {
		s.LogError(ctx, sendErr, "one-time code delivery failed, rolling back slot", "purpose", string(purpose))
		if clearErr := s.userRepo.ClearOTP(ctx, user.UserID, purpose); clearErr != nil {
			s.LogError(ctx, clearErr, "failed to roll back one-time code slot")
		}
		return fmt.Errorf("%w: %v", apperrors.ErrDeliveryFailure, sendErr)
	}

	s.LogInfo(ctx, "one-time code issued", "purpose", string(purpose))
	return nil
}

// IssueRegistrationOTP records a pending registration with a fresh code and
// emails it. A repeat request for the same email replaces the previous pending
// entry and its code.
func (s *otpService) IssueRegistrationOTP(ctx context.Context, name string, email string) error {
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return apperrors.ErrDuplicate
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	// Opportunistic cleanup; abandoned registrations expire anyway, this just
	// keeps the table small.
	if _, err := s.pendingRepo.SweepExpired(ctx); err != nil {
		s.LogError(ctx, err, "failed to sweep expired pending registrations")
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate one-time code: %w", err)
	}

	now := time.Now()
	pending := domain.PendingRegistration{
		Email:     email,
		Name:      strings.TrimSpace(name),
		OTPHash:   utils.HashOTPCode(code),
		ExpiresAt: now.Add(s.otpExpiry),
		CreatedAt: now,
	}
	if err := s.pendingRepo.UpsertPending(ctx, pending); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}

	if err := s.emailSender.SendRegistrationOTPEmail(ctx, email, code, pending.Name); err != nil {
		s.LogError(ctx, err, "registration code delivery failed, rolling back pending entry")
		if delErr := s.pendingRepo.DeletePending(ctx, email); delErr != nil {
			s.LogError(ctx, delErr, "failed to roll back pending registration")
		}
		return fmt.Errorf("%w: %v", apperrors.ErrDeliveryFailure, err)
	}

	s.LogInfo(ctx, "registration code issued")
	return nil
}

// VerifyUserOTP consumes a user-slot code. The repository's conditional update
// guarantees single use; any mismatch surfaces as ErrInvalidOrExpiredCode.
func (s *otpService) VerifyUserOTP(ctx context.Context, email string, code string, purpose domain.OTPPurpose) (*domain.User, error) {
	return s.userRepo.ConsumeOTP(ctx, email, purpose, utils.HashOTPCode(code))
}

// VerifyRegistrationOTP consumes a pending-registration code.
func (s *otpService) VerifyRegistrationOTP(ctx context.Context, email string, code string) (*domain.PendingRegistration, error) {
	return s.pendingRepo.ConsumePending(ctx, email, utils.HashOTPCode(code))
}
