package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"google.golang.org/api/option"
)

// PhoneVerifier validates Firebase-issued ID tokens for the phone auth flows.
// The phone number is taken from the Firebase user directory, never from the
// client request.
type PhoneVerifier struct {
	authClient *auth.Client
}

// NewPhoneVerifier initializes the Firebase Admin SDK from a service account
// credentials file.
func NewPhoneVerifier(ctx context.Context, credentialsFile string) (*PhoneVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &PhoneVerifier{authClient: authClient}, nil
}

var _ portssvc.PhoneVerifierSvc = (*PhoneVerifier)(nil)

// DisabledVerifier rejects every token. Used when no Firebase credentials are
// configured so the phone endpoints fail cleanly instead of panicking.
type DisabledVerifier struct{}

var _ portssvc.PhoneVerifierSvc = DisabledVerifier{}

func (DisabledVerifier) VerifyPhoneToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error) {
	return nil, fmt.Errorf("%w: phone verification is not configured", apperrors.ErrInvalidToken)
}

// VerifyPhoneToken verifies the ID token signature and claims, then looks the
// user up in the provider directory to resolve the verified phone number.
func (v *PhoneVerifier) VerifyPhoneToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error) {
	token, err := v.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	record, err := v.authClient.GetUser(ctx, token.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up provider user %s: %w", token.UID, err)
	}

	return &domain.VerifiedIdentity{
		Provider: domain.ProviderPhone,
		Subject:  token.UID,
		Email:    record.Email,
		Phone:    record.PhoneNumber,
		Name:     record.DisplayName,
		PhotoURL: record.PhotoURL,
	}, nil
}
