package services

import "context"

// EmailSenderSvc is the outbound transactional email channel. Implementations
// either deliver or return an error; no delivery-status callback is consumed.
type EmailSenderSvc interface {
	SendLoginOTPEmail(ctx context.Context, to string, code string) error
	SendRegistrationOTPEmail(ctx context.Context, to string, code string, name string) error
	SendResetOTPEmail(ctx context.Context, to string, code string) error
	SendFeedbackEmail(ctx context.Context, name string, fromEmail string, subject string, message string) error
}
