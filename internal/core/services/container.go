package services

import (
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
)

// NewContainer creates the service container with properly initialized
// dependencies. Outbound adapters (email, phone verification, push) are built
// by the caller so tests can swap them out.
func NewContainer(
	repos *portsrepo.RepositoryProvider,
	cfg *config.Config,
	emailSender portssvc.EmailSenderSvc,
	phoneVerifier portssvc.PhoneVerifierSvc,
	pushSender portssvc.PushSenderSvc,
) *portssvc.ServiceContainer {
	googleOAuth := NewGoogleOAuthHandlerService(cfg)
	otpIssuer := NewOTPService(repos.UserRepo, repos.PendingRepo, emailSender, cfg.OTPExpiryDuration)

	return &portssvc.ServiceContainer{
		Auth:               NewAuthService(repos.UserRepo, otpIssuer, phoneVerifier, googleOAuth),
		Token:              NewTokenService(cfg),
		User:               NewUserService(repos.UserRepo),
		Task:               NewTaskService(repos.TaskRepo),
		Habit:              NewHabitService(repos.HabitRepo),
		Mood:               NewMoodService(repos.MoodRepo),
		Notification:       NewNotificationService(repos.PushRepo, pushSender),
		Email:              emailSender,
		GoogleOAuthHandler: googleOAuth,
	}
}
