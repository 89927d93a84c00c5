package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/core/services"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock OTPIssuer ---
type MockOTPIssuer struct {
	mock.Mock
}

func (m *MockOTPIssuer) IssueUserOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	args := m.Called(ctx, email, purpose)
	return args.Error(0)
}
func (m *MockOTPIssuer) IssueRegistrationOTP(ctx context.Context, name string, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}
func (m *MockOTPIssuer) VerifyUserOTP(ctx context.Context, email string, code string, purpose domain.OTPPurpose) (*domain.User, error) {
	args := m.Called(ctx, email, code, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockOTPIssuer) VerifyRegistrationOTP(ctx context.Context, email string, code string) (*domain.PendingRegistration, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingRegistration), args.Error(1)
}

// --- Mock PhoneVerifier ---
type MockPhoneVerifier struct {
	mock.Mock
}

func (m *MockPhoneVerifier) VerifyPhoneToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifiedIdentity), args.Error(1)
}

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

// --- Test Suite ---
type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockOTPIssuer   *MockOTPIssuer
	mockVerifier    *MockPhoneVerifier
	mockGoogleOAuth *MockGoogleOAuthService
	service         portssvc.AuthSvcFacade
	ctx             context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockOTPIssuer = new(MockOTPIssuer)
	s.mockVerifier = new(MockPhoneVerifier)
	s.mockGoogleOAuth = new(MockGoogleOAuthService)
	s.service = services.NewAuthService(s.mockUserRepo, s.mockOTPIssuer, s.mockVerifier, s.mockGoogleOAuth)
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) TestVerifyRegisterOTP_CreatesUser() {
	email := "new@example.com"
	pending := &domain.PendingRegistration{Email: email, Name: "New User"}
	s.mockOTPIssuer.On("VerifyRegistrationOTP", s.ctx, email, "123456").Return(pending, nil).Once()

	var created domain.User
	s.mockUserRepo.On("CreateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	user, err := s.service.VerifyRegisterOTP(s.ctx, email, "123456")

	s.NoError(err)
	s.NotEmpty(user.UserID)
	s.Equal("New User", created.Name)
	s.Require().NotNil(created.Email)
	s.Equal(email, *created.Email)
	s.Nil(created.PasswordHash)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestVerifyRegisterOTP_InvalidCode() {
	email := "new@example.com"
	s.mockOTPIssuer.On("VerifyRegistrationOTP", s.ctx, email, "000000").Return(nil, apperrors.ErrInvalidOrExpiredCode).Once()

	user, err := s.service.VerifyRegisterOTP(s.ctx, email, "000000")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredCode)
	s.mockUserRepo.AssertNotCalled(s.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestVerifyRegisterOTP_AccountAppearedMeanwhile() {
	email := "new@example.com"
	pending := &domain.PendingRegistration{Email: email, Name: "New User"}
	s.mockOTPIssuer.On("VerifyRegistrationOTP", s.ctx, email, "123456").Return(pending, nil).Once()
	s.mockUserRepo.On("CreateUser", s.ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := s.service.VerifyRegisterOTP(s.ctx, email, "123456")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AuthServiceTestSuite) TestResetPassword_StoresNewHash() {
	email := "user@example.com"
	user := &domain.User{UserID: "user-123", Email: &email}
	s.mockOTPIssuer.On("VerifyUserOTP", s.ctx, email, "123456", domain.OTPPurposeReset).Return(user, nil).Once()

	var updated domain.User
	s.mockUserRepo.On("UpdateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	got, err := s.service.ResetPassword(s.ctx, email, "123456", "new-secret")

	s.NoError(err)
	s.Equal("user-123", got.UserID)
	s.Require().NotNil(updated.PasswordHash)
	s.True(utils.CheckPasswordHash("new-secret", *updated.PasswordHash))
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestPhoneLogin_Success() {
	phone := "+15551234567"
	user := &domain.User{UserID: "user-123", Phone: &phone}
	s.mockVerifier.On("VerifyPhoneToken", s.ctx, "firebase-token").
		Return(&domain.VerifiedIdentity{Provider: domain.ProviderPhone, Subject: "uid-1", Phone: phone}, nil).Once()
	s.mockUserRepo.On("FindUserByPhone", s.ctx, phone).Return(user, nil).Once()

	got, err := s.service.PhoneLogin(s.ctx, "firebase-token")

	s.NoError(err)
	s.Equal("user-123", got.UserID)
}

func (s *AuthServiceTestSuite) TestPhoneLogin_UnknownPhoneNeedsRegistration() {
	phone := "+15551234567"
	s.mockVerifier.On("VerifyPhoneToken", s.ctx, "firebase-token").
		Return(&domain.VerifiedIdentity{Provider: domain.ProviderPhone, Subject: "uid-1", Phone: phone}, nil).Once()
	s.mockUserRepo.On("FindUserByPhone", s.ctx, phone).Return(nil, apperrors.ErrNotFound).Once()

	got, err := s.service.PhoneLogin(s.ctx, "firebase-token")

	s.Nil(got)
	var needsReg *apperrors.NeedsRegistrationError
	s.Require().ErrorAs(err, &needsReg)
	// The verified phone is echoed so the client can prefill registration.
	s.Equal(phone, needsReg.Phone)
}

func (s *AuthServiceTestSuite) TestPhoneLogin_InvalidToken() {
	s.mockVerifier.On("VerifyPhoneToken", s.ctx, "bad-token").Return(nil, apperrors.ErrInvalidToken).Once()

	got, err := s.service.PhoneLogin(s.ctx, "bad-token")

	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrInvalidToken)
	s.mockUserRepo.AssertNotCalled(s.T(), "FindUserByPhone", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestPhoneLogin_TokenWithoutPhone() {
	s.mockVerifier.On("VerifyPhoneToken", s.ctx, "firebase-token").
		Return(&domain.VerifiedIdentity{Provider: domain.ProviderPhone, Subject: "uid-1"}, nil).Once()

	got, err := s.service.PhoneLogin(s.ctx, "firebase-token")

	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AuthServiceTestSuite) TestPhoneRegister_UsesVerifiedPhone() {
	phone := "+15551234567"
	s.mockVerifier.On("VerifyPhoneToken", s.ctx, "firebase-token").
		Return(&domain.VerifiedIdentity{Provider: domain.ProviderPhone, Subject: "uid-1", Phone: phone}, nil).Once()
	s.mockUserRepo.On("FindUserByPhone", s.ctx, phone).Return(nil, apperrors.ErrNotFound).Once()

	var created domain.User
	s.mockUserRepo.On("CreateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	user, err := s.service.PhoneRegister(s.ctx, "firebase-token", "  Jamie  ")

	s.NoError(err)
	s.Equal("Jamie", user.Name)
	s.Require().NotNil(created.Phone)
	s.Equal(phone, *created.Phone)
	s.Nil(created.Email)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestPhoneRegister_ExistingPhone() {
	phone := "+15551234567"
	existing := &domain.User{UserID: "user-123", Phone: &phone}
	s.mockVerifier.On("VerifyPhoneToken", s.ctx, "firebase-token").
		Return(&domain.VerifiedIdentity{Provider: domain.ProviderPhone, Subject: "uid-1", Phone: phone}, nil).Once()
	s.mockUserRepo.On("FindUserByPhone", s.ctx, phone).Return(existing, nil).Once()

	user, err := s.service.PhoneRegister(s.ctx, "firebase-token", "Jamie")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockUserRepo.AssertNotCalled(s.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestGoogleLogin_CreatesUser() {
	payload := &idtoken.Payload{
		Subject: "google-sub-1",
		Claims: map[string]interface{}{
			"email":   "gina@example.com",
			"name":    "Gina",
			"picture": "https://lh3.example.com/photo.jpg",
		},
	}
	s.mockGoogleOAuth.On("ValidateGoogleIDToken", s.ctx, "google-token").Return(payload, nil).Once()
	s.mockUserRepo.On("FindUserByEmail", s.ctx, "gina@example.com").Return(nil, apperrors.ErrNotFound).Once()

	var created domain.User
	s.mockUserRepo.On("CreateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	user, err := s.service.GoogleLogin(s.ctx, "google-token")

	s.NoError(err)
	s.Equal("Gina", user.Name)
	s.Equal("https://lh3.example.com/photo.jpg", created.Avatar)
	s.Require().NotNil(created.GoogleID)
	s.Equal("google-sub-1", *created.GoogleID)
}

func (s *AuthServiceTestSuite) TestGoogleLogin_BackfillsMissingAvatar() {
	email := "gina@example.com"
	existing := &domain.User{UserID: "user-123", Name: "Gina", Email: &email}
	payload := &idtoken.Payload{
		Subject: "google-sub-1",
		Claims: map[string]interface{}{
			"email":   email,
			"picture": "https://lh3.example.com/photo.jpg",
		},
	}
	s.mockGoogleOAuth.On("ValidateGoogleIDToken", s.ctx, "google-token").Return(payload, nil).Once()
	s.mockUserRepo.On("FindUserByEmail", s.ctx, email).Return(existing, nil).Once()

	var updated domain.User
	s.mockUserRepo.On("UpdateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	user, err := s.service.GoogleLogin(s.ctx, "google-token")

	s.NoError(err)
	s.Equal("user-123", user.UserID)
	s.Equal("https://lh3.example.com/photo.jpg", updated.Avatar)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestGoogleLogin_KeepsExistingAvatar() {
	email := "gina@example.com"
	googleID := "google-sub-1"
	existing := &domain.User{
		UserID:   "user-123",
		Name:     "Gina",
		Email:    &email,
		Avatar:   "/uploads/custom.png",
		GoogleID: &googleID,
	}
	payload := &idtoken.Payload{
		Subject: googleID,
		Claims: map[string]interface{}{
			"email":   email,
			"picture": "https://lh3.example.com/photo.jpg",
		},
	}
	s.mockGoogleOAuth.On("ValidateGoogleIDToken", s.ctx, "google-token").Return(payload, nil).Once()
	s.mockUserRepo.On("FindUserByEmail", s.ctx, email).Return(existing, nil).Once()

	user, err := s.service.GoogleLogin(s.ctx, "google-token")

	s.NoError(err)
	s.Equal("/uploads/custom.png", user.Avatar)
	s.mockUserRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestGoogleLogin_InvalidToken() {
	s.mockGoogleOAuth.On("ValidateGoogleIDToken", s.ctx, "bad-token").Return(nil, errors.New("token expired")).Once()

	user, err := s.service.GoogleLogin(s.ctx, "bad-token")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (s *AuthServiceTestSuite) TestLoginWithPassword_Success() {
	email := "user@example.com"
	hash, err := utils.HashPassword("secret")
	s.Require().NoError(err)
	user := &domain.User{UserID: "user-123", Email: &email, PasswordHash: &hash}
	s.mockUserRepo.On("FindUserByEmail", s.ctx, email).Return(user, nil).Once()

	got, err := s.service.LoginWithPassword(s.ctx, email, "secret")

	s.NoError(err)
	s.Equal("user-123", got.UserID)
}

func (s *AuthServiceTestSuite) TestLoginWithPassword_WrongPassword() {
	email := "user@example.com"
	hash, err := utils.HashPassword("secret")
	s.Require().NoError(err)
	user := &domain.User{UserID: "user-123", Email: &email, PasswordHash: &hash}
	s.mockUserRepo.On("FindUserByEmail", s.ctx, email).Return(user, nil).Once()

	got, err := s.service.LoginWithPassword(s.ctx, email, "wrong")

	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLoginWithPassword_UnknownEmail() {
	email := "nobody@example.com"
	s.mockUserRepo.On("FindUserByEmail", s.ctx, email).Return(nil, apperrors.ErrNotFound).Once()

	got, err := s.service.LoginWithPassword(s.ctx, email, "secret")

	s.Nil(got)
	// Indistinguishable from a wrong password.
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLoginWithPassword_PasswordlessAccount() {
	email := "user@example.com"
	user := &domain.User{UserID: "user-123", Email: &email}
	s.mockUserRepo.On("FindUserByEmail", s.ctx, email).Return(user, nil).Once()

	got, err := s.service.LoginWithPassword(s.ctx, email, "secret")

	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestSendLoginOTP_DelegatesToIssuer() {
	email := "user@example.com"
	s.mockOTPIssuer.On("IssueUserOTP", s.ctx, email, domain.OTPPurposeLogin).Return(nil).Once()

	s.NoError(s.service.SendLoginOTP(s.ctx, email))
	s.mockOTPIssuer.AssertExpectations(s.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
