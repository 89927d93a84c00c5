package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/core/services"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepository) SetOTP(ctx context.Context, userID string, purpose domain.OTPPurpose, otpHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, purpose, otpHash, expiresAt)
	return args.Error(0)
}
func (m *MockUserRepository) ClearOTP(ctx context.Context, userID string, purpose domain.OTPPurpose) error {
	args := m.Called(ctx, userID, purpose)
	return args.Error(0)
}
func (m *MockUserRepository) ConsumeOTP(ctx context.Context, email string, purpose domain.OTPPurpose, otpHash string) (*domain.User, error) {
	args := m.Called(ctx, email, purpose, otpHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock PendingRegistrationRepository ---
type MockPendingRegistrationRepository struct {
	mock.Mock
}

func (m *MockPendingRegistrationRepository) UpsertPending(ctx context.Context, pending domain.PendingRegistration) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}
func (m *MockPendingRegistrationRepository) ConsumePending(ctx context.Context, email string, otpHash string) (*domain.PendingRegistration, error) {
	args := m.Called(ctx, email, otpHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingRegistration), args.Error(1)
}
func (m *MockPendingRegistrationRepository) DeletePending(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockPendingRegistrationRepository) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock EmailSender ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendLoginOTPEmail(ctx context.Context, to string, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}
func (m *MockEmailSender) SendRegistrationOTPEmail(ctx context.Context, to string, code string, name string) error {
	args := m.Called(ctx, to, code, name)
	return args.Error(0)
}
func (m *MockEmailSender) SendResetOTPEmail(ctx context.Context, to string, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}
func (m *MockEmailSender) SendFeedbackEmail(ctx context.Context, name string, fromEmail string, subject string, message string) error {
	args := m.Called(ctx, name, fromEmail, subject, message)
	return args.Error(0)
}

// --- Test Suite ---

var sixDigitCode = regexp.MustCompile(`^[1-9]\d{5}$`)

type OTPServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockPendingRepo *MockPendingRegistrationRepository
	mockEmailSender *MockEmailSender
	service         portssvc.OTPIssuerSvc
	ctx             context.Context
	testEmail       string
	testUser        *domain.User
}

func (s *OTPServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockPendingRepo = new(MockPendingRegistrationRepository)
	s.mockEmailSender = new(MockEmailSender)
	s.service = services.NewOTPService(s.mockUserRepo, s.mockPendingRepo, s.mockEmailSender, 10*time.Minute)
	s.ctx = context.Background()
	s.testEmail = "user@example.com"
	email := s.testEmail
	s.testUser = &domain.User{
		UserID: "user-123",
		Name:   "Test User",
		Email:  &email,
	}
}

func (s *OTPServiceTestSuite) TestIssueUserOTP_Success() {
	var sentCode string
	var storedHash string

	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(s.testUser, nil).Once()
	s.mockUserRepo.On("SetOTP", s.ctx, s.testUser.UserID, domain.OTPPurposeLogin, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(3)
			expiresAt := args.Get(4).(time.Time)
			s.WithinDuration(time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
		}).
		Return(nil).Once()
	s.mockEmailSender.On("SendLoginOTPEmail", s.ctx, s.testEmail, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			sentCode = args.String(2)
		}).
		Return(nil).Once()

	err := s.service.IssueUserOTP(s.ctx, s.testEmail, domain.OTPPurposeLogin)

	s.NoError(err)
	s.Regexp(sixDigitCode, sentCode)
	// The stored digest must correspond to the delivered code, never the plaintext.
	s.Equal(utils.HashOTPCode(sentCode), storedHash)
	s.NotEqual(sentCode, storedHash)
	s.mockUserRepo.AssertExpectations(s.T())
	s.mockEmailSender.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestIssueUserOTP_ResetPurposeUsesResetEmail() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(s.testUser, nil).Once()
	s.mockUserRepo.On("SetOTP", s.ctx, s.testUser.UserID, domain.OTPPurposeReset, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockEmailSender.On("SendResetOTPEmail", s.ctx, s.testEmail, mock.AnythingOfType("string")).Return(nil).Once()

	err := s.service.IssueUserOTP(s.ctx, s.testEmail, domain.OTPPurposeReset)

	s.NoError(err)
	s.mockEmailSender.AssertNotCalled(s.T(), "SendLoginOTPEmail", mock.Anything, mock.Anything, mock.Anything)
	s.mockEmailSender.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestIssueUserOTP_UserNotFound() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.IssueUserOTP(s.ctx, s.testEmail, domain.OTPPurposeLogin)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockUserRepo.AssertNotCalled(s.T(), "SetOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockEmailSender.AssertNotCalled(s.T(), "SendLoginOTPEmail", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OTPServiceTestSuite) TestIssueUserOTP_DeliveryFailureRollsBackSlot() {
	smtpErr := errors.New("smtp: connection refused")
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(s.testUser, nil).Once()
	s.mockUserRepo.On("SetOTP", s.ctx, s.testUser.UserID, domain.OTPPurposeLogin, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockEmailSender.On("SendLoginOTPEmail", s.ctx, s.testEmail, mock.AnythingOfType("string")).Return(smtpErr).Once()
	s.mockUserRepo.On("ClearOTP", s.ctx, s.testUser.UserID, domain.OTPPurposeLogin).Return(nil).Once()

	err := s.service.IssueUserOTP(s.ctx, s.testEmail, domain.OTPPurposeLogin)

	s.ErrorIs(err, apperrors.ErrDeliveryFailure)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestIssueRegistrationOTP_Success() {
	var sentCode string
	var storedPending domain.PendingRegistration

	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(nil, apperrors.ErrNotFound).Once()
	s.mockPendingRepo.On("SweepExpired", s.ctx).Return(int64(0), nil).Once()
	s.mockPendingRepo.On("UpsertPending", s.ctx, mock.AnythingOfType("domain.PendingRegistration")).
		Run(func(args mock.Arguments) {
			storedPending = args.Get(1).(domain.PendingRegistration)
		}).
		Return(nil).Once()
	s.mockEmailSender.On("SendRegistrationOTPEmail", s.ctx, s.testEmail, mock.AnythingOfType("string"), "New User").
		Run(func(args mock.Arguments) {
			sentCode = args.String(2)
		}).
		Return(nil).Once()

	err := s.service.IssueRegistrationOTP(s.ctx, "  New User  ", s.testEmail)

	s.NoError(err)
	s.Equal("New User", storedPending.Name)
	s.Equal(utils.HashOTPCode(sentCode), storedPending.OTPHash)
	s.WithinDuration(time.Now().Add(10*time.Minute), storedPending.ExpiresAt, 5*time.Second)
	s.mockPendingRepo.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestIssueRegistrationOTP_ExistingAccount() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(s.testUser, nil).Once()

	err := s.service.IssueRegistrationOTP(s.ctx, "New User", s.testEmail)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockPendingRepo.AssertNotCalled(s.T(), "UpsertPending", mock.Anything, mock.Anything)
	s.mockEmailSender.AssertNotCalled(s.T(), "SendRegistrationOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OTPServiceTestSuite) TestIssueRegistrationOTP_DeliveryFailureRollsBackPending() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(nil, apperrors.ErrNotFound).Once()
	s.mockPendingRepo.On("SweepExpired", s.ctx).Return(int64(0), nil).Once()
	s.mockPendingRepo.On("UpsertPending", s.ctx, mock.AnythingOfType("domain.PendingRegistration")).Return(nil).Once()
	s.mockEmailSender.On("SendRegistrationOTPEmail", s.ctx, s.testEmail, mock.Anything, "New User").Return(errors.New("provider 500")).Once()
	s.mockPendingRepo.On("DeletePending", s.ctx, s.testEmail).Return(nil).Once()

	err := s.service.IssueRegistrationOTP(s.ctx, "New User", s.testEmail)

	s.ErrorIs(err, apperrors.ErrDeliveryFailure)
	s.mockPendingRepo.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestIssueRegistrationOTP_SweepFailureIsNonFatal() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.testEmail).Return(nil, apperrors.ErrNotFound).Once()
	s.mockPendingRepo.On("SweepExpired", s.ctx).Return(int64(0), errors.New("deadlock")).Once()
	s.mockPendingRepo.On("UpsertPending", s.ctx, mock.AnythingOfType("domain.PendingRegistration")).Return(nil).Once()
	s.mockEmailSender.On("SendRegistrationOTPEmail", s.ctx, s.testEmail, mock.Anything, "New User").Return(nil).Once()

	err := s.service.IssueRegistrationOTP(s.ctx, "New User", s.testEmail)

	s.NoError(err)
	s.mockPendingRepo.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestVerifyUserOTP_DelegatesHashedCode() {
	code := "123456"
	s.mockUserRepo.On("ConsumeOTP", s.ctx, s.testEmail, domain.OTPPurposeLogin, utils.HashOTPCode(code)).Return(s.testUser, nil).Once()

	user, err := s.service.VerifyUserOTP(s.ctx, s.testEmail, code, domain.OTPPurposeLogin)

	s.NoError(err)
	s.Equal(s.testUser.UserID, user.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *OTPServiceTestSuite) TestVerifyUserOTP_InvalidCode() {
	s.mockUserRepo.On("ConsumeOTP", s.ctx, s.testEmail, domain.OTPPurposeLogin, mock.AnythingOfType("string")).Return(nil, apperrors.ErrInvalidOrExpiredCode).Once()

	user, err := s.service.VerifyUserOTP(s.ctx, s.testEmail, "000000", domain.OTPPurposeLogin)

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredCode)
}

func (s *OTPServiceTestSuite) TestVerifyRegistrationOTP_DelegatesHashedCode() {
	code := "654321"
	pending := &domain.PendingRegistration{Email: s.testEmail, Name: "New User"}
	s.mockPendingRepo.On("ConsumePending", s.ctx, s.testEmail, utils.HashOTPCode(code)).Return(pending, nil).Once()

	got, err := s.service.VerifyRegistrationOTP(s.ctx, s.testEmail, code)

	s.NoError(err)
	s.Equal(pending, got)
	s.mockPendingRepo.AssertExpectations(s.T())
}

func TestOTPServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OTPServiceTestSuite))
}

func TestGeneratedCodesAreSixDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := utils.GenerateOTPCode()
		assert.NoError(t, err)
		assert.Regexp(t, sixDigitCode, code)
	}
}
