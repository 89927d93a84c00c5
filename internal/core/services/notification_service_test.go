package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	"github.com/lifeos-app/lifeos-backend/internal/core/services"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PushSubscriptionRepository ---
type MockPushSubscriptionRepository struct {
	mock.Mock
}

func (m *MockPushSubscriptionRepository) UpsertSubscription(ctx context.Context, sub domain.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockPushSubscriptionRepository) FindSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushSubscription), args.Error(1)
}
func (m *MockPushSubscriptionRepository) DeleteSubscriptionByEndpoint(ctx context.Context, userID string, endpoint string) error {
	args := m.Called(ctx, userID, endpoint)
	return args.Error(0)
}
func (m *MockPushSubscriptionRepository) DeleteSubscriptionByID(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

// --- Mock PushSender ---
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) SendNotification(ctx context.Context, sub domain.PushSubscription, payload domain.PushPayload) error {
	args := m.Called(ctx, sub, payload)
	return args.Error(0)
}
func (m *MockPushSender) PublicKey() string {
	args := m.Called()
	return args.String(0)
}

// --- Test Suite ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockPushSubscriptionRepository
	mockSender *MockPushSender
	service    portssvc.NotificationSvcFacade
	ctx        context.Context
	userID     string
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockPushSubscriptionRepository)
	s.mockSender = new(MockPushSender)
	s.service = services.NewNotificationService(s.mockRepo, s.mockSender)
	s.ctx = context.Background()
	s.userID = "user-123"
}

func (s *NotificationServiceTestSuite) sub(id string) domain.PushSubscription {
	return domain.PushSubscription{
		SubscriptionID: id,
		UserID:         s.userID,
		Endpoint:       "https://push.example.com/" + id,
		P256dh:         "p256dh-key",
		Auth:           "auth-key",
	}
}

func (s *NotificationServiceTestSuite) TestSubscribe_AssignsIDAndStores() {
	var stored domain.PushSubscription
	s.mockRepo.On("UpsertSubscription", s.ctx, mock.AnythingOfType("domain.PushSubscription")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(domain.PushSubscription)
		}).
		Return(nil).Once()

	err := s.service.Subscribe(s.ctx, s.userID, "https://push.example.com/ep", "p256dh-key", "auth-key")

	s.NoError(err)
	s.NotEmpty(stored.SubscriptionID)
	s.Equal(s.userID, stored.UserID)
	s.Equal("https://push.example.com/ep", stored.Endpoint)
}

func (s *NotificationServiceTestSuite) TestSendTest_NoSubscriptions() {
	s.mockRepo.On("FindSubscriptionsByUser", s.ctx, s.userID).Return([]domain.PushSubscription{}, nil).Once()

	err := s.service.SendTest(s.ctx, s.userID)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockSender.AssertNotCalled(s.T(), "SendNotification", mock.Anything, mock.Anything, mock.Anything)
}

func (s *NotificationServiceTestSuite) TestSendTest_DeliversToAll() {
	subs := []domain.PushSubscription{s.sub("sub-1"), s.sub("sub-2")}
	s.mockRepo.On("FindSubscriptionsByUser", s.ctx, s.userID).Return(subs, nil).Once()
	s.mockSender.On("SendNotification", s.ctx, subs[0], mock.AnythingOfType("domain.PushPayload")).Return(nil).Once()
	s.mockSender.On("SendNotification", s.ctx, subs[1], mock.AnythingOfType("domain.PushPayload")).Return(nil).Once()

	err := s.service.SendTest(s.ctx, s.userID)

	s.NoError(err)
	s.mockSender.AssertExpectations(s.T())
}

func (s *NotificationServiceTestSuite) TestSendTest_PrunesGoneEndpoints() {
	subs := []domain.PushSubscription{s.sub("sub-dead"), s.sub("sub-live")}
	s.mockRepo.On("FindSubscriptionsByUser", s.ctx, s.userID).Return(subs, nil).Once()
	s.mockSender.On("SendNotification", s.ctx, subs[0], mock.AnythingOfType("domain.PushPayload")).Return(apperrors.ErrNotFound).Once()
	s.mockRepo.On("DeleteSubscriptionByID", s.ctx, "sub-dead").Return(nil).Once()
	s.mockSender.On("SendNotification", s.ctx, subs[1], mock.AnythingOfType("domain.PushPayload")).Return(nil).Once()

	err := s.service.SendTest(s.ctx, s.userID)

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *NotificationServiceTestSuite) TestSendTest_AllDeliveriesFail() {
	subs := []domain.PushSubscription{s.sub("sub-1")}
	s.mockRepo.On("FindSubscriptionsByUser", s.ctx, s.userID).Return(subs, nil).Once()
	s.mockSender.On("SendNotification", s.ctx, subs[0], mock.AnythingOfType("domain.PushPayload")).Return(errors.New("tls handshake failed")).Once()

	err := s.service.SendTest(s.ctx, s.userID)

	s.ErrorIs(err, apperrors.ErrDeliveryFailure)
	s.mockRepo.AssertNotCalled(s.T(), "DeleteSubscriptionByID", mock.Anything, mock.Anything)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
