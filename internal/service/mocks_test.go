package service

import (
	"context"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/internal/repository"
	"cartroyal/pkg/gateway"
	"cartroyal/pkg/mailer"

	"github.com/stretchr/testify/mock"
)

type mockTransactionStore struct {
	mock.Mock
}

func (m *mockTransactionStore) Create(t *models.Transaction) error {
	return m.Called(t).Error(0)
}

func (m *mockTransactionStore) GetByRef(ref string) (*models.Transaction, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionStore) MarkVerified(ref string, f repository.VerifiedFields) (bool, error) {
	args := m.Called(ref, f)
	return args.Bool(0), args.Error(1)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) Create(o *models.Order) error {
	return m.Called(o).Error(0)
}

func (m *mockOrderStore) GetByUUID(uuid string) (*models.Order, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderStore) GetByUUIDAndUser(uuid, userID string) (*models.Order, error) {
	args := m.Called(uuid, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderStore) AdvanceStatus(uuid string, to domain.OrderStatus, from ...domain.OrderStatus) (bool, error) {
	args := m.Called(uuid, to, from)
	return args.Bool(0), args.Error(1)
}

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) Create(t *models.Token) error {
	return m.Called(t).Error(0)
}

func (m *mockTokenStore) GetByTypeAndToken(tokenType, token string) (*models.Token, error) {
	args := m.Called(tokenType, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Token), args.Error(1)
}

func (m *mockTokenStore) DeleteByType(tokenType string) error {
	return m.Called(tokenType).Error(0)
}

func (m *mockTokenStore) DeleteByUserAndType(userID, tokenType string) error {
	return m.Called(userID, tokenType).Error(0)
}

func (m *mockTokenStore) DeleteByTypeAndToken(tokenType, token string) error {
	return m.Called(tokenType, token).Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(u *models.User) error {
	return m.Called(u).Error(0)
}

func (m *mockUserStore) GetByUUID(uuid string) (*models.User, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) Update(u *models.User) error {
	return m.Called(u).Error(0)
}

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) GetByUUID(uuid string) (*models.Product, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, transactionID string) (*gateway.VerificationResult, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.VerificationResult), args.Error(1)
}

type mockInitiator struct {
	mock.Mock
}

func (m *mockInitiator) InitiatePayment(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockAdminNotifier struct {
	mock.Mock
}

func (m *mockAdminNotifier) SendAdminAlert(ctx context.Context, text string, imageURLs []string, templateVars map[string]string) error {
	return m.Called(ctx, text, imageURLs, templateVars).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockEventNotifier struct {
	mock.Mock
}

func (m *mockEventNotifier) OrderPaid(userID, orderID string) error {
	return m.Called(userID, orderID).Error(0)
}

func (m *mockEventNotifier) OrderOutForDelivery(userID, orderID, orderCode string) error {
	return m.Called(userID, orderID, orderCode).Error(0)
}

func (m *mockEventNotifier) OrderDelivered(userID, orderID string) error {
	return m.Called(userID, orderID).Error(0)
}

type mockPaidMarker struct {
	mock.Mock
}

func (m *mockPaidMarker) MarkPaid(orderID string) (bool, error) {
	args := m.Called(orderID)
	return args.Bool(0), args.Error(1)
}
