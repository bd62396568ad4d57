package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func orderFixture() (*mockOrderStore, *mockUserStore, *mockTokenStore, *mockMailer, *mockEventNotifier, *OrderService) {
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	mail := new(mockMailer)
	events := new(mockEventNotifier)
	delivery := NewDeliveryService(NewTokenService(tokens), orders, "https://api.shop.example.com")
	svc := NewOrderService(orders, users, delivery, mail, events, "Cart Royal")
	return orders, users, tokens, mail, events, svc
}

func TestMarkPaidAdvancesCreatedOrder(t *testing.T) {
	orders, _, _, _, events, svc := orderFixture()

	orders.On("AdvanceStatus", "O1", domain.OrderPaid,
		[]domain.OrderStatus{domain.OrderCreated}).Return(true, nil).Once()
	orders.On("GetByUUID", "O1").Return(&models.Order{UUID: "O1", UserID: "U1"}, nil).Once()
	events.On("OrderPaid", "U1", "O1").Return(nil).Once()

	moved, err := svc.MarkPaid("O1")

	assert.NoError(t, err)
	assert.True(t, moved)
	events.AssertExpectations(t)
}

func TestMarkPaidIsReentrant(t *testing.T) {
	orders, _, _, _, events, svc := orderFixture()

	orders.On("AdvanceStatus", "O1", domain.OrderPaid, mock.Anything).Return(false, nil)

	moved, err := svc.MarkPaid("O1")

	assert.NoError(t, err)
	assert.False(t, moved)
	events.AssertNotCalled(t, "OrderPaid", mock.Anything, mock.Anything)
}

func shippableOrder() *models.Order {
	return &models.Order{UUID: "O1", UserID: "U1", OrderCode: "CR-ABC123", Status: domain.OrderPaid}
}

func TestMarkSentForDeliveryMintsTokenAndEmails(t *testing.T) {
	orders, users, tokens, mail, events, svc := orderFixture()

	orders.On("GetByUUID", "O1").Return(shippableOrder(), nil).Once()
	users.On("GetByUUID", "U1").Return(customerU1(), nil).Once()
	tokens.On("DeleteByType", "order-received:O1").Return(nil).Once()
	tokens.On("Create", mock.MatchedBy(func(tk *models.Token) bool {
		return tk.Type == "order-received:O1" && tk.UserID == "U1" && tk.ExpiresOn != nil
	})).Return(nil).Once()
	orders.On("AdvanceStatus", "O1", domain.OrderOutForDelivery,
		[]domain.OrderStatus{domain.OrderPaid, domain.OrderOutForDelivery}).Return(true, nil).Once()
	mail.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		link, _ := msg.Data["confirmLink"].(string)
		return msg.To == "jane@example.com" &&
			msg.Subject == "Order Update • Out for Delivery" &&
			msg.TemplateRef == mailer.TemplateOrderDelivery &&
			strings.Contains(link, "type=order-received%3AO1")
	})).Return(nil).Once()
	events.On("OrderOutForDelivery", "U1", "O1", "CR-ABC123").Return(nil).Once()

	shipped, err := svc.MarkSentForDelivery(context.Background(), "O1")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderOutForDelivery, shipped.Status)
	assert.Contains(t, shipped.ConfirmationLink, "/api/v1/order/confirm-received?token=")
	tokens.AssertExpectations(t)
	mail.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestMarkSentForDeliveryEmailFailurePropagates(t *testing.T) {
	orders, users, tokens, mail, events, svc := orderFixture()

	orders.On("GetByUUID", "O1").Return(shippableOrder(), nil).Once()
	users.On("GetByUUID", "U1").Return(customerU1(), nil).Once()
	tokens.On("DeleteByType", mock.Anything).Return(nil)
	tokens.On("Create", mock.Anything).Return(nil)
	orders.On("AdvanceStatus", "O1", domain.OrderOutForDelivery, mock.Anything).Return(true, nil)
	mail.On("Send", mock.Anything, mock.Anything).Return(errors.New("resend 500")).Once()

	_, err := svc.MarkSentForDelivery(context.Background(), "O1")

	// the email is the customer's only handle on the confirmation link
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delivery notice")
	events.AssertNotCalled(t, "OrderOutForDelivery", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkSentForDeliveryRejectsUnpaidOrder(t *testing.T) {
	orders, users, tokens, mail, _, svc := orderFixture()

	unpaid := &models.Order{UUID: "O1", UserID: "U1", OrderCode: "CR-ABC123", Status: domain.OrderCreated}
	orders.On("GetByUUID", "O1").Return(unpaid, nil).Once()
	users.On("GetByUUID", "U1").Return(customerU1(), nil).Once()
	tokens.On("DeleteByType", mock.Anything).Return(nil)
	tokens.On("Create", mock.Anything).Return(nil)
	orders.On("AdvanceStatus", "O1", domain.OrderOutForDelivery, mock.Anything).Return(false, nil)

	_, err := svc.MarkSentForDelivery(context.Background(), "O1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestMarkSentForDeliveryMissingOrder(t *testing.T) {
	orders, users, _, _, _, svc := orderFixture()

	orders.On("GetByUUID", "O1").Return(nil, errors.New("record not found")).Once()

	_, err := svc.MarkSentForDelivery(context.Background(), "O1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	users.AssertNotCalled(t, "GetByUUID", mock.Anything)
}

func TestMarkSentForDeliveryRequiresCustomerEmail(t *testing.T) {
	orders, users, tokens, _, _, svc := orderFixture()

	orders.On("GetByUUID", "O1").Return(shippableOrder(), nil).Once()
	users.On("GetByUUID", "U1").Return(&models.User{UUID: "U1"}, nil).Once()

	_, err := svc.MarkSentForDelivery(context.Background(), "O1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	tokens.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMarkSentForDeliveryReissuesForShippedOrder(t *testing.T) {
	orders, users, tokens, mail, events, svc := orderFixture()

	// already out_for_delivery: the notice goes out again with a fresh token
	out := &models.Order{UUID: "O1", UserID: "U1", OrderCode: "CR-ABC123", Status: domain.OrderOutForDelivery}
	orders.On("GetByUUID", "O1").Return(out, nil).Once()
	users.On("GetByUUID", "U1").Return(customerU1(), nil).Once()
	tokens.On("DeleteByType", "order-received:O1").Return(nil).Once()
	tokens.On("Create", mock.Anything).Return(nil).Once()
	orders.On("AdvanceStatus", "O1", domain.OrderOutForDelivery, mock.Anything).Return(true, nil).Once()
	mail.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	events.On("OrderOutForDelivery", "U1", "O1", "CR-ABC123").Return(nil).Once()

	shipped, err := svc.MarkSentForDelivery(context.Background(), "O1")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderOutForDelivery, shipped.Status)
	tokens.AssertExpectations(t)
}

func TestConfirmReceivedNotifiesCustomer(t *testing.T) {
	orders, _, tokens, _, events, svc := orderFixture()

	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(&models.Token{
		UUID: "T1", Type: "order-received:O1", Token: "tok", UserID: "U1",
	}, nil).Once()
	orders.On("GetByUUIDAndUser", "O1", "U1").Return(&models.Order{
		UUID: "O1", UserID: "U1", Status: domain.OrderOutForDelivery,
	}, nil).Once()
	orders.On("AdvanceStatus", "O1", domain.OrderDelivered, mock.Anything).Return(true, nil).Once()
	tokens.On("DeleteByTypeAndToken", "order-received:O1", "tok").Return(nil).Once()
	events.On("OrderDelivered", "U1", "O1").Return(nil).Once()

	res, err := svc.ConfirmReceived("tok", "order-received:O1")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, res.Status)
	events.AssertExpectations(t)
}
