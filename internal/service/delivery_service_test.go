package service

import (
	"errors"
	"testing"
	"time"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func deliveryFixture() (*mockTokenStore, *mockOrderStore, *DeliveryService) {
	tokens := new(mockTokenStore)
	orders := new(mockOrderStore)
	svc := NewDeliveryService(NewTokenService(tokens), orders, "https://api.shop.example.com/")
	return tokens, orders, svc
}

func TestIssueBuildsConfirmationLink(t *testing.T) {
	tokens, _, svc := deliveryFixture()

	tokens.On("DeleteByType", "order-received:O1").Return(nil).Once()
	var minted string
	tokens.On("Create", mock.MatchedBy(func(tk *models.Token) bool {
		minted = tk.Token
		return tk.Type == "order-received:O1" && tk.UserID == "U1"
	})).Return(nil).Once()

	link, err := svc.Issue("O1", "U1")

	assert.NoError(t, err)
	assert.Equal(t,
		"https://api.shop.example.com/api/v1/order/confirm-received?token="+minted+"&type=order-received%3AO1",
		link)
	tokens.AssertExpectations(t)
}

func TestConfirmRejectsBogusTypeWithoutStoreAccess(t *testing.T) {
	tokens, orders, svc := deliveryFixture()

	for _, raw := range []string{"", "order-received", "order-received:", "giftcard:O1", "reset"} {
		_, err := svc.Confirm("tok", raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "type %q", raw)
	}
	tokens.AssertNotCalled(t, "GetByTypeAndToken", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "GetByUUIDAndUser", mock.Anything, mock.Anything)
}

func TestConfirmUnknownTokenIsNotFound(t *testing.T) {
	tokens, orders, svc := deliveryFixture()

	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(nil, errors.New("record not found"))

	_, err := svc.Confirm("tok", "order-received:O1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	orders.AssertNotCalled(t, "GetByUUIDAndUser", mock.Anything, mock.Anything)
}

func TestConfirmDeliversOrderAndConsumesToken(t *testing.T) {
	tokens, orders, svc := deliveryFixture()

	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(&models.Token{
		UUID: "T1", Type: "order-received:O1", Token: "tok", UserID: "U1",
	}, nil).Once()
	orders.On("GetByUUIDAndUser", "O1", "U1").Return(&models.Order{
		UUID: "O1", UserID: "U1", Status: domain.OrderOutForDelivery,
	}, nil).Once()
	orders.On("AdvanceStatus", "O1", domain.OrderDelivered,
		[]domain.OrderStatus{domain.OrderPaid, domain.OrderOutForDelivery}).Return(true, nil).Once()
	tokens.On("DeleteByTypeAndToken", "order-received:O1", "tok").Return(nil).Once()

	res, err := svc.Confirm("tok", "order-received:O1")

	assert.NoError(t, err)
	assert.Equal(t, "O1", res.OrderID)
	assert.Equal(t, domain.OrderDelivered, res.Status)
	tokens.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestConfirmSecondPresentationIsNotFound(t *testing.T) {
	tokens, orders, svc := deliveryFixture()

	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(&models.Token{
		UUID: "T1", Type: "order-received:O1", Token: "tok", UserID: "U1",
	}, nil).Once()
	orders.On("GetByUUIDAndUser", "O1", "U1").Return(&models.Order{
		UUID: "O1", UserID: "U1", Status: domain.OrderOutForDelivery,
	}, nil).Once()
	orders.On("AdvanceStatus", "O1", domain.OrderDelivered, mock.Anything).Return(true, nil).Once()
	tokens.On("DeleteByTypeAndToken", "order-received:O1", "tok").Return(nil).Once()

	_, err := svc.Confirm("tok", "order-received:O1")
	assert.NoError(t, err)

	// the consume deleted the row
	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(nil, errors.New("record not found"))
	_, err = svc.Confirm("tok", "order-received:O1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmOwnershipMismatchBurnsToken(t *testing.T) {
	tokens, orders, svc := deliveryFixture()

	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(&models.Token{
		UUID: "T1", Type: "order-received:O1", Token: "tok", UserID: "U2",
	}, nil).Once()
	orders.On("GetByUUIDAndUser", "O1", "U2").Return(nil, errors.New("record not found")).Once()
	tokens.On("DeleteByTypeAndToken", "order-received:O1", "tok").Return(nil).Once()

	_, err := svc.Confirm("tok", "order-received:O1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	orders.AssertNotCalled(t, "AdvanceStatus", mock.Anything, mock.Anything, mock.Anything)
	tokens.AssertExpectations(t)
}

func TestConfirmAlreadyDeliveredIsNoOpSuccess(t *testing.T) {
	tokens, orders, svc := deliveryFixture()

	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(&models.Token{
		UUID: "T1", Type: "order-received:O1", Token: "tok", UserID: "U1",
	}, nil).Once()
	orders.On("GetByUUIDAndUser", "O1", "U1").Return(&models.Order{
		UUID: "O1", UserID: "U1", Status: domain.OrderDelivered,
	}, nil).Once()
	tokens.On("DeleteByTypeAndToken", "order-received:O1", "tok").Return(nil).Once()

	res, err := svc.Confirm("tok", "order-received:O1")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, res.Status)
	orders.AssertNotCalled(t, "AdvanceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmExpiredTokenReportsExpired(t *testing.T) {
	tokens, orders, _ := deliveryFixture()
	tokenSvc := NewTokenService(tokens)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tokenSvc.now = fixedClock(now)
	svc := NewDeliveryService(tokenSvc, orders, "https://api.shop.example.com")

	past := now.Add(-time.Hour)
	tokens.On("GetByTypeAndToken", "order-received:O1", "tok").Return(&models.Token{
		UUID: "T1", Type: "order-received:O1", Token: "tok", UserID: "U1", ExpiresOn: &past,
	}, nil).Once()
	tokens.On("DeleteByTypeAndToken", "order-received:O1", "tok").Return(nil).Once()

	_, err := svc.Confirm("tok", "order-received:O1")

	assert.ErrorIs(t, err, domain.ErrExpired)
	orders.AssertNotCalled(t, "GetByUUIDAndUser", mock.Anything, mock.Anything)
}
