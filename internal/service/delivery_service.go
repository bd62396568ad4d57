package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"cartroyal/internal/domain"
)

const deliveryTokenTTL = 30 * 24 * time.Hour

// DeliveryService issues and consumes the out-for-delivery confirmation
// capability. The emailed link works without authentication: holding the
// token is the proof of ownership.
type DeliveryService struct {
	tokens         *TokenService
	orders         OrderStore
	backendBaseURL string
}

func NewDeliveryService(tokens *TokenService, orders OrderStore, backendBaseURL string) *DeliveryService {
	return &DeliveryService{
		tokens:         tokens,
		orders:         orders,
		backendBaseURL: strings.TrimRight(backendBaseURL, "/"),
	}
}

// Issue mints a fresh confirmation token for the order (replacing any
// predecessor) and returns the link to embed in the delivery notice.
func (s *DeliveryService) Issue(orderID, ownerID string) (string, error) {
	purpose := domain.DeliveryConfirmation(orderID)
	tk, err := s.tokens.Issue(purpose, ownerID, deliveryTokenTTL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/order/confirm-received?token=%s&type=%s",
		s.backendBaseURL, tk.Token, url.QueryEscape(purpose.String())), nil
}

type ConfirmResult struct {
	OrderID string
	UserID  string
	Status  domain.OrderStatus
}

// Confirm consumes a confirmation token and flips the order to delivered.
//
// The type string is parsed before any store access; the token owner must
// match the order owner; the token is destroyed on every terminal outcome
// reached past that ownership check, so a second presentation of the same
// pair reports ErrNotFound. Re-confirming an already delivered order is a
// success no-op on the status.
func (s *DeliveryService) Confirm(tokenValue, rawType string) (*ConfirmResult, error) {
	purpose, err := domain.ParseTokenPurpose(rawType)
	if err != nil {
		return nil, err
	}
	if purpose.Kind != domain.KindDeliveryConfirmation {
		return nil, fmt.Errorf("%w: not a delivery confirmation type", domain.ErrInvalidInput)
	}
	tk, err := s.tokens.Lookup(purpose, tokenValue)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByUUIDAndUser(purpose.OrderID, tk.UserID)
	if err != nil {
		_ = s.tokens.Destroy(purpose, tokenValue)
		return nil, domain.ErrNotFound
	}
	if order.Status != domain.OrderDelivered {
		if _, err := s.orders.AdvanceStatus(order.UUID, domain.OrderDelivered,
			domain.OrderPaid, domain.OrderOutForDelivery); err != nil {
			return nil, err
		}
	}
	if err := s.tokens.Destroy(purpose, tokenValue); err != nil {
		return nil, err
	}
	return &ConfirmResult{OrderID: order.UUID, UserID: order.UserID, Status: domain.OrderDelivered}, nil
}
