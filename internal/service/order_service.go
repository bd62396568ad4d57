package service

import (
	"context"
	"fmt"

	"cartroyal/internal/domain"
	"cartroyal/pkg/mailer"
)

// OrderService coordinates the order state machine:
// created → paid → out_for_delivery → delivered, forward only. Re-applying a
// step a stage has already passed is tolerated as success so duplicate
// triggers from any channel cannot corrupt the sequence.
type OrderService struct {
	orders   OrderStore
	users    UserStore
	delivery *DeliveryService
	mail     mailer.Sender
	notifs   EventNotifier
	brand    string
}

func NewOrderService(orders OrderStore, users UserStore, delivery *DeliveryService, mail mailer.Sender, notifs EventNotifier, brand string) *OrderService {
	return &OrderService{
		orders:   orders,
		users:    users,
		delivery: delivery,
		mail:     mail,
		notifs:   notifs,
		brand:    brand,
	}
}

// MarkPaid advances created → paid. Returns false without error when the
// order is already paid or later (re-entrant calls from duplicate
// reconciliation) or does not exist.
func (s *OrderService) MarkPaid(orderID string) (bool, error) {
	moved, err := s.orders.AdvanceStatus(orderID, domain.OrderPaid, domain.OrderCreated)
	if err != nil {
		return false, err
	}
	if !moved {
		return false, nil
	}
	if s.notifs != nil {
		if order, err := s.orders.GetByUUID(orderID); err == nil {
			_ = s.notifs.OrderPaid(order.UserID, orderID)
		}
	}
	return true, nil
}

type ShippedOrder struct {
	OrderID          string
	OrderCode        string
	Status           domain.OrderStatus
	ConfirmationLink string
}

// MarkSentForDelivery advances paid → out_for_delivery: mints a fresh
// confirmation token, flips the status, then emails the confirmation link.
// The email is the customer's only handle on the delivery, so unlike admin
// alerts its failure fails the whole operation.
func (s *OrderService) MarkSentForDelivery(ctx context.Context, orderID string) (*ShippedOrder, error) {
	order, err := s.orders.GetByUUID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order", domain.ErrNotFound)
	}
	customer, err := s.users.GetByUUID(order.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}
	if customer.Email == "" {
		return nil, fmt.Errorf("%w: customer email not available", domain.ErrInvalidInput)
	}

	link, err := s.delivery.Issue(order.UUID, order.UserID)
	if err != nil {
		return nil, err
	}

	moved, err := s.orders.AdvanceStatus(order.UUID, domain.OrderOutForDelivery,
		domain.OrderPaid, domain.OrderOutForDelivery)
	if err != nil {
		return nil, err
	}
	if !moved && order.Status == domain.OrderCreated {
		return nil, fmt.Errorf("%w: order has not been paid", domain.ErrInvalidInput)
	}
	// already out_for_delivery or delivered: success no-op on the status,
	// the token was re-issued and the notice goes out again

	err = s.mail.Send(ctx, mailer.Message{
		To:          customer.Email,
		Subject:     "Order Update • Out for Delivery",
		TemplateRef: mailer.TemplateOrderDelivery,
		Data: map[string]interface{}{
			"brandName":   s.brand,
			"name":        customer.FullName(),
			"orderCode":   order.OrderCode,
			"orderId":     order.UUID,
			"confirmLink": link,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("delivery notice: %w", err)
	}

	if s.notifs != nil {
		_ = s.notifs.OrderOutForDelivery(order.UserID, order.UUID, order.OrderCode)
	}

	return &ShippedOrder{
		OrderID:          order.UUID,
		OrderCode:        order.OrderCode,
		Status:           domain.OrderOutForDelivery,
		ConfirmationLink: link,
	}, nil
}

// ConfirmReceived consumes a delivery-confirmation token and flips the order
// to delivered.
func (s *OrderService) ConfirmReceived(tokenValue, rawType string) (*ConfirmResult, error) {
	res, err := s.delivery.Confirm(tokenValue, rawType)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.OrderDelivered(res.UserID, res.OrderID)
	}
	return res, nil
}
