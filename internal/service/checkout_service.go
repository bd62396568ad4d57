package service

import (
	"context"
	"fmt"
	"strings"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/pkg/gateway"

	"github.com/google/uuid"
)

type CheckoutConfig struct {
	Currency    string
	CallbackURL string // the webhook callback the gateway redirects back to
}

// CheckoutService opens a purchase: one Order plus its pending Transaction
// (sharing the same uuid) and a hosted gateway checkout link. Reconciliation
// picks the pair up again when the gateway calls back with the tx ref.
type CheckoutService struct {
	orders       OrderStore
	transactions TransactionStore
	users        UserStore
	products     ProductStore
	gateway      gateway.Initiator
	cfg          CheckoutConfig
}

func NewCheckoutService(orders OrderStore, transactions TransactionStore, users UserStore, products ProductStore, g gateway.Initiator, cfg CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		orders:       orders,
		transactions: transactions,
		users:        users,
		products:     products,
		gateway:      g,
		cfg:          cfg,
	}
}

type CheckoutItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CheckoutResult struct {
	OrderID     string  `json:"order_id"`
	OrderCode   string  `json:"order_code"`
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PaymentLink string  `json:"payment_link"`
}

func (s *CheckoutService) Checkout(ctx context.Context, userID string, items []CheckoutItem) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", domain.ErrInvalidInput)
	}
	customer, err := s.users.GetByUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}

	var lineItems []models.LineItem
	var total float64
	for _, item := range items {
		p, err := s.products.GetByUUID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, item.ProductID)
		}
		if p.IsArchived {
			return nil, fmt.Errorf("%w: product %s is no longer available", domain.ErrInvalidInput, p.Name)
		}
		lineTotal := p.Price * float64(item.Quantity)
		lineItems = append(lineItems, models.LineItem{
			ProductName:  p.Name,
			ProductImage: p.Thumbnail,
			Quantity:     item.Quantity,
			SinglePrice:  p.Price,
			TotalPrice:   lineTotal,
		})
		total += lineTotal
	}

	orderID := uuid.NewString()
	orderCode := "CR-" + strings.ToUpper(randomToken(8))
	ref := "cr-" + randomToken(20)

	order := &models.Order{
		UUID:      orderID,
		UserID:    userID,
		OrderCode: orderCode,
		Status:    domain.OrderCreated,
	}
	if err := order.SetLineItems(lineItems); err != nil {
		return nil, err
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	// the transaction uuid doubles as the order uuid
	tx := &models.Transaction{
		UUID:      orderID,
		Ref:       ref,
		Status:    domain.PaymentPending,
		Amount:    total,
		Currency:  s.cfg.Currency,
		UserID:    userID,
		Narration: "Cart Royal order " + orderCode,
	}
	if err := s.transactions.Create(tx); err != nil {
		return nil, err
	}

	link, err := s.gateway.InitiatePayment(ctx, gateway.PaymentRequest{
		TxRef:         ref,
		Amount:        total,
		Currency:      s.cfg.Currency,
		RedirectURL:   s.cfg.CallbackURL,
		CustomerEmail: customer.Email,
		CustomerName:  customer.FullName(),
		CustomerPhone: customer.Phone,
		Narration:     tx.Narration,
	})
	if err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}

	return &CheckoutResult{
		OrderID:     orderID,
		OrderCode:   orderCode,
		Reference:   ref,
		Amount:      total,
		Currency:    s.cfg.Currency,
		PaymentLink: link,
	}, nil
}
