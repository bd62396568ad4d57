package service

import (
	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/internal/repository"
)

// Narrow persistence interfaces the services depend on. The GORM
// repositories satisfy them; tests substitute mocks.

type TransactionStore interface {
	Create(t *models.Transaction) error
	GetByRef(ref string) (*models.Transaction, error)
	MarkVerified(ref string, f repository.VerifiedFields) (bool, error)
}

type OrderStore interface {
	Create(o *models.Order) error
	GetByUUID(uuid string) (*models.Order, error)
	GetByUUIDAndUser(uuid, userID string) (*models.Order, error)
	AdvanceStatus(uuid string, to domain.OrderStatus, from ...domain.OrderStatus) (bool, error)
}

type TokenStore interface {
	Create(t *models.Token) error
	GetByTypeAndToken(tokenType, token string) (*models.Token, error)
	DeleteByType(tokenType string) error
	DeleteByUserAndType(userID, tokenType string) error
	DeleteByTypeAndToken(tokenType, token string) error
}

type ProductStore interface {
	GetByUUID(uuid string) (*models.Product, error)
}

type UserStore interface {
	Create(u *models.User) error
	GetByUUID(uuid string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(u *models.User) error
}

// EventNotifier receives order-lifecycle events. Implementations persist and
// push; all calls are best-effort from the caller's point of view.
type EventNotifier interface {
	OrderPaid(userID, orderID string) error
	OrderOutForDelivery(userID, orderID, orderCode string) error
	OrderDelivered(userID, orderID string) error
}
