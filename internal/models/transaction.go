package models

import (
	"time"

	"cartroyal/internal/domain"
)

// Transaction records one gateway charge attempt. Its UUID doubles as the
// UUID of the Order it pays for; Ref is the gateway-external reference and
// the idempotency key for inbound callbacks.
type Transaction struct {
	UUID          string               `gorm:"primaryKey;size:64" json:"uuid"`
	Ref           string               `gorm:"uniqueIndex;size:100;not null" json:"ref"`
	TransactionID string               `gorm:"size:100;index" json:"transaction_id"` // gateway-internal id, set after verification
	Status        domain.PaymentStatus `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	Amount        float64              `json:"amount"`
	Fee           float64              `json:"fee"`
	AmountSettled float64              `json:"amount_settled"`
	Currency      string               `gorm:"size:8" json:"currency"`
	IP            string               `gorm:"size:64" json:"-"`
	Type          string               `gorm:"size:32" json:"type"` // payment channel (card, bank transfer, ...)
	Narration     string               `gorm:"size:255" json:"narration"`
	UserID        string               `gorm:"size:64;not null;index" json:"user_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) IsSettled() bool {
	return t.Status == domain.PaymentSuccessful
}
