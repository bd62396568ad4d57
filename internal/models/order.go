package models

import (
	"encoding/json"
	"fmt"
	"time"

	"cartroyal/internal/domain"
)

type Order struct {
	UUID      string             `gorm:"primaryKey;size:64" json:"uuid"`
	UserID    string             `gorm:"size:64;not null;index" json:"user_id"`
	OrderCode string             `gorm:"size:32;index" json:"order_code"`
	Status    domain.OrderStatus `gorm:"size:20;not null;index;default:'created'" json:"status"`
	OrderData string             `gorm:"type:text" json:"order_data"` // JSON array of LineItem
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type LineItem struct {
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image,omitempty"`
	Quantity     int     `json:"quantity"`
	SinglePrice  float64 `json:"single_price,omitempty"`
	TotalPrice   float64 `json:"total_price,omitempty"`
}

// UnitPrice derives the per-item price when single_price was not captured.
func (li LineItem) UnitPrice() float64 {
	if li.SinglePrice > 0 {
		return li.SinglePrice
	}
	if li.Quantity > 0 {
		return li.TotalPrice / float64(li.Quantity)
	}
	return li.TotalPrice
}

// LineItems deserializes OrderData. A corrupt payload is a data-integrity
// error, never an empty list.
func (o *Order) LineItems() ([]LineItem, error) {
	if o.OrderData == "" {
		return nil, fmt.Errorf("order %s has no order_data", o.UUID)
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(o.OrderData), &items); err != nil {
		return nil, fmt.Errorf("order %s order_data corrupt: %w", o.UUID, err)
	}
	return items, nil
}

func (o *Order) SetLineItems(items []LineItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.OrderData = string(b)
	return nil
}
