package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	UUID               string         `gorm:"primaryKey;size:64" json:"uuid"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	Category           string         `gorm:"size:100;index" json:"category"`
	Quantity           int            `json:"quantity"`
	Price              float64        `json:"price"`
	OldPrice           float64        `json:"old_price"`
	Currency           string         `gorm:"size:8" json:"currency"`
	PercentageDiscount float64        `json:"percentage_discount"`
	Description        string         `gorm:"type:text" json:"description"`
	Thumbnail          string         `gorm:"size:512" json:"thumbnail"`
	DeliveryRegions    string         `gorm:"type:text" json:"delivery_regions"`
	SellerID           string         `gorm:"size:64;index" json:"seller_id"`
	IsArchived         bool           `gorm:"default:false;index" json:"is_archived"`
	ArchivedAt         *time.Time     `json:"archived_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
