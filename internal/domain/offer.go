package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Offer struct {
	ID             string          `gorm:"size:36;primaryKey"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock          int             `gorm:"not null;default:0"`
	ExpirationDate *time.Time
	ProductID      string `gorm:"size:36;index"`
	Product        *Product
	UserID         string `gorm:"size:36;index"`
	User           *User
	PromotionID    *string `gorm:"size:36"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OfferView is the denormalized read shape: product and owner resolved to
// display names.
type OfferView struct {
	ID             string          `json:"id"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	ProductName    string          `json:"productName"`
	OwnerName      string          `json:"ownerName"`
	PromotionID    *string         `json:"promotionId,omitempty"`
}

type OfferPatch struct {
	Price          *decimal.Decimal
	Stock          *int
	ExpirationDate *time.Time
}

type OfferFilter struct {
	Page     int
	Limit    int
	SortBy   string
	Order    string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	// Keyword matches the linked product's name or the owner's display
	// name, case-insensitively.
	Keyword string
}
