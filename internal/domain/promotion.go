package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Promotion struct {
	ID              string          `gorm:"size:36;primaryKey"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2)"`
	// ComputedPrice is derived from the live offer price; it is persisted
	// for display and history only, never used as the source of truth.
	ComputedPrice decimal.Decimal `gorm:"type:decimal(14,4)"`
	StartDate     time.Time
	EndDate       time.Time
	OfferID       string `gorm:"size:36;index"`
	Offer         *Offer
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PromotionView struct {
	ID              string          `json:"id"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	ComputedPrice   decimal.Decimal `json:"computedPrice"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	OfferID         string          `json:"offerId"`
	ProductName     string          `json:"productName"`
	CoverPhotoURL   string          `json:"coverPhotoUrl,omitempty"`
	OwnerName       string          `json:"ownerName"`
}

type PromotionPatch struct {
	DiscountPercent *decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
}
