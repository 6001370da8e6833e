package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceKind string

const (
	PriceKindProduct   PriceKind = "PRODUCT"
	PriceKindOffer     PriceKind = "OFFER"
	PriceKindPromotion PriceKind = "PROMOTION"
)

// PriceHistoryEntry is one immutable row of the price audit trail. It
// carries no foreign key on purpose: the trail must survive deletion of its
// subject.
type PriceHistoryEntry struct {
	ID       string          `gorm:"size:36;primaryKey"`
	EntityID string          `gorm:"size:36;index"`
	Kind     PriceKind       `gorm:"type:varchar(10);index"`
	OldPrice decimal.Decimal `gorm:"type:decimal(14,4)"`
	NewPrice decimal.Decimal `gorm:"type:decimal(14,4)"`
	ChangedAt time.Time
	ChangedBy string `gorm:"size:36"`
}

func (PriceHistoryEntry) TableName() string { return "price_history" }

type HistoryFilter struct {
	EntityID string
	Kind     PriceKind
	Page     int
	Limit    int
}
