package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `gorm:"size:36;primaryKey"`
	Name        string          `gorm:"size:180;index"`
	Description string          `gorm:"type:text"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock       int             `gorm:"not null;default:0"`
	Available   bool            `gorm:"default:true"`
	CategoryID  *string         `gorm:"size:36;index"`
	Category    *Category
	UserID      string       `gorm:"size:36;index"`
	User        *User
	Attributes  AttributeMap `gorm:"type:jsonb;serializer:json"`
	Photos      []Photo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Photo struct {
	ID        string `gorm:"size:36;primaryKey"`
	ProductID string `gorm:"size:36;index"`
	URL       string `gorm:"size:255"`
	StorageID string `gorm:"size:140"`
	IsCover   bool   `gorm:"default:false"`
	Position  int    `gorm:"default:0"`
	CreatedAt time.Time
}

// PhotoInput is a photo supplied on create/update. Data carries an inline
// payload to push through the storage collaborator; a URL pointing at a
// local path is uploaded too, any other URL is stored as-is.
type PhotoInput struct {
	URL     string
	Data    []byte
	IsCover bool
}

type ProductPatch struct {
	Name           *string
	Description    *string
	BasePrice      *decimal.Decimal
	Stock          *int
	Available      *bool
	CategoryID     *string
	Attributes     AttributeMap
	PhotosToDelete []string
	PhotosToAdd    []PhotoInput
}

// ProductFilter distinguishes an unset Available from an explicit false so
// unavailable products are only excluded when the caller asked for that.
type ProductFilter struct {
	Name       string
	CategoryID string
	Available  *bool
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Page       int
	Limit      int
}
