package domain

import "time"

type Category struct {
	ID           string `gorm:"size:36;primaryKey"`
	Name         string `gorm:"size:50;index"`
	IsActive     bool   `gorm:"default:true;index"`
	CategoryType string `gorm:"size:100"`
	Attributes   []AttributeDef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AttributeDef struct {
	ID         string        `gorm:"size:36;primaryKey"`
	CategoryID string        `gorm:"size:36;index"`
	Name       string        `gorm:"size:100"`
	ValueType  AttributeType `gorm:"type:varchar(10);not null"`
	Required   bool          `gorm:"default:false"`
	Position   int           `gorm:"default:0"`
}

// AttributeUpsert patches one attribute definition. An empty ID inserts a
// new definition; a set ID updates the existing one in place.
type AttributeUpsert struct {
	ID        string
	Name      *string
	ValueType *AttributeType
	Required  *bool
}

type CategoryPatch struct {
	Name         *string
	IsActive     *bool
	CategoryType *string
	Attributes   []AttributeUpsert
}

type CategoryFilter struct {
	Name            string
	IncludeInactive bool
	Page            int
	Limit           int
}

type CategoryStats struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	ProductCount   int64     `json:"productCount"`
	AttributeCount int64     `json:"attributeCount"`
	Message        string    `json:"message"`
}
