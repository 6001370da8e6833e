package domain

import "time"

// Comment is a user remark attached to a product. The author name is
// denormalized into views through the User association.
type Comment struct {
	ID        string `gorm:"size:36;primaryKey"`
	Content   string `gorm:"type:text;not null"`
	ProductID string `gorm:"size:36;index"`
	UserID    string `gorm:"size:36;index"`
	User      *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CommentView struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	ProductID  string    `json:"productId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentFilter struct {
	ProductID string
	Page      int
	Limit     int
}
