package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amellouk/souq/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *CommentRepo) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) List(ctx context.Context, f domain.CommentFilter) ([]domain.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Comment{})
	if f.ProductID != "" {
		q = q.Where("product_id = ?", f.ProductID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []domain.Comment
	err := q.Order("created_at asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Preload("User").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *CommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
