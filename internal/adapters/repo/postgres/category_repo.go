package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/amellouk/souq/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attributes").Create(c).Error; err != nil {
			return err
		}
		if len(c.Attributes) == 0 {
			return nil
		}
		return tx.Create(&c.Attributes).Error
	})
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category, attrs []domain.AttributeDef) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attributes").Save(c).Error; err != nil {
			return err
		}
		if len(attrs) == 0 {
			return nil
		}
		// Save upserts by primary key: existing rows updated, new ones
		// inserted. Rows absent from the patch stay untouched.
		return tx.Save(&attrs).Error
	})
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Category
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		// Referencing products keep existing but lose the category link.
		if err := tx.Model(&domain.Product{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&domain.AttributeDef{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Category{}, "id = ?", id).Error
	})
}

func (r *CategoryRepo) filtered(ctx context.Context, f domain.CategoryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Category{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+strings.TrimSpace(f.Name)+"%")
	}
	return q
}

func (r *CategoryRepo) List(ctx context.Context, f domain.CategoryFilter) ([]domain.Category, int64, error) {
	q := r.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []domain.Category
	err := q.Order("name asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *CategoryRepo) Stats(ctx context.Context, f domain.CategoryFilter) ([]domain.CategoryStats, int64, error) {
	q := r.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var stats []domain.CategoryStats
	err := q.Select(`categories.id, categories.name, categories.created_at,
		(SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count,
		(SELECT COUNT(*) FROM attribute_defs WHERE attribute_defs.category_id = categories.id) AS attribute_count`).
		Order("categories.name asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Scan(&stats).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range stats {
		if stats[i].ProductCount > 0 {
			stats[i].Message = "products are attached to this category"
		} else {
			stats[i].Message = "no products attached to this category yet"
		}
	}
	return stats, total, nil
}

func (r *CategoryRepo) ActiveNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.Category{}).
		Where("LOWER(name) = LOWER(?) AND is_active = ?", strings.TrimSpace(name), true)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
