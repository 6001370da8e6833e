package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amellouk/souq/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) CreateWithPhotos(ctx context.Context, p *domain.Product, photos []domain.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		if len(photos) == 0 {
			return nil
		}
		// One batched insert so a failure can never leave a partial set.
		return tx.Create(&photos).Error
	})
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category.Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+strings.TrimSpace(f.Name)+"%")
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}
	if f.PriceMin != nil {
		q = q.Where("base_price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("base_price <= ?", *f.PriceMax)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []domain.Product
	err := q.Order("name asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Preload("User").
		Preload("Category").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) ApplyUpdate(ctx context.Context, p *domain.Product, add []domain.Photo, removeIDs []string, hist *domain.PriceHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(removeIDs) > 0 {
			if err := tx.Where("id IN ? AND product_id = ?", removeIDs, p.ID).
				Delete(&domain.Photo{}).Error; err != nil {
				return err
			}
		}
		if len(add) > 0 {
			if err := tx.Create(&add).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return err
		}
		if hist != nil {
			return tx.Create(hist).Error
		}
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
