package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amellouk/souq/internal/domain"
)

type OfferRepo struct{ db *gorm.DB }

func NewOfferRepo(db *gorm.DB) *OfferRepo { return &OfferRepo{db: db} }

// sortable whitelists the List sort keys; anything else falls back to
// creation order.
var sortable = map[string]string{
	"price":          "offers.price",
	"stock":          "offers.stock",
	"expirationDate": "offers.expiration_date",
	"createdAt":      "offers.created_at",
}

func (r *OfferRepo) Create(ctx context.Context, o *domain.Offer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

func (r *OfferRepo) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("User").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepo) List(ctx context.Context, f domain.OfferFilter) ([]domain.Offer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Offer{}).
		Joins("LEFT JOIN products ON products.id = offers.product_id").
		Joins("LEFT JOIN users ON users.id = offers.user_id")
	if f.PriceMin != nil {
		q = q.Where("offers.price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("offers.price <= ?", *f.PriceMax)
	}
	if f.Keyword != "" {
		like := "%" + strings.TrimSpace(f.Keyword) + "%"
		q = q.Where("LOWER(products.name) LIKE LOWER(?) OR LOWER(users.name) LIKE LOWER(?)", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	col, ok := sortable[f.SortBy]
	if !ok {
		col = "offers.created_at"
	}
	dir := "asc"
	if strings.EqualFold(f.Order, "desc") {
		dir = "desc"
	}
	var list []domain.Offer
	err := q.Select("offers.*").
		Order(col + " " + dir).
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Preload("Product").
		Preload("User").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *OfferRepo) Update(ctx context.Context, o *domain.Offer, promos []domain.Promotion, hist []domain.PriceHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(o).Error; err != nil {
			return err
		}
		for i := range promos {
			if err := tx.Omit(clause.Associations).Save(&promos[i]).Error; err != nil {
				return err
			}
		}
		if len(hist) > 0 {
			if err := tx.Create(&hist).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OfferRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.Promotion{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Offer{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *OfferRepo) PromotionsForOffer(ctx context.Context, offerID string) ([]domain.Promotion, error) {
	var list []domain.Promotion
	if err := r.db.WithContext(ctx).Where("offer_id = ?", offerID).
		Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
