package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amellouk/souq/internal/domain"
)

type PromotionRepo struct{ db *gorm.DB }

func NewPromotionRepo(db *gorm.DB) *PromotionRepo { return &PromotionRepo{db: db} }

func (r *PromotionRepo) Create(ctx context.Context, p *domain.Promotion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Offer{}).Where("id = ?", p.OfferID).
			Update("promotion_id", p.ID).Error
	})
}

func (r *PromotionRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Offer").
		Preload("Offer.User").
		Preload("Offer.Product").
		Preload("Offer.Product.Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") })
}

func (r *PromotionRepo) FindByID(ctx context.Context, id string) (*domain.Promotion, error) {
	var p domain.Promotion
	if err := r.preloaded(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepo) List(ctx context.Context) ([]domain.Promotion, error) {
	var list []domain.Promotion
	if err := r.preloaded(ctx).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PromotionRepo) Update(ctx context.Context, p *domain.Promotion, hist *domain.PriceHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return err
		}
		if hist != nil {
			return tx.Create(hist).Error
		}
		return nil
	})
}

func (r *PromotionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Offer{}).Where("promotion_id = ?", id).
			Update("promotion_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Promotion{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
