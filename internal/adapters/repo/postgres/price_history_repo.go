package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/amellouk/souq/internal/domain"
)

// PriceHistoryRepo only ever inserts; the ledger has no update or delete
// path.
type PriceHistoryRepo struct{ db *gorm.DB }

func NewPriceHistoryRepo(db *gorm.DB) *PriceHistoryRepo { return &PriceHistoryRepo{db: db} }

func (r *PriceHistoryRepo) Append(ctx context.Context, e *domain.PriceHistoryEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *PriceHistoryRepo) List(ctx context.Context, f domain.HistoryFilter) ([]domain.PriceHistoryEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.PriceHistoryEntry{}).
		Where("entity_id = ?", f.EntityID)
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []domain.PriceHistoryEntry
	err := q.Order("changed_at asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PriceHistoryRepo) Recent(ctx context.Context, limit int) ([]domain.PriceHistoryEntry, error) {
	var list []domain.PriceHistoryEntry
	err := r.db.WithContext(ctx).Order("changed_at desc").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
