package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputePromotionalPrice applies a percentage discount to the live offer
// price: price - price*percent/100. Pure; called wherever the derived value
// is needed so it is never read from a stale cache.
func ComputePromotionalPrice(offerPrice, discountPercent decimal.Decimal) decimal.Decimal {
	return offerPrice.Sub(offerPrice.Mul(discountPercent).Div(hundred))
}

// priceChanged reports whether a patched price actually differs from the
// stored one; equal values must not produce a history entry.
func priceChanged(old, new decimal.Decimal) bool {
	return !old.Equal(new)
}

func newTransition(entityID string, kind domain.PriceKind, old, new decimal.Decimal, changedBy string) *domain.PriceHistoryEntry {
	return &domain.PriceHistoryEntry{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		Kind:      kind,
		OldPrice:  old,
		NewPrice:  new,
		ChangedAt: time.Now(),
		ChangedBy: changedBy,
	}
}

// PricingUC exposes the read side of the append-only price ledger. Writes
// happen inside the same transaction as the price change they document, via
// the owning repo.
type PricingUC struct {
	History domain.PriceHistoryRepo
}

func (uc *PricingUC) ListHistory(ctx context.Context, f domain.HistoryFilter) ([]domain.PriceHistoryEntry, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	return uc.History.List(ctx, f)
}

func (uc *PricingUC) RecentHistory(ctx context.Context, limit int) ([]domain.PriceHistoryEntry, error) {
	if limit <= 0 {
		limit = 1000
	}
	return uc.History.Recent(ctx, limit)
}
