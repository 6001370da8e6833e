package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
)

// PromotionUC derives ownership transitively: the caller must own the offer
// the promotion hangs off.
type PromotionUC struct {
	Promotions domain.PromotionRepo
	Offers     domain.OfferRepo
	Notifier   domain.Notifier
}

type CreatePromotionInput struct {
	OfferID         string
	DiscountPercent decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
}

func validDiscount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}

func (uc *PromotionUC) Create(ctx context.Context, in CreatePromotionInput, caller domain.Identity) (*domain.PromotionView, error) {
	if !validDiscount(in.DiscountPercent) {
		return nil, domain.Validationf("discount percent must be between 0 and 100")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, domain.Validationf("promotion end date precedes its start date")
	}
	offer, err := uc.Offers.FindByID(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	p := &domain.Promotion{
		ID:              uuid.NewString(),
		DiscountPercent: in.DiscountPercent,
		ComputedPrice:   ComputePromotionalPrice(offer.Price, in.DiscountPercent),
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		OfferID:         offer.ID,
	}
	if err := uc.Promotions.Create(ctx, p); err != nil {
		return nil, domain.Internal("create promotion", err)
	}
	uc.notify(ctx, "promotion.created", p.ID, caller.UserID)
	return uc.Get(ctx, p.ID)
}

func (uc *PromotionUC) Get(ctx context.Context, id string) (*domain.PromotionView, error) {
	p, err := uc.Promotions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := promotionView(p)
	return &v, nil
}

func (uc *PromotionUC) List(ctx context.Context) ([]domain.PromotionView, error) {
	promos, err := uc.Promotions.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.PromotionView, 0, len(promos))
	for i := range promos {
		views = append(views, promotionView(&promos[i]))
	}
	return views, nil
}

// Update recomputes the derived price from the current offer price, never
// from a cached one, and records the move in the price ledger.
func (uc *PromotionUC) Update(ctx context.Context, id string, patch domain.PromotionPatch, caller domain.Identity) (*domain.PromotionView, error) {
	p, err := uc.Promotions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	offer, err := uc.Offers.FindByID(ctx, p.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}

	if patch.DiscountPercent != nil {
		if !validDiscount(*patch.DiscountPercent) {
			return nil, domain.Validationf("discount percent must be between 0 and 100")
		}
		p.DiscountPercent = *patch.DiscountPercent
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, domain.Validationf("promotion end date precedes its start date")
	}

	oldComputed := p.ComputedPrice
	p.ComputedPrice = ComputePromotionalPrice(offer.Price, p.DiscountPercent)
	var hist *domain.PriceHistoryEntry
	if priceChanged(oldComputed, p.ComputedPrice) {
		hist = newTransition(p.ID, domain.PriceKindPromotion, oldComputed, p.ComputedPrice, caller.UserID)
	}

	if err := uc.Promotions.Update(ctx, p, hist); err != nil {
		return nil, domain.Internal("update promotion", err)
	}
	uc.notify(ctx, "promotion.updated", p.ID, caller.UserID)
	return uc.Get(ctx, id)
}

func (uc *PromotionUC) Delete(ctx context.Context, id string, caller domain.Identity) error {
	owns, err := uc.IsPromotionOwner(ctx, id, caller.UserID)
	if err != nil {
		return err
	}
	if !owns {
		return domain.ErrForbidden
	}
	if err := uc.Promotions.Delete(ctx, id); err != nil {
		return domain.Internal("delete promotion", err)
	}
	uc.notify(ctx, "promotion.deleted", id, caller.UserID)
	return nil
}

// IsOfferOwner is a pure lookup with no side effects.
func (uc *PromotionUC) IsOfferOwner(ctx context.Context, offerID, userID string) (bool, error) {
	offer, err := uc.Offers.FindByID(ctx, offerID)
	if err != nil {
		return false, err
	}
	return offer.UserID == userID, nil
}

// IsPromotionOwner resolves ownership through the promotion's offer.
func (uc *PromotionUC) IsPromotionOwner(ctx context.Context, promotionID, userID string) (bool, error) {
	p, err := uc.Promotions.FindByID(ctx, promotionID)
	if err != nil {
		return false, err
	}
	return uc.IsOfferOwner(ctx, p.OfferID, userID)
}

func (uc *PromotionUC) notify(ctx context.Context, kind, entityID, userID string) {
	if uc.Notifier == nil {
		return
	}
	uc.Notifier.Notify(ctx, domain.Event{Kind: kind, EntityID: entityID, UserID: userID, At: time.Now()})
}

func promotionView(p *domain.Promotion) domain.PromotionView {
	v := domain.PromotionView{
		ID:              p.ID,
		DiscountPercent: p.DiscountPercent,
		ComputedPrice:   p.ComputedPrice,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		OfferID:         p.OfferID,
	}
	if p.Offer == nil {
		return v
	}
	if p.Offer.User != nil {
		v.OwnerName = p.Offer.User.Name
	}
	if p.Offer.Product != nil {
		v.ProductName = p.Offer.Product.Name
		if len(p.Offer.Product.Photos) > 0 {
			v.CoverPhotoURL = p.Offer.Product.Photos[0].URL
		}
	}
	return v
}
