package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
)

// OfferUC owns the offer ledger. Ownership here is offer-scoped: only the
// creating user may mutate an offer, administrators get no override.
type OfferUC struct {
	Offers   domain.OfferRepo
	Products domain.ProductRepo
	Users    domain.UserRepo
	Notifier domain.Notifier
}

type CreateOfferInput struct {
	Price          decimal.Decimal
	Stock          int
	ExpirationDate *time.Time
	ProductID      string
}

func (uc *OfferUC) Create(ctx context.Context, in CreateOfferInput, owner domain.Identity) (*domain.OfferView, error) {
	if !in.Price.IsPositive() {
		return nil, domain.Validationf("offer price must be greater than zero")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("stock must not be negative")
	}
	if _, err := uc.Products.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.Users.Ensure(ctx, domain.User{ID: owner.UserID, Name: owner.Name, Role: owner.Role}); err != nil {
		return nil, domain.Internal("create offer", err)
	}
	o := &domain.Offer{
		ID:             uuid.NewString(),
		Price:          in.Price,
		Stock:          in.Stock,
		ExpirationDate: in.ExpirationDate,
		ProductID:      in.ProductID,
		UserID:         owner.UserID,
	}
	if err := uc.Offers.Create(ctx, o); err != nil {
		return nil, domain.Internal("create offer", err)
	}
	uc.notify(ctx, "offer.created", o.ID, owner.UserID)
	return uc.Get(ctx, o.ID)
}

func (uc *OfferUC) Get(ctx context.Context, id string) (*domain.OfferView, error) {
	o, err := uc.Offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := offerView(o)
	return &v, nil
}

func (uc *OfferUC) List(ctx context.Context, f domain.OfferFilter) ([]domain.OfferView, int64, error) {
	normalizePage(&f.Page, &f.Limit)
	offers, total, err := uc.Offers.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views := make([]domain.OfferView, 0, len(offers))
	for i := range offers {
		views = append(views, offerView(&offers[i]))
	}
	return views, total, nil
}

// Update applies the patch and, when the price moved, appends the OFFER
// transition and recomputes every promotion hanging off this offer in the
// same transaction, each recomputation appending its own PROMOTION
// transition.
func (uc *OfferUC) Update(ctx context.Context, id string, patch domain.OfferPatch, caller domain.Identity) (*domain.OfferView, error) {
	o, err := uc.Offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}

	oldPrice := o.Price
	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, domain.Validationf("offer price must be greater than zero")
		}
		o.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, domain.Validationf("stock must not be negative")
		}
		o.Stock = *patch.Stock
	}
	if patch.ExpirationDate != nil {
		o.ExpirationDate = patch.ExpirationDate
	}

	var entries []domain.PriceHistoryEntry
	var promos []domain.Promotion
	if priceChanged(oldPrice, o.Price) {
		entries = append(entries, *newTransition(o.ID, domain.PriceKindOffer, oldPrice, o.Price, caller.UserID))
		attached, err := uc.Offers.PromotionsForOffer(ctx, o.ID)
		if err != nil {
			return nil, domain.Internal("load promotions", err)
		}
		for _, promo := range attached {
			oldComputed := promo.ComputedPrice
			promo.ComputedPrice = ComputePromotionalPrice(o.Price, promo.DiscountPercent)
			if priceChanged(oldComputed, promo.ComputedPrice) {
				entries = append(entries, *newTransition(promo.ID, domain.PriceKindPromotion, oldComputed, promo.ComputedPrice, caller.UserID))
			}
			promos = append(promos, promo)
		}
	}

	if err := uc.Offers.Update(ctx, o, promos, entries); err != nil {
		return nil, domain.Internal("update offer", err)
	}
	uc.notify(ctx, "offer.updated", o.ID, caller.UserID)
	return uc.Get(ctx, id)
}

func (uc *OfferUC) Delete(ctx context.Context, id string, caller domain.Identity) error {
	o, err := uc.Offers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o.UserID != caller.UserID {
		return domain.ErrForbidden
	}
	if err := uc.Offers.Delete(ctx, id); err != nil {
		return domain.Internal("delete offer", err)
	}
	uc.notify(ctx, "offer.deleted", id, caller.UserID)
	return nil
}

func (uc *OfferUC) notify(ctx context.Context, kind, entityID, userID string) {
	if uc.Notifier == nil {
		return
	}
	uc.Notifier.Notify(ctx, domain.Event{Kind: kind, EntityID: entityID, UserID: userID, At: time.Now()})
}

func offerView(o *domain.Offer) domain.OfferView {
	v := domain.OfferView{
		ID:             o.ID,
		Price:          o.Price,
		Stock:          o.Stock,
		ExpirationDate: o.ExpirationDate,
		PromotionID:    o.PromotionID,
	}
	if o.Product != nil {
		v.ProductName = o.Product.Name
	}
	if o.User != nil {
		v.OwnerName = o.User.Name
	}
	return v
}
