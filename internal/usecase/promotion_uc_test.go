package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type promoFixture struct {
	*fixture
	owner domain.Identity
	offer *domain.OfferView
}

func newPromoFixture(t *testing.T, offerPrice string) *promoFixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	owner := seller("Nadia")
	p, err := f.products.Create(ctx, usecase.CreateProductInput{
		Name:      "Espresso machine",
		BasePrice: price(offerPrice),
		Photos: []domain.PhotoInput{
			{Data: []byte("front"), IsCover: true},
			{Data: []byte("side")},
		},
	}, owner)
	require.NoError(t, err)
	offer, err := f.offers.Create(ctx, usecase.CreateOfferInput{Price: price(offerPrice), ProductID: p.ID}, owner)
	require.NoError(t, err)
	return &promoFixture{fixture: f, owner: owner, offer: offer}
}

func (pf *promoFixture) promote(t *testing.T, discount string) *domain.PromotionView {
	t.Helper()
	v, err := pf.promotions.Create(context.Background(), usecase.CreatePromotionInput{
		OfferID:         pf.offer.ID,
		DiscountPercent: price(discount),
		StartDate:       time.Now(),
		EndDate:         time.Now().Add(48 * time.Hour),
	}, pf.owner)
	require.NoError(t, err)
	return v
}

func TestCreatePromotionDerivesExactPrice(t *testing.T) {
	pf := newPromoFixture(t, "33.33")
	v := pf.promote(t, "10")

	// 33.33 - 3.333 exactly, no float drift.
	assert.True(t, v.ComputedPrice.Equal(price("29.997")), "computed %s", v.ComputedPrice)
	assert.Equal(t, "Espresso machine", v.ProductName)
	assert.Equal(t, "Nadia", v.OwnerName)
	assert.Equal(t, "https://cdn.test/obj-1", v.CoverPhotoURL)
}

func TestCreatePromotionValidation(t *testing.T) {
	pf := newPromoFixture(t, "100")
	ctx := context.Background()
	now := time.Now()

	_, err := pf.promotions.Create(ctx, usecase.CreatePromotionInput{
		OfferID: pf.offer.ID, DiscountPercent: price("101"), StartDate: now, EndDate: now.Add(time.Hour),
	}, pf.owner)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = pf.promotions.Create(ctx, usecase.CreatePromotionInput{
		OfferID: pf.offer.ID, DiscountPercent: price("-1"), StartDate: now, EndDate: now.Add(time.Hour),
	}, pf.owner)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = pf.promotions.Create(ctx, usecase.CreatePromotionInput{
		OfferID: pf.offer.ID, DiscountPercent: price("10"), StartDate: now, EndDate: now.Add(-time.Hour),
	}, pf.owner)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPromotionOwnershipIsTransitive(t *testing.T) {
	pf := newPromoFixture(t, "100")
	ctx := context.Background()
	now := time.Now()

	_, err := pf.promotions.Create(ctx, usecase.CreatePromotionInput{
		OfferID: pf.offer.ID, DiscountPercent: price("10"), StartDate: now, EndDate: now.Add(time.Hour),
	}, seller("Mallory"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	v := pf.promote(t, "10")

	_, err = pf.promotions.Update(ctx, v.ID, domain.PromotionPatch{DiscountPercent: pricePtr("20")}, seller("Mallory"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, pf.promotions.Delete(ctx, v.ID, admin("Root")), domain.ErrForbidden)

	owns, err := pf.promotions.IsOfferOwner(ctx, pf.offer.ID, pf.owner.UserID)
	require.NoError(t, err)
	assert.True(t, owns)
	owns, err = pf.promotions.IsPromotionOwner(ctx, v.ID, pf.owner.UserID)
	require.NoError(t, err)
	assert.True(t, owns)
	owns, err = pf.promotions.IsPromotionOwner(ctx, v.ID, "somebody-else")
	require.NoError(t, err)
	assert.False(t, owns)
}

func TestUpdatePromotionRecomputesFromLiveOfferPrice(t *testing.T) {
	pf := newPromoFixture(t, "200.00")
	ctx := context.Background()
	v := pf.promote(t, "50")
	require.True(t, v.ComputedPrice.Equal(price("100")))

	_, err := pf.promotions.Update(ctx, v.ID, domain.PromotionPatch{DiscountPercent: pricePtr("25")}, pf.owner)
	require.NoError(t, err)
	got, err := pf.promotions.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, got.ComputedPrice.Equal(price("150")), "computed %s", got.ComputedPrice)

	trail, _, err := pf.pricing.ListHistory(ctx, domain.HistoryFilter{EntityID: v.ID, Kind: domain.PriceKindPromotion})
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.True(t, trail[0].OldPrice.Equal(price("100")))
	assert.True(t, trail[0].NewPrice.Equal(price("150")))

	// Same discount again: nothing moved, nothing recorded.
	_, err = pf.promotions.Update(ctx, v.ID, domain.PromotionPatch{DiscountPercent: pricePtr("25")}, pf.owner)
	require.NoError(t, err)
	trail, _, err = pf.pricing.ListHistory(ctx, domain.HistoryFilter{EntityID: v.ID, Kind: domain.PriceKindPromotion})
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestUpdatePromotionDateWindow(t *testing.T) {
	pf := newPromoFixture(t, "100")
	v := pf.promote(t, "10")

	bad := v.StartDate.Add(-time.Hour)
	_, err := pf.promotions.Update(context.Background(), v.ID, domain.PromotionPatch{EndDate: &bad}, pf.owner)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeletePromotionDetachesOffer(t *testing.T) {
	pf := newPromoFixture(t, "100")
	ctx := context.Background()
	v := pf.promote(t, "10")

	attached, err := pf.offers.Get(ctx, pf.offer.ID)
	require.NoError(t, err)
	require.NotNil(t, attached.PromotionID)
	assert.Equal(t, v.ID, *attached.PromotionID)

	require.NoError(t, pf.promotions.Delete(ctx, v.ID, pf.owner))
	assert.EqualValues(t, 0, pf.count(t, &domain.Promotion{}))

	detached, err := pf.offers.Get(ctx, pf.offer.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.PromotionID)

	_, err = pf.promotions.Get(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
