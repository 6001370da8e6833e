package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

func TestComputePromotionalPrice(t *testing.T) {
	cases := []struct {
		price, percent, want string
	}{
		{"100", "0", "100"},
		{"100", "100", "0"},
		{"100", "25", "75"},
		{"33.33", "10", "29.997"},
		{"19.99", "15", "16.9915"},
		{"0.01", "50", "0.005"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s-%s%%", tc.price, tc.percent), func(t *testing.T) {
			got := usecase.ComputePromotionalPrice(decimal.RequireFromString(tc.price), decimal.RequireFromString(tc.percent))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestHistoryIsAppendOnlyAndOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := seller("Nadia")
	p, err := f.products.Create(ctx, usecase.CreateProductInput{Name: "Chair", BasePrice: price("10")}, owner)
	require.NoError(t, err)

	steps := []string{"12", "15", "11", "18", "14"}
	for _, s := range steps {
		_, err := f.products.Update(ctx, p.ID, domain.ProductPatch{BasePrice: pricePtr(s)}, owner)
		require.NoError(t, err)
	}

	entries, total, err := f.pricing.ListHistory(ctx, domain.HistoryFilter{EntityID: p.ID, Kind: domain.PriceKindProduct, Limit: 100})
	require.NoError(t, err)
	require.EqualValues(t, len(steps), total)

	// Oldest first; every entry's old price is the previous entry's new
	// price, starting at the creation price.
	prev := price("10")
	for i, e := range entries {
		assert.True(t, e.OldPrice.Equal(prev), "entry %d old price %s, want %s", i, e.OldPrice, prev)
		prev = e.NewPrice
	}
	assert.True(t, prev.Equal(price("14")))
}

func TestHistoryPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := seller("Nadia")
	p, err := f.products.Create(ctx, usecase.CreateProductInput{Name: "Chair", BasePrice: price("0")}, owner)
	require.NoError(t, err)

	for i := 1; i <= 7; i++ {
		_, err := f.products.Update(ctx, p.ID, domain.ProductPatch{BasePrice: pricePtr(fmt.Sprintf("%d", i))}, owner)
		require.NoError(t, err)
	}

	page2, total, err := f.pricing.ListHistory(ctx, domain.HistoryFilter{EntityID: p.ID, Kind: domain.PriceKindProduct, Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, page2, 3)
	assert.True(t, page2[0].NewPrice.Equal(price("4")))
	assert.True(t, page2[2].NewPrice.Equal(price("6")))
}

func TestRecentHistorySpansEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := seller("Nadia")

	chair, err := f.products.Create(ctx, usecase.CreateProductInput{Name: "Chair", BasePrice: price("10")}, owner)
	require.NoError(t, err)
	_, err = f.products.Update(ctx, chair.ID, domain.ProductPatch{BasePrice: pricePtr("12")}, owner)
	require.NoError(t, err)

	offer, err := f.offers.Create(ctx, usecase.CreateOfferInput{Price: price("9"), ProductID: chair.ID}, owner)
	require.NoError(t, err)
	_, err = f.offers.Update(ctx, offer.ID, domain.OfferPatch{Price: pricePtr("8")}, owner)
	require.NoError(t, err)

	recent, err := f.pricing.RecentHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, domain.PriceKindOffer, recent[0].Kind, "newest first")
	assert.Equal(t, domain.PriceKindProduct, recent[1].Kind)

	capped, err := f.pricing.RecentHistory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}
