package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

func strPtr(s string) *string                          { return &s }
func boolPtr(b bool) *bool                             { return &b }
func typePtr(t domain.AttributeType) *domain.AttributeType { return &t }

func phonesCategory(t *testing.T, f *fixture) *domain.Category {
	t.Helper()
	cat, err := f.categories.Create(context.Background(), usecase.CreateCategoryInput{
		Name:         "Phones",
		CategoryType: "electronics",
		Attributes: []domain.AttributeDef{
			{Name: "brand", ValueType: domain.AttributeString, Required: true},
			{Name: "screenInches", ValueType: domain.AttributeNumber},
			{Name: "dualSim", ValueType: domain.AttributeBoolean},
			{Name: "releaseDate", ValueType: domain.AttributeDate},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestCreateCategoryWithSchema(t *testing.T) {
	f := newFixture(t)
	cat := phonesCategory(t, f)

	got, err := f.categories.Get(context.Background(), cat.ID)
	require.NoError(t, err)
	require.Len(t, got.Attributes, 4)
	assert.Equal(t, "brand", got.Attributes[0].Name)
	assert.True(t, got.Attributes[0].Required)
	assert.Equal(t, domain.AttributeNumber, got.Attributes[1].ValueType)
	assert.True(t, got.IsActive)
}

func TestCreateCategoryNameLength(t *testing.T) {
	f := newFixture(t)

	_, err := f.categories.Create(context.Background(), usecase.CreateCategoryInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.categories.Create(context.Background(), usecase.CreateCategoryInput{
		Name: "this category name is way past the fifty character ceiling",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateCategoryDuplicateActiveName(t *testing.T) {
	f := newFixture(t)
	phonesCategory(t, f)

	_, err := f.categories.Create(context.Background(), usecase.CreateCategoryInput{Name: "phones"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateCategoryUpsertsAttributes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := phonesCategory(t, f)
	screen := cat.Attributes[1]

	updated, err := f.categories.Update(ctx, cat.ID, domain.CategoryPatch{
		Name: strPtr("Smartphones"),
		Attributes: []domain.AttributeUpsert{
			{ID: screen.ID, Required: boolPtr(true)},
			{Name: strPtr("color"), ValueType: typePtr(domain.AttributeString)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Smartphones", updated.Name)
	require.Len(t, updated.Attributes, 5, "untouched definitions must survive the patch")

	byName := map[string]domain.AttributeDef{}
	for _, a := range updated.Attributes {
		byName[a.Name] = a
	}
	assert.True(t, byName["screenInches"].Required)
	assert.Equal(t, screen.ID, byName["screenInches"].ID, "upsert must keep the attribute identity")
	assert.NotEmpty(t, byName["color"].ID)
}

func TestUpdateCategoryRenameOverActiveName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	phones := phonesCategory(t, f)
	laptops, err := f.categories.Create(ctx, usecase.CreateCategoryInput{Name: "Laptops"})
	require.NoError(t, err)

	_, err = f.categories.Update(ctx, laptops.ID, domain.CategoryPatch{Name: strPtr("phones")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Renaming a category onto its own name (case change only) is fine.
	got, err := f.categories.Update(ctx, phones.ID, domain.CategoryPatch{Name: strPtr("PHONES")})
	require.NoError(t, err)
	assert.Equal(t, "PHONES", got.Name)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.categories.Update(context.Background(), "missing", domain.CategoryPatch{Name: strPtr("Anything")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCategoryCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := phonesCategory(t, f)

	owner := seller("Nadia")
	p, err := f.products.Create(ctx, usecase.CreateProductInput{
		Name:       "Pixel 8",
		CategoryID: &cat.ID,
		Attributes: domain.AttributeMap{"brand": domain.StringValue("Google")},
	}, owner)
	require.NoError(t, err)

	require.NoError(t, f.categories.Delete(ctx, cat.ID))

	assert.EqualValues(t, 0, f.count(t, &domain.Category{}))
	assert.EqualValues(t, 0, f.count(t, &domain.AttributeDef{}))

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID, "orphaned products keep existing without a category link")

	assert.ErrorIs(t, f.categories.Delete(ctx, cat.ID), domain.ErrNotFound)
}

func TestCategoryListHidesInactiveFromNonAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	phonesCategory(t, f)
	_, err := f.categories.Create(ctx, usecase.CreateCategoryInput{Name: "Retired", IsActive: boolPtr(false)})
	require.NoError(t, err)

	anon, total, err := f.categories.List(ctx, domain.CategoryFilter{IncludeInactive: true}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, anon, 1)
	assert.Equal(t, "Phones", anon[0].Name)

	adminIdent := admin("Root")
	all, total, err := f.categories.List(ctx, domain.CategoryFilter{IncludeInactive: true}, &adminIdent)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}

func TestCategoryListNameFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	phonesCategory(t, f)
	_, err := f.categories.Create(ctx, usecase.CreateCategoryInput{Name: "Laptops"})
	require.NoError(t, err)

	got, total, err := f.categories.List(ctx, domain.CategoryFilter{Name: "PHON"}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Phones", got[0].Name)
}

func TestCategoryStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := phonesCategory(t, f)
	_, err := f.categories.Create(ctx, usecase.CreateCategoryInput{Name: "Laptops"})
	require.NoError(t, err)

	_, err = f.products.Create(ctx, usecase.CreateProductInput{
		Name:       "Pixel 8",
		CategoryID: &cat.ID,
		Attributes: domain.AttributeMap{"brand": domain.StringValue("Google")},
	}, seller("Nadia"))
	require.NoError(t, err)

	stats, total, err := f.categories.Statistics(ctx, domain.CategoryFilter{}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, stats, 2)

	byName := map[string]domain.CategoryStats{}
	for _, s := range stats {
		byName[s.Name] = s
	}
	assert.EqualValues(t, 1, byName["Phones"].ProductCount)
	assert.EqualValues(t, 4, byName["Phones"].AttributeCount)
	assert.Contains(t, byName["Phones"].Message, "products are attached")
	assert.EqualValues(t, 0, byName["Laptops"].ProductCount)
	assert.Contains(t, byName["Laptops"].Message, "no products")
}
