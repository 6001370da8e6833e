package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/amellouk/souq/internal/domain"
)

type CategoryUC struct {
	Categories domain.CategoryRepo
}

type CreateCategoryInput struct {
	Name         string
	IsActive     *bool
	CategoryType string
	Attributes   []domain.AttributeDef
}

func validCategoryName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 50
}

func (uc *CategoryUC) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	if !validCategoryName(in.Name) {
		return nil, domain.Validationf("category name must be between 2 and 50 characters")
	}
	exists, err := uc.Categories.ActiveNameExists(ctx, in.Name, "")
	if err != nil {
		return nil, domain.Internal("check category name", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: an active category named %q already exists", domain.ErrConflict, in.Name)
	}
	c := &domain.Category{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		IsActive:     true,
		CategoryType: in.CategoryType,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	for i := range in.Attributes {
		attr := in.Attributes[i]
		if !attr.ValueType.Valid() {
			return nil, domain.Validationf("attribute %s has unknown value type %q", attr.Name, attr.ValueType)
		}
		attr.ID = uuid.NewString()
		attr.CategoryID = c.ID
		attr.Position = i
		c.Attributes = append(c.Attributes, attr)
	}
	if err := uc.Categories.Create(ctx, c); err != nil {
		return nil, domain.Internal("create category", err)
	}
	return c, nil
}

func (uc *CategoryUC) Get(ctx context.Context, id string) (*domain.Category, error) {
	return uc.Categories.FindByID(ctx, id)
}

func (uc *CategoryUC) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	cat, err := uc.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if !validCategoryName(*patch.Name) {
			return nil, domain.Validationf("category name must be between 2 and 50 characters")
		}
		exists, err := uc.Categories.ActiveNameExists(ctx, *patch.Name, id)
		if err != nil {
			return nil, domain.Internal("check category name", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: an active category named %q already exists", domain.ErrConflict, *patch.Name)
		}
		cat.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.IsActive != nil {
		cat.IsActive = *patch.IsActive
	}
	if patch.CategoryType != nil {
		cat.CategoryType = *patch.CategoryType
	}

	// Upsert by ID: patch existing definitions in place, append new ones.
	// Definitions absent from the patch are left untouched, never deleted.
	existing := make(map[string]*domain.AttributeDef, len(cat.Attributes))
	for i := range cat.Attributes {
		existing[cat.Attributes[i].ID] = &cat.Attributes[i]
	}
	var upserts []domain.AttributeDef
	position := len(cat.Attributes)
	for _, up := range patch.Attributes {
		if up.ID != "" {
			def, ok := existing[up.ID]
			if !ok {
				return nil, domain.Validationf("attribute %s does not belong to category %s", up.ID, id)
			}
			if up.Name != nil {
				def.Name = *up.Name
			}
			if up.ValueType != nil {
				if !up.ValueType.Valid() {
					return nil, domain.Validationf("unknown value type %q", *up.ValueType)
				}
				def.ValueType = *up.ValueType
			}
			if up.Required != nil {
				def.Required = *up.Required
			}
			upserts = append(upserts, *def)
			continue
		}
		if up.Name == nil || up.ValueType == nil {
			return nil, domain.Validationf("new attribute needs a name and a value type")
		}
		if !up.ValueType.Valid() {
			return nil, domain.Validationf("unknown value type %q", *up.ValueType)
		}
		def := domain.AttributeDef{
			ID:         uuid.NewString(),
			CategoryID: cat.ID,
			Name:       *up.Name,
			ValueType:  *up.ValueType,
			Position:   position,
		}
		position++
		if up.Required != nil {
			def.Required = *up.Required
		}
		cat.Attributes = append(cat.Attributes, def)
		upserts = append(upserts, def)
	}

	if err := uc.Categories.Update(ctx, cat, upserts); err != nil {
		return nil, domain.Internal("update category", err)
	}
	return uc.Categories.FindByID(ctx, id)
}

func (uc *CategoryUC) Delete(ctx context.Context, id string) error {
	return uc.Categories.Delete(ctx, id)
}

// List hides inactive categories from everyone but administrators.
func (uc *CategoryUC) List(ctx context.Context, f domain.CategoryFilter, caller *domain.Identity) ([]domain.Category, int64, error) {
	if caller == nil || !caller.IsAdmin() {
		f.IncludeInactive = false
	}
	normalizePage(&f.Page, &f.Limit)
	return uc.Categories.List(ctx, f)
}

func (uc *CategoryUC) Statistics(ctx context.Context, f domain.CategoryFilter, caller *domain.Identity) ([]domain.CategoryStats, int64, error) {
	if caller == nil || !caller.IsAdmin() {
		f.IncludeInactive = false
	}
	normalizePage(&f.Page, &f.Limit)
	return uc.Categories.Stats(ctx, f)
}

func normalizePage(page, limit *int) {
	if *page <= 0 {
		*page = 1
	}
	if *limit <= 0 {
		*limit = 10
	}
}
