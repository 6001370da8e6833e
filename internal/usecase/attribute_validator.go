package usecase

import (
	"context"

	"github.com/amellouk/souq/internal/domain"
)

// AttributeValidator checks a product's dynamic attribute map against the
// category schema. Read-then-check only, no side effects.
type AttributeValidator struct {
	Categories domain.CategoryRepo
}

// Validate succeeds trivially when no category is set. Otherwise every
// required attribute must be present, every present value must match its
// declared type, and keys outside the schema are rejected.
func (v *AttributeValidator) Validate(ctx context.Context, categoryID *string, values domain.AttributeMap) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	cat, err := v.Categories.FindByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	defs := make(map[string]domain.AttributeDef, len(cat.Attributes))
	for _, def := range cat.Attributes {
		defs[def.Name] = def
		val, ok := values[def.Name]
		if !ok {
			if def.Required {
				return domain.Validationf("missing required attribute %s", def.Name)
			}
			continue
		}
		if !val.Matches(def.ValueType) {
			return domain.Validationf("attribute %s must be of type %s", def.Name, def.ValueType)
		}
	}
	for name := range values {
		if _, ok := defs[name]; !ok {
			return domain.Validationf("unknown attribute %s for category %s", name, cat.Name)
		}
	}
	return nil
}
