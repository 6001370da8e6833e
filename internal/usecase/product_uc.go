package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
)

type ProductUC struct {
	Products  domain.ProductRepo
	Users     domain.UserRepo
	Validator *AttributeValidator
	Storage   domain.PhotoStorage
	Notifier  domain.Notifier
}

type CreateProductInput struct {
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Stock       int
	Available   *bool
	CategoryID  *string
	Attributes  domain.AttributeMap
	Photos      []domain.PhotoInput
}

func (uc *ProductUC) Create(ctx context.Context, in CreateProductInput, owner domain.Identity) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validationf("product name is required")
	}
	if in.BasePrice.IsNegative() {
		return nil, domain.Validationf("base price must not be negative")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("stock must not be negative")
	}
	if err := uc.Validator.Validate(ctx, in.CategoryID, in.Attributes); err != nil {
		return nil, domain.Internal("create product", err)
	}
	if err := uc.Users.Ensure(ctx, domain.User{ID: owner.UserID, Name: owner.Name, Role: owner.Role}); err != nil {
		return nil, domain.Internal("create product", err)
	}

	p := &domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		Stock:       in.Stock,
		Available:   true,
		CategoryID:  normalizeCategoryID(in.CategoryID),
		UserID:      owner.UserID,
		Attributes:  in.Attributes,
	}
	if in.Available != nil {
		p.Available = *in.Available
	}

	// Uploads happen strictly before the row that references them; a
	// failed upload aborts the whole operation and the objects already
	// pushed are cleaned up so nothing is left orphaned.
	photos, err := uc.resolvePhotos(ctx, p.ID, in.Photos)
	if err != nil {
		return nil, domain.Internal("create product", err)
	}
	if err := uc.Products.CreateWithPhotos(ctx, p, photos); err != nil {
		uc.cleanupObjects(ctx, photos)
		return nil, domain.Internal("create product", err)
	}
	uc.notify(ctx, "product.created", p.ID, owner.UserID)
	return uc.Products.FindByID(ctx, p.ID)
}

// resolvePhotos turns the supplied photo inputs into persistable rows,
// uploading inline payloads and local paths through the storage
// collaborator. On failure the already-uploaded objects are removed.
func (uc *ProductUC) resolvePhotos(ctx context.Context, productID string, inputs []domain.PhotoInput) ([]domain.Photo, error) {
	photos := make([]domain.Photo, 0, len(inputs))
	for i, in := range inputs {
		photo := domain.Photo{
			ID:        uuid.NewString(),
			ProductID: productID,
			IsCover:   in.IsCover,
			Position:  i,
			CreatedAt: time.Now(),
		}
		switch {
		case len(in.Data) > 0:
			obj, err := uc.Storage.Upload(ctx, photoObjectName(in.URL), bytes.NewReader(in.Data), int64(len(in.Data)))
			if err != nil {
				uc.cleanupObjects(ctx, photos)
				return nil, fmt.Errorf("upload photo %d: %w", i, err)
			}
			photo.URL, photo.StorageID = obj.URL, obj.ID
		case isLocalPath(in.URL):
			data, err := os.ReadFile(in.URL)
			if err != nil {
				uc.cleanupObjects(ctx, photos)
				return nil, fmt.Errorf("read photo %d: %w", i, err)
			}
			obj, err := uc.Storage.Upload(ctx, photoObjectName(in.URL), bytes.NewReader(data), int64(len(data)))
			if err != nil {
				uc.cleanupObjects(ctx, photos)
				return nil, fmt.Errorf("upload photo %d: %w", i, err)
			}
			photo.URL, photo.StorageID = obj.URL, obj.ID
		default:
			photo.URL = in.URL
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

func (uc *ProductUC) cleanupObjects(ctx context.Context, photos []domain.Photo) {
	for _, ph := range photos {
		if ph.StorageID == "" {
			continue
		}
		if err := uc.Storage.Delete(ctx, ph.StorageID); err != nil {
			log.Warn().Err(err).Str("object", ph.StorageID).Msg("orphaned photo object left in storage")
		}
	}
}

// normalizeCategoryID folds an explicit empty ID into "no category".
func normalizeCategoryID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func isLocalPath(url string) bool {
	return strings.HasPrefix(url, "/") || strings.HasPrefix(url, "./") ||
		(len(url) > 2 && url[1] == ':' && (url[2] == '\\' || url[2] == '/'))
}

func photoObjectName(hint string) string {
	ext := filepath.Ext(hint)
	if ext == "" || len(ext) > 6 {
		ext = ".jpg"
	}
	return uuid.NewString() + ext
}

func (uc *ProductUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) List(ctx context.Context, page, limit int) ([]domain.Product, int64, error) {
	return uc.Search(ctx, domain.ProductFilter{Page: page, Limit: limit})
}

func (uc *ProductUC) Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	normalizePage(&f.Page, &f.Limit)
	return uc.Products.Search(ctx, f)
}

func (uc *ProductUC) Update(ctx context.Context, id string, patch domain.ProductPatch, caller domain.Identity) (*domain.Product, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.OwnerOrAdmin(p.UserID) {
		return nil, domain.ErrForbidden
	}

	// Photo removals first: the storage delete tolerates already-absent
	// objects, the rows go away inside the update transaction below.
	var removeIDs []string
	if len(patch.PhotosToDelete) > 0 {
		byID := make(map[string]domain.Photo, len(p.Photos))
		for _, ph := range p.Photos {
			byID[ph.ID] = ph
		}
		for _, photoID := range patch.PhotosToDelete {
			ph, ok := byID[photoID]
			if !ok {
				continue
			}
			if ph.StorageID != "" {
				if err := uc.Storage.Delete(ctx, ph.StorageID); err != nil {
					return nil, domain.Internal("delete photo object", err)
				}
			}
			removeIDs = append(removeIDs, photoID)
		}
	}

	addPhotos, err := uc.resolvePhotos(ctx, p.ID, patch.PhotosToAdd)
	if err != nil {
		return nil, domain.Internal("update product", err)
	}
	for i := range addPhotos {
		addPhotos[i].Position = len(p.Photos) + i
	}

	oldPrice := p.BasePrice
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, domain.Validationf("stock must not be negative")
		}
		p.Stock = *patch.Stock
	}
	if patch.Available != nil {
		p.Available = *patch.Available
	}
	if patch.CategoryID != nil {
		p.CategoryID = normalizeCategoryID(patch.CategoryID)
	}
	if patch.Attributes != nil {
		p.Attributes = patch.Attributes
	}
	if patch.Attributes != nil || patch.CategoryID != nil {
		if err := uc.Validator.Validate(ctx, p.CategoryID, p.Attributes); err != nil {
			uc.cleanupObjects(ctx, addPhotos)
			return nil, err
		}
	}

	var hist *domain.PriceHistoryEntry
	if patch.BasePrice != nil {
		if patch.BasePrice.IsNegative() {
			uc.cleanupObjects(ctx, addPhotos)
			return nil, domain.Validationf("base price must not be negative")
		}
		if priceChanged(oldPrice, *patch.BasePrice) {
			hist = newTransition(p.ID, domain.PriceKindProduct, oldPrice, *patch.BasePrice, caller.UserID)
			p.BasePrice = *patch.BasePrice
		}
	}

	if err := uc.Products.ApplyUpdate(ctx, p, addPhotos, removeIDs, hist); err != nil {
		uc.cleanupObjects(ctx, addPhotos)
		return nil, domain.Internal("update product", err)
	}
	uc.notify(ctx, "product.updated", p.ID, caller.UserID)
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Delete(ctx context.Context, id string, caller domain.Identity) error {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.OwnerOrAdmin(p.UserID) {
		return domain.ErrForbidden
	}
	// Storage cleanup is best-effort per photo; the row delete below is
	// atomic regardless.
	for _, ph := range p.Photos {
		if ph.StorageID == "" {
			continue
		}
		if err := uc.Storage.Delete(ctx, ph.StorageID); err != nil {
			log.Warn().Err(err).Str("object", ph.StorageID).Str("product", id).Msg("photo object not removed")
		}
	}
	if err := uc.Products.Delete(ctx, id); err != nil {
		return domain.Internal("delete product", err)
	}
	uc.notify(ctx, "product.deleted", id, caller.UserID)
	return nil
}

func (uc *ProductUC) notify(ctx context.Context, kind, entityID, userID string) {
	if uc.Notifier == nil {
		return
	}
	uc.Notifier.Notify(ctx, domain.Event{Kind: kind, EntityID: entityID, UserID: userID, At: time.Now()})
}
