package domain

import (
	"context"
	"io"
	"time"
)

type CategoryRepo interface {
	// Create writes the category and its initial attribute rows in one
	// transaction.
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	// Update persists the patched scalar fields and upserts the given
	// attribute rows (existing IDs updated, new IDs inserted) atomically.
	Update(ctx context.Context, c *Category, attrs []AttributeDef) error
	// Delete removes the category and all its attribute rows in one
	// transaction, nulling out product references first.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CategoryFilter) ([]Category, int64, error)
	Stats(ctx context.Context, f CategoryFilter) ([]CategoryStats, int64, error)
	ActiveNameExists(ctx context.Context, name, excludeID string) (bool, error)
}

type ProductRepo interface {
	// CreateWithPhotos inserts the product and its photo rows in one
	// transaction; the photos are batched, never written one by one.
	CreateWithPhotos(ctx context.Context, p *Product, photos []Photo) error
	FindByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	// ApplyUpdate persists the product, photo additions/removals and the
	// optional price-history entry as one atomic unit.
	ApplyUpdate(ctx context.Context, p *Product, add []Photo, removeIDs []string, hist *PriceHistoryEntry) error
	Delete(ctx context.Context, id string) error
}

type OfferRepo interface {
	Create(ctx context.Context, o *Offer) error
	FindByID(ctx context.Context, id string) (*Offer, error)
	List(ctx context.Context, f OfferFilter) ([]Offer, int64, error)
	// Update persists the offer together with recomputed dependent
	// promotions and all resulting history entries in one transaction.
	Update(ctx context.Context, o *Offer, promos []Promotion, hist []PriceHistoryEntry) error
	Delete(ctx context.Context, id string) error
	PromotionsForOffer(ctx context.Context, offerID string) ([]Promotion, error)
}

type PromotionRepo interface {
	// Create inserts the promotion and points the offer's promotion
	// reference at it atomically.
	Create(ctx context.Context, p *Promotion) error
	FindByID(ctx context.Context, id string) (*Promotion, error)
	List(ctx context.Context) ([]Promotion, error)
	Update(ctx context.Context, p *Promotion, hist *PriceHistoryEntry) error
	Delete(ctx context.Context, id string) error
}

type CommentRepo interface {
	Create(ctx context.Context, c *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	List(ctx context.Context, f CommentFilter) ([]Comment, int64, error)
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id string) error
}

type PriceHistoryRepo interface {
	Append(ctx context.Context, e *PriceHistoryEntry) error
	List(ctx context.Context, f HistoryFilter) ([]PriceHistoryEntry, int64, error)
	// Recent returns the newest entries across all entities, newest first.
	Recent(ctx context.Context, limit int) ([]PriceHistoryEntry, error)
}

type UserRepo interface {
	// Ensure upserts the profile row backing ownership joins.
	Ensure(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (*User, error)
}

// StoredObject is what the photo-hosting collaborator hands back; only the
// URL and the storage ID are persisted.
type StoredObject struct {
	URL string
	ID  string
}

type PhotoStorage interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64) (StoredObject, error)
	// Delete removes a stored object; deleting an absent object is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// Event is the fire-and-forget catalog-change notification.
type Event struct {
	Kind     string    `json:"kind"`
	EntityID string    `json:"entityId"`
	UserID   string    `json:"userId"`
	At       time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, e Event)
}
