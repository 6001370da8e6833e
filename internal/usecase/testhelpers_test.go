package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amellouk/souq/internal/adapters/repo/postgres"
	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.AttributeDef{},
		&domain.Product{},
		&domain.Photo{},
		&domain.Offer{},
		&domain.Promotion{},
		&domain.Comment{},
		&domain.PriceHistoryEntry{},
	))
	return db
}

// fakeStorage stands in for the photo-hosting collaborator. FailOnUpload
// makes the nth upload fail (1-based); zero never fails.
type fakeStorage struct {
	mu           sync.Mutex
	FailOnUpload int
	uploads      int
	Stored       []string
	Deleted      []string
}

func (f *fakeStorage) Upload(_ context.Context, name string, _ io.Reader, _ int64) (domain.StoredObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.FailOnUpload != 0 && f.uploads == f.FailOnUpload {
		return domain.StoredObject{}, errors.New("storage unavailable")
	}
	id := fmt.Sprintf("obj-%d", f.uploads)
	f.Stored = append(f.Stored, id)
	return domain.StoredObject{URL: "https://cdn.test/" + id, ID: id}, nil
}

func (f *fakeStorage) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, id)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	Events []domain.Event
}

func (f *fakeNotifier) Notify(_ context.Context, e domain.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, e)
}

type fixture struct {
	db         *gorm.DB
	storage    *fakeStorage
	notifier   *fakeNotifier
	categories *usecase.CategoryUC
	products   *usecase.ProductUC
	offers     *usecase.OfferUC
	promotions *usecase.PromotionUC
	comments   *usecase.CommentUC
	pricing    *usecase.PricingUC
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	catRepo := postgres.NewCategoryRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	offerRepo := postgres.NewOfferRepo(db)
	promoRepo := postgres.NewPromotionRepo(db)
	histRepo := postgres.NewPriceHistoryRepo(db)
	userRepo := postgres.NewUserRepo(db)
	commentRepo := postgres.NewCommentRepo(db)

	storage := &fakeStorage{}
	notifier := &fakeNotifier{}
	validator := &usecase.AttributeValidator{Categories: catRepo}

	return &fixture{
		db:       db,
		storage:  storage,
		notifier: notifier,
		categories: &usecase.CategoryUC{
			Categories: catRepo,
		},
		products: &usecase.ProductUC{
			Products:  prodRepo,
			Users:     userRepo,
			Validator: validator,
			Storage:   storage,
			Notifier:  notifier,
		},
		offers: &usecase.OfferUC{
			Offers:   offerRepo,
			Products: prodRepo,
			Users:    userRepo,
			Notifier: notifier,
		},
		promotions: &usecase.PromotionUC{
			Promotions: promoRepo,
			Offers:     offerRepo,
			Notifier:   notifier,
		},
		comments: &usecase.CommentUC{
			Comments: commentRepo,
			Products: prodRepo,
			Users:    userRepo,
			Notifier: notifier,
		},
		pricing: &usecase.PricingUC{History: histRepo},
	}
}

func seller(name string) domain.Identity {
	return domain.Identity{UserID: uuid.NewString(), Name: name, Role: domain.RoleSeller}
}

func admin(name string) domain.Identity {
	return domain.Identity{UserID: uuid.NewString(), Name: name, Role: domain.RoleAdmin}
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
