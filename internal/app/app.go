package app

import (
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/amellouk/souq/internal/adapters/httpserver"
	"github.com/amellouk/souq/internal/adapters/notify"
	"github.com/amellouk/souq/internal/adapters/repo/postgres"
	"github.com/amellouk/souq/internal/adapters/storage/localfs"
	"github.com/amellouk/souq/internal/adapters/storage/miniostore"
	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	Handler    http.Handler
	Categories *usecase.CategoryUC
	Products   *usecase.ProductUC
	Offers     *usecase.OfferUC
	Promotions *usecase.PromotionUC
	Comments   *usecase.CommentUC
	Pricing    *usecase.PricingUC
	Storage    domain.PhotoStorage
}

func NewApp(db *gorm.DB) (*App, error) {
	catRepo := postgres.NewCategoryRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	offerRepo := postgres.NewOfferRepo(db)
	promoRepo := postgres.NewPromotionRepo(db)
	histRepo := postgres.NewPriceHistoryRepo(db)
	userRepo := postgres.NewUserRepo(db)
	commentRepo := postgres.NewCommentRepo(db)

	storage, err := buildStorage()
	if err != nil {
		return nil, err
	}
	notifier := notify.NewWebhook(os.Getenv("NOTIFY_WEBHOOK_URL"))

	validator := &usecase.AttributeValidator{Categories: catRepo}
	categories := &usecase.CategoryUC{Categories: catRepo}
	products := &usecase.ProductUC{
		Products:  prodRepo,
		Users:     userRepo,
		Validator: validator,
		Storage:   storage,
		Notifier:  notifier,
	}
	offers := &usecase.OfferUC{
		Offers:   offerRepo,
		Products: prodRepo,
		Users:    userRepo,
		Notifier: notifier,
	}
	promotions := &usecase.PromotionUC{
		Promotions: promoRepo,
		Offers:     offerRepo,
		Notifier:   notifier,
	}
	comments := &usecase.CommentUC{
		Comments: commentRepo,
		Products: prodRepo,
		Users:    userRepo,
		Notifier: notifier,
	}
	pricing := &usecase.PricingUC{History: histRepo}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
	}

	return &App{
		DB:         db,
		Handler:    httpserver.New(categories, products, offers, promotions, comments, pricing, []byte(secret)),
		Categories: categories,
		Products:   products,
		Offers:     offers,
		Promotions: promotions,
		Comments:   comments,
		Pricing:    pricing,
		Storage:    storage,
	}, nil
}

func buildStorage() (domain.PhotoStorage, error) {
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		bucket := os.Getenv("MINIO_BUCKET")
		if bucket == "" {
			bucket = "photos"
		}
		return miniostore.New(miniostore.Config{
			Endpoint:  endpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    bucket,
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		})
	}
	dir := os.Getenv("STORAGE_DIR")
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return localfs.New(dir, baseURL), nil
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.AttributeDef{},
		&domain.Product{},
		&domain.Photo{},
		&domain.Offer{},
		&domain.Promotion{},
		&domain.Comment{},
		&domain.PriceHistoryEntry{},
	)
}
