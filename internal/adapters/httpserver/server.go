package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/amellouk/souq/internal/usecase"
)

type Server struct {
	categories *usecase.CategoryUC
	products   *usecase.ProductUC
	offers     *usecase.OfferUC
	promotions *usecase.PromotionUC
	comments   *usecase.CommentUC
	pricing    *usecase.PricingUC
	validate   *validator.Validate
	secret     []byte
}

func New(categories *usecase.CategoryUC, products *usecase.ProductUC, offers *usecase.OfferUC,
	promotions *usecase.PromotionUC, comments *usecase.CommentUC, pricing *usecase.PricingUC,
	jwtSecret []byte) http.Handler {

	s := &Server{
		categories: categories,
		products:   products,
		offers:     offers,
		promotions: promotions,
		comments:   comments,
		pricing:    pricing,
		validate:   validator.New(),
		secret:     jwtSecret,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLog())
	s.routes(r)
	return r
}

func (s *Server) routes(r *gin.Engine) {
	api := r.Group("/api")

	cats := api.Group("/categories")
	cats.GET("", s.identity(false), s.listCategories)
	cats.GET("/statistics", s.identity(false), s.categoryStatistics)
	cats.GET("/:id", s.getCategory)
	cats.POST("", s.identity(true), s.requireAdmin, s.createCategory)
	cats.PATCH("/:id", s.identity(true), s.requireAdmin, s.updateCategory)
	cats.DELETE("/:id", s.identity(true), s.requireAdmin, s.deleteCategory)

	prods := api.Group("/products")
	prods.GET("", s.listProducts)
	prods.GET("/search", s.searchProducts)
	prods.GET("/:id", s.getProduct)
	prods.GET("/:id/price-history", s.productPriceHistory)
	prods.GET("/:id/comments", s.productComments)
	prods.POST("", s.identity(true), s.createProduct)
	prods.PATCH("/:id", s.identity(true), s.updateProduct)
	prods.DELETE("/:id", s.identity(true), s.deleteProduct)

	offers := api.Group("/offers")
	offers.GET("", s.listOffers)
	offers.GET("/:id", s.getOffer)
	offers.POST("", s.identity(true), s.createOffer)
	offers.PATCH("/:id", s.identity(true), s.updateOffer)
	offers.DELETE("/:id", s.identity(true), s.deleteOffer)

	promos := api.Group("/promotions")
	promos.GET("", s.listPromotions)
	promos.GET("/:id", s.getPromotion)
	promos.POST("", s.identity(true), s.createPromotion)
	promos.PATCH("/:id", s.identity(true), s.updatePromotion)
	promos.DELETE("/:id", s.identity(true), s.deletePromotion)

	comments := api.Group("/comments")
	comments.GET("", s.listComments)
	comments.GET("/:id", s.getComment)
	comments.POST("", s.identity(true), s.createComment)
	comments.PATCH("/:id", s.identity(true), s.updateComment)
	comments.DELETE("/:id", s.identity(true), s.deleteComment)

	api.GET("/admin/export", s.identity(true), s.requireAdmin, s.exportCatalog)
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
