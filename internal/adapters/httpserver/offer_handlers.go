package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type createOfferRequest struct {
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock" validate:"gte=0"`
	ExpirationDate *time.Time      `json:"expirationDate"`
	ProductID      string          `json:"productId" validate:"required,uuid4"`
}

func (s *Server) createOffer(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	in := usecase.CreateOfferInput{
		Price:          req.Price,
		Stock:          req.Stock,
		ExpirationDate: req.ExpirationDate,
		ProductID:      req.ProductID,
	}
	view, err := s.offers.Create(c.Request.Context(), in, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) getOffer(c *gin.Context) {
	view, err := s.offers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) listOffers(c *gin.Context) {
	f := domain.OfferFilter{
		Page:    intQuery(c, "page", 1),
		Limit:   intQuery(c, "limit", 10),
		SortBy:  c.Query("sortBy"),
		Order:   c.Query("order"),
		Keyword: c.Query("keyword"),
	}
	if raw := c.Query("priceMin"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fail(c, domain.Validationf("priceMin is not a number"))
			return
		}
		f.PriceMin = &d
	}
	if raw := c.Query("priceMax"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fail(c, domain.Validationf("priceMax is not a number"))
			return
		}
		f.PriceMax = &d
	}
	views, total, err := s.offers.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(views, total, f.Page, f.Limit))
}

type updateOfferRequest struct {
	Price          *decimal.Decimal `json:"price"`
	Stock          *int             `json:"stock" validate:"omitempty,gte=0"`
	ExpirationDate *time.Time       `json:"expirationDate"`
}

func (s *Server) updateOffer(c *gin.Context) {
	var req updateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	patch := domain.OfferPatch{Price: req.Price, Stock: req.Stock, ExpirationDate: req.ExpirationDate}
	view, err := s.offers.Update(c.Request.Context(), c.Param("id"), patch, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deleteOffer(c *gin.Context) {
	if err := s.offers.Delete(c.Request.Context(), c.Param("id"), *identityFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
