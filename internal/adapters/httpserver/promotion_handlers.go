package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type createPromotionRequest struct {
	OfferID         string          `json:"offerId" validate:"required,uuid4"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	StartDate       time.Time       `json:"startDate" validate:"required"`
	EndDate         time.Time       `json:"endDate" validate:"required"`
}

func (s *Server) createPromotion(c *gin.Context) {
	var req createPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	in := usecase.CreatePromotionInput{
		OfferID:         req.OfferID,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	view, err := s.promotions.Create(c.Request.Context(), in, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) getPromotion(c *gin.Context) {
	view, err := s.promotions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) listPromotions(c *gin.Context) {
	views, err := s.promotions.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

type updatePromotionRequest struct {
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	StartDate       *time.Time       `json:"startDate"`
	EndDate         *time.Time       `json:"endDate"`
}

func (s *Server) updatePromotion(c *gin.Context) {
	var req updatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	patch := domain.PromotionPatch{
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	view, err := s.promotions.Update(c.Request.Context(), c.Param("id"), patch, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deletePromotion(c *gin.Context) {
	if err := s.promotions.Delete(c.Request.Context(), c.Param("id"), *identityFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
