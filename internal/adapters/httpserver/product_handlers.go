package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type photoRequest struct {
	URL     string `json:"url"`
	Data    []byte `json:"data"` // base64 payload uploaded through the storage collaborator
	IsCover bool   `json:"isCover"`
}

type createProductRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=180"`
	Description string              `json:"description"`
	BasePrice   decimal.Decimal     `json:"basePrice"`
	Stock       int                 `json:"stock" validate:"gte=0"`
	Available   *bool               `json:"available"`
	CategoryID  *string             `json:"categoryId"`
	Attributes  domain.AttributeMap `json:"attributes"`
	Photos      []photoRequest      `json:"photos"`
}

func photoInputs(reqs []photoRequest) []domain.PhotoInput {
	inputs := make([]domain.PhotoInput, 0, len(reqs))
	for _, p := range reqs {
		inputs = append(inputs, domain.PhotoInput{URL: p.URL, Data: p.Data, IsCover: p.IsCover})
	}
	return inputs
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	in := usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Stock:       req.Stock,
		Available:   req.Available,
		CategoryID:  req.CategoryID,
		Attributes:  req.Attributes,
		Photos:      photoInputs(req.Photos),
	}
	p, err := s.products.Create(c.Request.Context(), in, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listProducts(c *gin.Context) {
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)
	list, total, err := s.products.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(list, total, page, limit))
}

func (s *Server) searchProducts(c *gin.Context) {
	f := domain.ProductFilter{
		Name:       c.Query("name"),
		CategoryID: c.Query("categoryId"),
		Page:       intQuery(c, "page", 1),
		Limit:      intQuery(c, "limit", 10),
	}
	// "available" is tri-state: absent must not exclude unavailable rows.
	if raw, ok := c.GetQuery("available"); ok {
		avail := raw == "true"
		f.Available = &avail
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
	list, total, err := s.products.Search(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(list, total, f.Page, f.Limit))
}

type updateProductRequest struct {
	Name           *string             `json:"name" validate:"omitempty,min=1,max=180"`
	Description    *string             `json:"description"`
	BasePrice      *decimal.Decimal    `json:"basePrice"`
	Stock          *int                `json:"stock" validate:"omitempty,gte=0"`
	Available      *bool               `json:"available"`
	CategoryID     *string             `json:"categoryId"`
	Attributes     domain.AttributeMap `json:"attributes"`
	PhotosToDelete []string            `json:"photosToDelete"`
	PhotosToAdd    []photoRequest      `json:"photosToAdd"`
}

func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	patch := domain.ProductPatch{
		Name:           req.Name,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		Stock:          req.Stock,
		Available:      req.Available,
		CategoryID:     req.CategoryID,
		Attributes:     req.Attributes,
		PhotosToDelete: req.PhotosToDelete,
		PhotosToAdd:    photoInputs(req.PhotosToAdd),
	}
	p, err := s.products.Update(c.Request.Context(), c.Param("id"), patch, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c.Request.Context(), c.Param("id"), *identityFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (s *Server) productPriceHistory(c *gin.Context) {
	f := domain.HistoryFilter{
		EntityID: c.Param("id"),
		Kind:     domain.PriceKind(c.DefaultQuery("kind", string(domain.PriceKindProduct))),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
	}
	entries, total, err := s.pricing.ListHistory(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(entries, total, f.Page, f.Limit))
}
