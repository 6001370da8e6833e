package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type attributeDefRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	ValueType string `json:"valueType" validate:"required,oneof=string number boolean date"`
	Required  bool   `json:"required"`
}

type createCategoryRequest struct {
	Name         string                `json:"name" validate:"required,min=2,max=50"`
	IsActive     *bool                 `json:"isActive"`
	CategoryType string                `json:"categoryType" validate:"max=100"`
	Attributes   []attributeDefRequest `json:"attributes" validate:"dive"`
}

func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	in := usecase.CreateCategoryInput{
		Name:         req.Name,
		IsActive:     req.IsActive,
		CategoryType: req.CategoryType,
	}
	for _, a := range req.Attributes {
		in.Attributes = append(in.Attributes, domain.AttributeDef{
			Name:      a.Name,
			ValueType: domain.AttributeType(a.ValueType),
			Required:  a.Required,
		})
	}
	cat, err := s.categories.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": cat.ID})
}

type attributeUpsertRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	ValueType *string `json:"valueType" validate:"omitempty,oneof=string number boolean date"`
	Required  *bool   `json:"required"`
}

type updateCategoryRequest struct {
	Name         *string                  `json:"name" validate:"omitempty,min=2,max=50"`
	IsActive     *bool                    `json:"isActive"`
	CategoryType *string                  `json:"categoryType" validate:"omitempty,max=100"`
	Attributes   []attributeUpsertRequest `json:"attributes" validate:"dive"`
}

func (s *Server) updateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	patch := domain.CategoryPatch{
		Name:         req.Name,
		IsActive:     req.IsActive,
		CategoryType: req.CategoryType,
	}
	for _, a := range req.Attributes {
		up := domain.AttributeUpsert{ID: a.ID, Name: a.Name, Required: a.Required}
		if a.ValueType != nil {
			t := domain.AttributeType(*a.ValueType)
			up.ValueType = &t
		}
		patch.Attributes = append(patch.Attributes, up)
	}
	cat, err := s.categories.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (s *Server) getCategory(c *gin.Context) {
	cat, err := s.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) listCategories(c *gin.Context) {
	f := domain.CategoryFilter{
		Name:            c.Query("name"),
		IncludeInactive: c.Query("includeInactive") == "true",
		Page:            intQuery(c, "page", 1),
		Limit:           intQuery(c, "limit", 10),
	}
	cats, total, err := s.categories.List(c.Request.Context(), f, identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(cats, total, f.Page, f.Limit))
}

func (s *Server) categoryStatistics(c *gin.Context) {
	f := domain.CategoryFilter{
		IncludeInactive: c.Query("includeInactive") == "true",
		Page:            intQuery(c, "page", 1),
		Limit:           intQuery(c, "limit", 10),
	}
	stats, total, err := s.categories.Statistics(c.Request.Context(), f, identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(stats, total, f.Page, f.Limit))
}
