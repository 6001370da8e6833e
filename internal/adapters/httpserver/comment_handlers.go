package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amellouk/souq/internal/domain"
	"github.com/amellouk/souq/internal/usecase"
)

type createCommentRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=2000"`
	ProductID string `json:"productId" validate:"required,uuid4"`
}

func (s *Server) createComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	in := usecase.CreateCommentInput{Content: req.Content, ProductID: req.ProductID}
	view, err := s.comments.Create(c.Request.Context(), in, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) getComment(c *gin.Context) {
	view, err := s.comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) listComments(c *gin.Context) {
	f := domain.CommentFilter{
		ProductID: c.Query("productId"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 10),
	}
	views, total, err := s.comments.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(views, total, f.Page, f.Limit))
}

func (s *Server) productComments(c *gin.Context) {
	f := domain.CommentFilter{
		ProductID: c.Param("id"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 10),
	}
	views, total, err := s.comments.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(views, total, f.Page, f.Limit))
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (s *Server) updateComment(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail(c, domain.Validationf("%s", err.Error()))
		return
	}
	view, err := s.comments.Update(c.Request.Context(), c.Param("id"), req.Content, *identityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deleteComment(c *gin.Context) {
	if err := s.comments.Delete(c.Request.Context(), c.Param("id"), *identityFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
