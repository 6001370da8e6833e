package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amellouk/souq/internal/domain"
)

// fail maps the domain error taxonomy onto HTTP statuses; anything without
// a specific kind surfaces as a 500 with the wrapped message preserved.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type pageEnvelope struct {
	Data      any   `json:"data"`
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
}

func paged(data any, total int64, page, limit int) pageEnvelope {
	pageCount := 0
	if limit > 0 {
		pageCount = int((total + int64(limit) - 1) / int64(limit))
	}
	return pageEnvelope{Data: data, Total: total, Page: page, PageCount: pageCount}
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
