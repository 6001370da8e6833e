package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/amellouk/souq/internal/domain"
)

// exportCatalog streams an xlsx workbook with the full product list and the
// recent price-history trail. Admin only.
func (s *Server) exportCatalog(c *gin.Context) {
	products, _, err := s.products.Search(c.Request.Context(), domain.ProductFilter{Page: 1, Limit: 10000})
	if err != nil {
		fail(c, err)
		return
	}
	history, err := s.pricing.RecentHistory(c.Request.Context(), 10000)
	if err != nil {
		fail(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const productsSheet = "Products"
	f.SetSheetName("Sheet1", productsSheet)
	_ = f.SetSheetRow(productsSheet, "A1", &[]any{"ID", "Name", "Category", "Base price", "Stock", "Available", "Owner", "Photos"})
	for i, p := range products {
		cat := ""
		if p.Category != nil {
			cat = p.Category.Name
		}
		owner := ""
		if p.User != nil {
			owner = p.User.Name
		}
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(productsSheet, cell, &[]any{
			p.ID, p.Name, cat, p.BasePrice.String(), p.Stock, p.Available, owner, len(p.Photos),
		})
	}

	const historySheet = "Price history"
	_, _ = f.NewSheet(historySheet)
	_ = f.SetSheetRow(historySheet, "A1", &[]any{"Entity", "Kind", "Old price", "New price", "Changed at", "Changed by"})
	for i, e := range history {
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(historySheet, cell, &[]any{
			e.EntityID, string(e.Kind), e.OldPrice.String(), e.NewPrice.String(),
			e.ChangedAt.Format(time.RFC3339), e.ChangedBy,
		})
	}

	c.Header("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		fail(c, domain.Internal("export catalog", err))
		return
	}
	c.Status(http.StatusOK)
}
