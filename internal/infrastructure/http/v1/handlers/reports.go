package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posledger/internal/core/apperror"
	"posledger/internal/core/types"
	"posledger/internal/domain/documents"
	"posledger/internal/domain/ledger"
)

// ReportsHandler serves the derived views: closing stock and per-item
// movement history. Nothing here writes; every figure is recomputed from
// the transaction collections on each request.
type ReportsHandler struct {
	BaseHandler
	ledger *ledger.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(l *ledger.Service) *ReportsHandler {
	return &ReportsHandler{ledger: l}
}

// ClosingStock returns the closing stock report.
// GET /api/v1/reports/closing-stock?status=inStock|outOfStock|negativeStock
func (h *ReportsHandler) ClosingStock(c *gin.Context) {
	status, ok := ledger.ParseStockStatus(c.Query("status"))
	if !ok {
		h.Error(c, apperror.NewValidation("unknown status filter").
			WithDetail("status", c.Query("status")))
		return
	}

	report, err := h.ledger.ClosingStock(c.Request.Context(), status)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Stock returns the derived balance for one item.
// GET /api/v1/items/:id/stock
func (h *ReportsHandler) Stock(c *gin.Context) {
	stock, err := h.ledger.CurrentStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"itemId": c.Param("id"), "stock": stock})
}

// Movements returns the reconstructed movement history for one item.
// GET /api/v1/items/:id/movements?kind=&from=&to=
func (h *ReportsHandler) Movements(c *gin.Context) {
	filter := ledger.MovementFilter{}

	if kindParam := c.Query("kind"); kindParam != "" && kindParam != "all" {
		kind, ok := documents.ParseKind(kindParam)
		if !ok {
			h.Error(c, apperror.NewValidation("unknown kind filter").
				WithDetail("kind", kindParam))
			return
		}
		filter.Kind = kind
	}

	if from := c.Query("from"); from != "" {
		d, err := types.ParseDate(from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from date").
				WithDetail("from", from))
			return
		}
		filter.From = d
	}
	if to := c.Query("to"); to != "" {
		d, err := types.ParseDate(to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to date").
				WithDetail("to", to))
			return
		}
		filter.To = d
	}

	movements, err := h.ledger.MovementHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movements": ledger.FilterMovements(movements, filter),
	})
}
