package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posledger/internal/domain/catalog/item"
	"posledger/internal/infrastructure/http/v1/dto"
)

// ItemsHandler serves the item catalog endpoints.
type ItemsHandler struct {
	BaseHandler
	service *item.Service
}

// NewItemsHandler creates an items handler.
func NewItemsHandler(service *item.Service) *ItemsHandler {
	return &ItemsHandler{service: service}
}

// List returns the full catalog.
// GET /api/v1/items
func (h *ItemsHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get returns one item.
// GET /api/v1/items/:id
func (h *ItemsHandler) Get(c *gin.Context) {
	it, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Create adds an item, assigning the next code when none is given.
// POST /api/v1/items
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it := req.ToModel()
	if err := h.service.Create(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// Update edits an item.
// PUT /api/v1/items/:id
func (h *ItemsHandler) Update(c *gin.Context) {
	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(it)

	if err := h.service.Update(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Delete removes an item.
// DELETE /api/v1/items/:id
func (h *ItemsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// NextCode previews the code the next created item would get.
// GET /api/v1/items/next-code
func (h *ItemsHandler) NextCode(c *gin.Context) {
	code, err := h.service.NextCode(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}
