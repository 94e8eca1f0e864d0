package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posledger/internal/domain/documents"
	"posledger/internal/infrastructure/http/v1/dto"
)

// DocumentsHandler serves one transaction collection. The router mounts one
// instance per kind, so the four collections share this code while keeping
// separate routes and permissions.
type DocumentsHandler struct {
	BaseHandler
	service *documents.Service
}

// NewDocumentsHandler creates a documents handler for a kind-bound service.
func NewDocumentsHandler(service *documents.Service) *DocumentsHandler {
	return &DocumentsHandler{service: service}
}

// List returns the collection, newest first, optionally filtered by
// ?search= over number, counterparty, and item names.
// GET /api/v1/{collection}
func (h *DocumentsHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Get returns one document.
// GET /api/v1/{collection}/:id
func (h *DocumentsHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Create saves a new document with a generated number.
// POST /api/v1/{collection}
func (h *DocumentsHandler) Create(c *gin.Context) {
	var req dto.TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToModel()
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// Update rewrites an existing document; the number is preserved.
// PUT /api/v1/{collection}/:id
func (h *DocumentsHandler) Update(c *gin.Context) {
	var req dto.TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(doc)

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete removes a document.
// DELETE /api/v1/{collection}/:id
func (h *DocumentsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
