package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posledger/internal/domain/auth"
)

// UsersHandler serves account management endpoints. Authorization is
// enforced in the service; these routes are additionally gated by the
// users permission in the router.
type UsersHandler struct {
	BaseHandler
	service *auth.Service
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(service *auth.Service) *UsersHandler {
	return &UsersHandler{service: service}
}

// List returns all accounts.
// GET /api/v1/users
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get returns one account.
// GET /api/v1/users/:id
func (h *UsersHandler) Get(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create adds an account.
// POST /api/v1/users
func (h *UsersHandler) Create(c *gin.Context) {
	var req auth.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Update edits an account.
// PUT /api/v1/users/:id
func (h *UsersHandler) Update(c *gin.Context) {
	var req auth.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes an account.
// DELETE /api/v1/users/:id
func (h *UsersHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
