package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posledger/internal/core/apperror"
	appctx "posledger/internal/core/context"
	"posledger/internal/domain/auth"
)

// AuthHandler serves login and session endpoints.
type AuthHandler struct {
	BaseHandler
	service *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates and returns a token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds auth.Credentials
	if !h.BindJSON(c, &creds) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), creds)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Me returns the authenticated session.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":      user.UserID,
		"username":    user.Username,
		"fullName":    user.FullName,
		"permissions": user.Permissions,
		"isAdmin":     user.IsAdmin,
	})
}
