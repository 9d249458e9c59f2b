// Package handler exposes the admin login endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bounce_rentals_backend/internal/auth/service"
	"bounce_rentals_backend/platform/apperr"
)

// Handler handles the admin auth route.
type Handler struct {
	svc *service.Service
}

// New creates an auth handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/auth.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	// A missing or malformed body behaves like a wrong password attempt.
	_ = c.ShouldBindJSON(&req)

	token, err := h.svc.Login(req.Password)
	if err != nil {
		switch apperr.GetKind(err) {
		case apperr.KindUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "Wrong password."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "ADMIN_PASSWORD is not set on server."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"token":     token.Value,
		"expiresAt": token.ExpiresAt,
	})
}
