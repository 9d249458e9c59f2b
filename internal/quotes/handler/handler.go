// Package handler exposes the quotes HTTP endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bounce_rentals_backend/internal/quotes/service"
	"bounce_rentals_backend/internal/quotes/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/httpkit"
	"bounce_rentals_backend/platform/logger"
)

// Handler handles quote submission and admin lead routes.
type Handler struct {
	svc     *service.Service
	limiter *httpkit.FixedWindowLimiter
	log     *logger.Logger
}

// New creates a quotes handler.
func New(svc *service.Service, limiter *httpkit.FixedWindowLimiter, log *logger.Logger) *Handler {
	return &Handler{svc: svc, limiter: limiter, log: log}
}

// SubmitQuote handles POST /api/quote.
func (h *Handler) SubmitQuote(c *gin.Context) {
	key := httpkit.ClientIdentifier(c)
	if !h.limiter.Allow(c.Request.Context(), key) {
		h.log.RateLimitExceeded(key, c.FullPath())
		c.JSON(http.StatusTooManyRequests, gin.H{
			"ok":      false,
			"message": "Too many requests. Try again in a minute.",
		})
		return
	}

	var req transport.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid JSON."})
		return
	}

	if issues := service.ValidateQuote(req); len(issues) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"message": "Invalid input.",
			"issues":  issues,
		})
		return
	}

	// Honeypot trip looks exactly like success so bots learn nothing.
	if strings.TrimSpace(req.Website) != "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "OK"})
		return
	}

	lead, err := h.svc.SubmitQuote(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, transport.NewQuoteAck(lead))
}

// ListLeads handles GET /api/admin/leads.
func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.svc.ListLeads(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "leads": leads})
}

// UpdateLead handles PATCH /api/admin/leads/:id.
func (h *Handler) UpdateLead(c *gin.Context) {
	var req transport.UpdateLeadRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid input"})
		return
	}

	lead, err := h.svc.UpdateLead(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch apperr.GetKind(err) {
		case apperr.KindBadRequest:
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": apperrMessage(err)})
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid input"})
		case apperr.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "lead": lead})
}

func apperrMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Bad request"
}
