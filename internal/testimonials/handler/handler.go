// Package handler exposes the testimonials HTTP endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"

	"bounce_rentals_backend/internal/testimonials/service"
	"bounce_rentals_backend/internal/testimonials/transport"
	"bounce_rentals_backend/platform/httpkit"
	"bounce_rentals_backend/platform/logger"
	"bounce_rentals_backend/platform/validator"
)

// Handler handles testimonial routes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

// New creates a testimonials handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// Submit handles POST /api/testimonials.
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Validation failed", validationIssues(err))
		return
	}

	// Honeypot trip: bots get an empty success and nothing is stored.
	if strings.TrimSpace(req.Website) != "" {
		c.Status(http.StatusNoContent)
		return
	}

	ip := httpkit.ClientIdentifier(c)
	if ip == "unknown" {
		ip = ""
	}

	if err := h.svc.Submit(c.Request.Context(), req, ip, c.Request.UserAgent()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"ok": true})
}

// ListPublic handles GET /api/testimonials.
func (h *Handler) ListPublic(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.ListPublic(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

// ListAdmin handles GET /api/admin/testimonials.
func (h *Handler) ListAdmin(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.ListAdmin(c.Request.Context(), c.Query("status"), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

// AdminCreate handles POST /api/admin/testimonials.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req transport.AdminCreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	item, err := h.svc.AdminCreate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"item": item})
}

// Moderate handles PATCH /api/admin/testimonials/:id.
func (h *Handler) Moderate(c *gin.Context) {
	var req transport.ModerateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	item, err := h.svc.Moderate(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"item": item})
}

// Delete handles DELETE /api/admin/testimonials/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"ok": true})
}

// validationIssues flattens validator errors into {path, message} pairs.
func validationIssues(err error) []transport.Issue {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return []transport.Issue{{Path: "", Message: err.Error()}}
	}

	issues := make([]transport.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, transport.Issue{
			Path:    jsonFieldName(fe.Field()),
			Message: issueMessage(fe),
		})
	}
	return issues
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func issueMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return jsonFieldName(fe.Field()) + " is required"
	case "min":
		return jsonFieldName(fe.Field()) + " must be at least " + fe.Param()
	case "max":
		return jsonFieldName(fe.Field()) + " must be at most " + fe.Param()
	default:
		return jsonFieldName(fe.Field()) + " is invalid"
	}
}
