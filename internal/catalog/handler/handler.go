// Package handler exposes the catalog HTTP endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bounce_rentals_backend/internal/catalog/service"
	"bounce_rentals_backend/internal/catalog/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/httpkit"
	"bounce_rentals_backend/platform/logger"
)

// Handler handles catalog routes.
type Handler struct {
	svc *service.Service
	log *logger.Logger
}

// New creates a catalog handler.
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// ListPublicProducts handles GET /api/products.
func (h *Handler) ListPublicProducts(c *gin.Context) {
	products, err := h.svc.ListPublic(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"products": products})
}

// GetPublicProduct handles GET /api/products/:slug.
func (h *Handler) GetPublicProduct(c *gin.Context) {
	product, err := h.svc.GetPublic(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"product": product})
}

// ListProducts handles GET /api/admin/products.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListAdmin(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"products": products})
}

// CreateProduct handles POST /api/admin/products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req transport.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	product, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PATCH /api/admin/products/:id.
func (h *Handler) UpdateProduct(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	patch, err := transport.ParseProductPatch(body)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"ok": true})
}

// UploadImage handles POST /api/admin/upload.
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Missing file"})
		return
	}
	defer file.Close()

	path, err := h.svc.UploadImage(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		status, message := uploadError(err)
		c.JSON(status, gin.H{"ok": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "path": path})
}

// GetImageURL handles GET /api/image/product?path=.
func (h *Handler) GetImageURL(c *gin.Context) {
	url, err := h.svc.ImageURL(c.Request.Context(), c.Query("path"))
	if err != nil {
		status, message := uploadError(err)
		c.JSON(status, gin.H{"ok": false, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

// uploadError maps service errors for the image endpoints, which answer in
// the public {ok,message} shape instead of the admin error envelope.
func uploadError(err error) (int, string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindValidation, apperr.KindBadRequest:
			return http.StatusBadRequest, appErr.Message
		}
	}
	return http.StatusBadRequest, "Failed"
}
