// Package catalog provides the product catalog bounded context module.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"bounce_rentals_backend/internal/adapters/storage"
	"bounce_rentals_backend/internal/catalog/handler"
	"bounce_rentals_backend/internal/catalog/repository"
	"bounce_rentals_backend/internal/catalog/service"
	apphttp "bounce_rentals_backend/internal/http"
	"bounce_rentals_backend/platform/logger"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, bucket string, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, bucket, log)
	h := handler.New(svc, log)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/products", m.handler.ListPublicProducts)
	ctx.API.GET("/products/:slug", m.handler.GetPublicProduct)
	ctx.API.GET("/image/product", m.handler.GetImageURL)

	ctx.Admin.GET("/products", m.handler.ListProducts)
	ctx.Admin.POST("/products", m.handler.CreateProduct)
	ctx.Admin.PATCH("/products/:id", m.handler.UpdateProduct)
	ctx.Admin.DELETE("/products/:id", m.handler.DeleteProduct)
	ctx.Admin.POST("/upload", m.handler.UploadImage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
