// Package testimonials provides the testimonials bounded context module.
package testimonials

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "bounce_rentals_backend/internal/http"
	"bounce_rentals_backend/internal/testimonials/handler"
	"bounce_rentals_backend/internal/testimonials/repository"
	"bounce_rentals_backend/internal/testimonials/service"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/logger"
	"bounce_rentals_backend/platform/validator"
)

// Module is the testimonials bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the testimonials module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "testimonials"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts testimonial routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/testimonials", m.handler.Submit)
	ctx.API.GET("/testimonials", m.handler.ListPublic)

	ctx.Admin.GET("/testimonials", m.handler.ListAdmin)
	ctx.Admin.POST("/testimonials", m.handler.AdminCreate)
	ctx.Admin.PATCH("/testimonials/:id", m.handler.Moderate)
	ctx.Admin.DELETE("/testimonials/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
