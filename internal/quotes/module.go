// Package quotes provides the quote intake bounded context module.
package quotes

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "bounce_rentals_backend/internal/http"
	"bounce_rentals_backend/internal/quotes/handler"
	"bounce_rentals_backend/internal/quotes/repository"
	"bounce_rentals_backend/internal/quotes/service"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/httpkit"
	"bounce_rentals_backend/platform/logger"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the quotes module.
func NewModule(pool *pgxpool.Pool, products service.ProductNameResolver, notifier service.Notifier, bus events.Bus, limiter *httpkit.FixedWindowLimiter, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, products, notifier, bus, log)
	h := handler.New(svc, limiter, log)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/quote", m.handler.SubmitQuote)

	ctx.Admin.GET("/leads", m.handler.ListLeads)
	ctx.Admin.PATCH("/leads/:id", m.handler.UpdateLead)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
