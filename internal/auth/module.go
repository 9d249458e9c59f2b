// Package auth provides the admin authentication module.
package auth

import (
	"bounce_rentals_backend/internal/auth/handler"
	"bounce_rentals_backend/internal/auth/service"
	apphttp "bounce_rentals_backend/internal/http"
	"bounce_rentals_backend/platform/config"
)

// Module is the auth module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(cfg config.AdminAuthConfig) *Module {
	svc := service.New(cfg)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the login route. It lives outside the protected
// admin group since callers do not have a token yet.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/admin/auth", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
