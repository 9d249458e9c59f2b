// Package http defines how domain modules plug their routes into the
// shared gin engine.
package http

import (
	"context"

	"bounce_rentals_backend/platform/config"
	"bounce_rentals_backend/platform/logger"
)

// RouterConfig combines the config interfaces the router needs.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker is what the health endpoint probes, typically the
// database pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the initialized dependencies the router assembles routes
// from. The composition root in cmd/api populates it.
type App struct {
	Config  RouterConfig
	Logger  *logger.Logger
	Health  HealthChecker
	Modules []Module
}
