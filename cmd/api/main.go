package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"bounce_rentals_backend/internal/adapters"
	"bounce_rentals_backend/internal/adapters/storage"
	"bounce_rentals_backend/internal/auth"
	"bounce_rentals_backend/internal/catalog"
	"bounce_rentals_backend/internal/email"
	apphttp "bounce_rentals_backend/internal/http"
	"bounce_rentals_backend/internal/http/router"
	"bounce_rentals_backend/internal/notification"
	"bounce_rentals_backend/internal/quotes"
	"bounce_rentals_backend/internal/testimonials"
	"bounce_rentals_backend/migrations"
	"bounce_rentals_backend/platform/config"
	"bounce_rentals_backend/platform/db"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/httpkit"
	"bounce_rentals_backend/platform/logger"
	"bounce_rentals_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for product images (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	imageBucket := cfg.GetMinioBucketProductImages()
	if err := withRetry(ctx, log, "ensure product image bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, imageBucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", imageBucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}

	// Quote rate limiter: shared Redis window when configured, otherwise
	// an in-process counter.
	limiter := httpkit.NewFixedWindowLimiter(
		newWindowStore(cfg, log),
		cfg.GetQuoteRateMax(),
		cfg.GetQuoteRateWindow(),
		log,
	)

	// ========================================================================
	// Domain Modules
	// ========================================================================

	notificationModule := notification.NewModule(sender, cfg.GetAdminNotifyTo(), log)
	notificationModule.RegisterEventHandlers(eventBus)

	catalogModule := catalog.NewModule(pool, storageSvc, imageBucket, log)

	productReader := adapters.NewCatalogProductReader(catalogModule.Repository())
	leadNotifier := adapters.NewLeadNotifierAdapter(notificationModule.Notifier())
	quotesModule := quotes.NewModule(pool, productReader, leadNotifier, eventBus, limiter, log)

	testimonialsModule := testimonials.NewModule(pool, eventBus, val, log)
	authModule := auth.NewModule(cfg)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			quotesModule,
			testimonialsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// newWindowStore picks the backing store for the quote rate limiter.
func newWindowStore(cfg config.RateLimitConfig, log *logger.Logger) httpkit.WindowStore {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		log.Info("quote rate limiter using in-memory window store")
		return httpkit.NewMemoryWindowStore()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, falling back to in-memory rate limiting", "error", err)
		return httpkit.NewMemoryWindowStore()
	}

	log.Info("quote rate limiter using redis window store")
	return httpkit.NewRedisWindowStore(redis.NewClient(opts))
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
