// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AdminAuthConfig provides settings needed by the admin auth service.
type AdminAuthConfig interface {
	JWTConfig
	GetAdminPasswordHash() string
	GetAdminPassword() string
	GetAdminTokenTTL() time.Duration
}

// SMTPConfig provides settings for the SMTP email sender.
type SMTPConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPSecure() bool
	GetSMTPUser() string
	GetSMTPPass() string
	GetMailFrom() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetAdminNotifyTo() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketProductImages() string
	IsMinIOEnabled() bool
}

// RateLimitConfig provides settings for the quote-endpoint rate limiter.
type RateLimitConfig interface {
	GetQuoteRateMax() int
	GetQuoteRateWindow() time.Duration
	GetRedisURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                      string
	HTTPAddr                 string
	DatabaseURL              string
	JWTAccessSecret          string
	AdminTokenTTL            time.Duration
	AdminPasswordHash        string
	AdminPassword            string
	AdminNotifyTo            string
	CORSAllowAll             bool
	CORSOrigins              []string
	CORSAllowCreds           bool
	EmailEnabled             bool
	SMTPHost                 string
	SMTPPort                 int
	SMTPSecure               bool
	SMTPUser                 string
	SMTPPass                 string
	MailFrom                 string
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOMaxFileSize         int64
	MinioBucketProductImages string
	RedisURL                 string
	QuoteRateMax             int
	QuoteRateWindow          time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AdminAuthConfig implementation
func (c *Config) GetAdminPasswordHash() string    { return c.AdminPasswordHash }
func (c *Config) GetAdminPassword() string        { return c.AdminPassword }
func (c *Config) GetAdminTokenTTL() time.Duration { return c.AdminTokenTTL }

// SMTPConfig implementation
func (c *Config) GetEmailEnabled() bool { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string   { return c.SMTPHost }
func (c *Config) GetSMTPPort() int      { return c.SMTPPort }
func (c *Config) GetSMTPSecure() bool   { return c.SMTPSecure }
func (c *Config) GetSMTPUser() string   { return c.SMTPUser }
func (c *Config) GetSMTPPass() string   { return c.SMTPPass }
func (c *Config) GetMailFrom() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return c.SMTPUser
}

// NotificationConfig implementation
func (c *Config) GetAdminNotifyTo() string { return c.AdminNotifyTo }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketProductImages() string {
	return c.MinioBucketProductImages
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// RateLimitConfig implementation
func (c *Config) GetQuoteRateMax() int              { return c.QuoteRateMax }
func (c *Config) GetQuoteRateWindow() time.Duration { return c.QuoteRateWindow }
func (c *Config) GetRedisURL() string               { return c.RedisURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		JWTAccessSecret:          getEnv("JWT_ACCESS_SECRET", ""),
		AdminTokenTTL:            mustDuration(getEnv("ADMIN_TOKEN_TTL", "12h")),
		AdminPasswordHash:        getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:            getEnv("ADMIN_PASSWORD", ""),
		AdminNotifyTo:            getEnv("ADMIN_NOTIFY_TO", ""),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		EmailEnabled:             strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true"),
		SMTPHost:                 getEnv("SMTP_HOST", ""),
		SMTPPort:                 mustInt(getEnv("SMTP_PORT", "465")),
		SMTPSecure:               strings.EqualFold(getEnv("SMTP_SECURE", "true"), "true"),
		SMTPUser:                 getEnv("SMTP_USER", ""),
		SMTPPass:                 getEnv("SMTP_PASS", ""),
		MailFrom:                 getEnv("MAIL_FROM", ""),
		MinIOEndpoint:            getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:           getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:         mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketProductImages: getEnv("MINIO_BUCKET_PRODUCT_IMAGES", "products"),
		RedisURL:                 getEnv("REDIS_URL", ""),
		QuoteRateMax:             mustInt(getEnv("QUOTE_RATE_MAX", "8")),
		QuoteRateWindow:          mustDuration(getEnv("QUOTE_RATE_WINDOW", "60s")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.AdminTokenTTL <= 0 {
		return nil, fmt.Errorf("ADMIN_TOKEN_TTL must be a positive duration")
	}
	if cfg.QuoteRateMax < 1 {
		return nil, fmt.Errorf("QUOTE_RATE_MAX must be at least 1")
	}
	if cfg.QuoteRateWindow <= 0 {
		return nil, fmt.Errorf("QUOTE_RATE_WINDOW must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
