// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported content backends.
const (
	ContentBackendStore     = "store"
	ContentBackendFirestore = "firestore"
	ContentBackendMemory    = "memory"
)

// Supported media backends.
const (
	MediaBackendLocal = "local"
	MediaBackendGCS   = "gcs"
)

// Supported SQL drivers. "sqlite" is the pure Go driver, "sqlite3" the cgo one.
var supportedDrivers = []string{"sqlite", "sqlite3", "mysql"}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"MIRROR_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"MIRROR_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"MIRROR_ENV" envDefault:"development"`
	LogLevel   string `env:"MIRROR_LOG_LEVEL" envDefault:"info"`
	SiteURL    string `env:"MIRROR_SITE_URL" envDefault:"http://localhost:8080"`

	// Content store
	DBDriver       string `env:"MIRROR_DB_DRIVER" envDefault:"sqlite"`
	DBDSN          string `env:"MIRROR_DB_DSN" envDefault:"./data/mirror.db"`
	DoSeed         bool   `env:"MIRROR_DO_SEED" envDefault:"true"`
	ContentBackend string `env:"MIRROR_CONTENT_BACKEND" envDefault:"store"`

	// Firestore backend (MIRROR_CONTENT_BACKEND=firestore)
	FirestoreProject string `env:"MIRROR_FIRESTORE_PROJECT"`

	// Cache configuration
	RedisURL          string        `env:"MIRROR_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix       string        `env:"MIRROR_CACHE_PREFIX" envDefault:"mirror:"` // Redis key prefix
	CacheTTL          time.Duration `env:"MIRROR_CACHE_TTL" envDefault:"10m"`
	CacheMaxItems     int           `env:"MIRROR_CACHE_MAX_ITEMS" envDefault:"10000"`
	CacheMaxBytes     int64         `env:"MIRROR_CACHE_MAX_BYTES" envDefault:"268435456"` // 256 MiB, memory backend only
	CacheWarmSchedule string        `env:"MIRROR_CACHE_WARM_SCHEDULE" envDefault:"*/5 * * * *"`

	// Media storage
	MediaBackend string `env:"MIRROR_MEDIA_BACKEND" envDefault:"local"`
	MediaDir     string `env:"MIRROR_MEDIA_DIR" envDefault:"./media"`
	MediaBucket  string `env:"MIRROR_MEDIA_BUCKET"`

	// Public JSON API
	APIRateLimit   float64  `env:"MIRROR_API_RATE_LIMIT" envDefault:"10"`
	APIRateBurst   int      `env:"MIRROR_API_RATE_BURST" envDefault:"20"`
	AllowedOrigins []string `env:"MIRROR_ALLOWED_ORIGINS" envSeparator:","`

	// Tracing
	OTelEndpoint string `env:"MIRROR_OTEL_ENDPOINT"`

	// Contact and outbound links
	ContactEmail      string `env:"MIRROR_CONTACT_EMAIL" envDefault:"info@mirrorcreative.com"`
	ContactPhone      string `env:"MIRROR_CONTACT_PHONE" envDefault:"+1234567890"`
	BookingFormURL    string `env:"MIRROR_BOOKING_FORM_URL" envDefault:"https://forms.google.com"`
	EnrollmentFormURL string `env:"MIRROR_ENROLLMENT_FORM_URL" envDefault:"https://forms.google.com"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// TracingEnabled returns true if an OTLP endpoint is configured.
func (c Config) TracingEnabled() bool {
	return c.OTelEndpoint != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if !slices.Contains(supportedDrivers, c.DBDriver) {
		return fmt.Errorf("MIRROR_DB_DRIVER must be one of %s, got %q",
			strings.Join(supportedDrivers, ", "), c.DBDriver)
	}

	switch c.ContentBackend {
	case ContentBackendStore, ContentBackendMemory:
	case ContentBackendFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("MIRROR_FIRESTORE_PROJECT is required when MIRROR_CONTENT_BACKEND=firestore")
		}
	default:
		return fmt.Errorf("MIRROR_CONTENT_BACKEND must be one of %q, %q, %q, got %q",
			ContentBackendStore, ContentBackendFirestore, ContentBackendMemory, c.ContentBackend)
	}

	switch c.MediaBackend {
	case MediaBackendLocal:
	case MediaBackendGCS:
		if c.MediaBucket == "" {
			return fmt.Errorf("MIRROR_MEDIA_BUCKET is required when MIRROR_MEDIA_BACKEND=gcs")
		}
	default:
		return fmt.Errorf("MIRROR_MEDIA_BACKEND must be %q or %q, got %q",
			MediaBackendLocal, MediaBackendGCS, c.MediaBackend)
	}

	if _, err := url.ParseRequestURI(c.SiteURL); err != nil {
		return fmt.Errorf("MIRROR_SITE_URL is not a valid URL: %w", err)
	}
	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")

	if c.APIRateLimit <= 0 || c.APIRateBurst <= 0 {
		return fmt.Errorf("MIRROR_API_RATE_LIMIT and MIRROR_API_RATE_BURST must be positive")
	}

	return nil
}
