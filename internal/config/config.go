package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
)

// Cache backend names accepted by GATEWAY_CACHE_BACKEND
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds all configuration for the gateway
type Config struct {
	Cache       CacheConfig
	Redis       RedisConfig
	Log         LogConfig
	Reservation ReservationConfig

	// SocialSettingsPath points at the guild settings TOML file; empty uses defaults
	SocialSettingsPath string `env:"SOCIAL_SETTINGS_PATH"`
}

// CacheConfig selects where cached entries live
type CacheConfig struct {
	// Disabled turns the cache off for horizontally scaled gateways
	// without a shared backend
	Disabled bool   `env:"GATEWAY_DISABLE_CACHE" envDefault:"false"`
	Backend  string `env:"GATEWAY_CACHE_BACKEND" envDefault:"memory"`
}

// RedisConfig holds the Redis connection URLs
type RedisConfig struct {
	// URL is the persistence store; empty runs on in-memory repositories
	URL string `env:"REDIS_URL"`

	// CacheURL is the shared cache backend, falling back to URL
	CacheURL string `env:"CACHE_REDIS_URL"`
}

// LogConfig controls the root logger
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	JSON  bool   `env:"LOG_JSON" envDefault:"false"`
}

// ReservationConfig controls the storage reservation window
type ReservationConfig struct {
	Window time.Duration `env:"STORAGE_RESERVATION_WINDOW" envDefault:"500ms"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values env parsing cannot
func (c *Config) Validate() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.CacheRedisURL() == "" {
			return fmt.Errorf("GATEWAY_CACHE_BACKEND=redis requires CACHE_REDIS_URL or REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown GATEWAY_CACHE_BACKEND %q", c.Cache.Backend)
	}

	if hclog.LevelFromString(c.Log.Level) == hclog.NoLevel {
		return fmt.Errorf("unknown LOG_LEVEL %q", c.Log.Level)
	}
	if c.Reservation.Window <= 0 {
		return fmt.Errorf("STORAGE_RESERVATION_WINDOW must be positive, got %s", c.Reservation.Window)
	}
	return nil
}

// CacheRedisURL returns the URL of the shared cache backend
func (c *Config) CacheRedisURL() string {
	if c.Redis.CacheURL != "" {
		return c.Redis.CacheURL
	}
	return c.Redis.URL
}

// NewLogger builds the root logger
func (c *Config) NewLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(c.Log.Level),
		JSONFormat: c.Log.JSON,
	})
}
