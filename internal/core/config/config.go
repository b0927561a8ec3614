package config

import (
	"fmt"
	"time"

	redisclient "github.com/axiom-software-co/sitenav/internal/infra/redis"
	"github.com/axiom-software-co/sitenav/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Platform PlatformConfig     `yaml:"platform"`
	Cache    CacheConfig        `yaml:"cache"`
	Relay    RelayConfig        `yaml:"relay"`
	Redis    redisclient.Config `yaml:"redis"`
	Database postgres.Config    `yaml:"database"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int     `yaml:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`   // sustained requests/second per client for form endpoints
	RateLimitBurst int     `yaml:"rate_limit_burst"` // burst allowance per client
}

// PlatformConfig holds settings for the upstream platform API.
type PlatformConfig struct {
	Environment   string        `yaml:"environment"` // Development, Staging, Production
	BaseURL       string        `yaml:"base_url"`    // overrides the environment default when set
	Timeout       time.Duration `yaml:"timeout"`     // per-attempt request timeout
	RetryAttempts int           `yaml:"retry_attempts"`
	PageSize      int           `yaml:"page_size"` // services page size requested from the platform
}

// CacheConfig holds navigation cache settings.
type CacheConfig struct {
	TTL       time.Duration `yaml:"ttl"`       // freshness window for cached projections
	Retention time.Duration `yaml:"retention"` // how long stale copies stay available as fallback
}

// RelayConfig holds form submission redelivery settings.
type RelayConfig struct {
	Interval    time.Duration `yaml:"interval"`     // sweep interval for pending submissions
	MaxAttempts int           `yaml:"max_attempts"` // attempts before a submission is marked failed
	BatchSize   int           `yaml:"batch_size"`   // pending submissions processed per sweep
	Retention   time.Duration `yaml:"retention"`    // how long relayed/failed submissions are kept
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Base URLs per deployment environment. An explicit base_url always wins.
var environmentBaseURLs = map[string]string{
	EnvDevelopment: "http://localhost:5105",
	EnvStaging:     "https://api-staging.international-center.org",
	EnvProduction:  "https://api.international-center.org",
}

const (
	EnvDevelopment = "Development"
	EnvStaging     = "Staging"
	EnvProduction  = "Production"
)

// ResolveBaseURL returns the platform base URL for the configured
// environment, preferring an explicit base_url override.
func (p PlatformConfig) ResolveBaseURL() (string, error) {
	if p.BaseURL != "" {
		return p.BaseURL, nil
	}
	url, ok := environmentBaseURLs[p.Environment]
	if !ok {
		return "", fmt.Errorf("unknown environment %q and no base_url set", p.Environment)
	}
	return url, nil
}
