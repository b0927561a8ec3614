package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if _, err := cfg.Platform.ResolveBaseURL(); err != nil {
		return nil, fmt.Errorf("invalid platform config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = 1
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 5
	}

	if cfg.Platform.Environment == "" {
		cfg.Platform.Environment = EnvDevelopment
	}
	if cfg.Platform.Timeout == 0 {
		cfg.Platform.Timeout = 10 * time.Second
	}
	if cfg.Platform.RetryAttempts == 0 {
		cfg.Platform.RetryAttempts = 3
	}
	if cfg.Platform.PageSize == 0 {
		cfg.Platform.PageSize = 100
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Cache.Retention == 0 {
		cfg.Cache.Retention = time.Hour
	}

	if cfg.Relay.Interval == 0 {
		cfg.Relay.Interval = time.Minute
	}
	if cfg.Relay.MaxAttempts == 0 {
		cfg.Relay.MaxAttempts = 5
	}
	if cfg.Relay.BatchSize == 0 {
		cfg.Relay.BatchSize = 20
	}
	if cfg.Relay.Retention == 0 {
		cfg.Relay.Retention = 30 * 24 * time.Hour
	}
}
