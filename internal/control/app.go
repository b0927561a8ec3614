package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pressly/goose/v3"

	"github.com/axiom-software-co/sitenav/internal/content"
	"github.com/axiom-software-co/sitenav/internal/core/config"
	"github.com/axiom-software-co/sitenav/internal/core/worker"
	"github.com/axiom-software-co/sitenav/internal/infra/platform"
	redisclient "github.com/axiom-software-co/sitenav/internal/infra/redis"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
	"github.com/axiom-software-co/sitenav/internal/infra/storage"
	"github.com/axiom-software-co/sitenav/internal/infra/storage/memory"
	"github.com/axiom-software-co/sitenav/internal/infra/storage/postgres"
)

// App is the main application struct that wires the gateway together
// and manages its lifecycle.
type App struct {
	cfg         config.AppConfig
	server      *content.Server
	redeliverer *worker.Redeliverer
	db          *postgres.DB
	redisClient *redisclient.Client
	log         *slog.Logger
}

// NewApp creates a new App instance with all dependencies initialized.
func NewApp(cfg config.AppConfig) (*App, error) {

	// 1. Platform API client
	baseURL, err := cfg.Platform.ResolveBaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve platform base url: %w", err)
	}

	restClient := rest.NewClient(rest.Config{
		BaseURL:       baseURL,
		Timeout:       cfg.Platform.Timeout,
		RetryAttempts: cfg.Platform.RetryAttempts,
	})
	platformClient := platform.NewClient(restClient)
	slog.Info("Platform API configured", "environment", cfg.Platform.Environment, "base_url", baseURL)

	// 2. Navigation cache. The cache is an optional layer; a missing or
	// unreachable Redis only disables it.
	var redisClient *redisclient.Client
	var navCache content.NavCache
	var cachePinger content.CachePinger

	if cfg.Redis.URL != "" {
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("Failed to connect to Redis, cache disabled", "error", err)
			redisClient = nil
		} else {
			navCache = redisclient.NewNavCache(redisClient, cfg.Cache.TTL, cfg.Cache.Retention)
			cachePinger = redisClient
			slog.Info("Using Redis navigation cache", "ttl", cfg.Cache.TTL, "retention", cfg.Cache.Retention)
		}
	}

	// 3. Submission storage
	var store storage.SubmissionRepository
	var db *postgres.DB

	if cfg.Database.URL != "" {
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations. Goose needs the *sql.DB the sqlx handle wraps.
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.SQLDB(), "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		store = postgres.NewSubmissionRepo(db)
		slog.Info("Using PostgreSQL storage")
	} else {
		store = memory.NewSubmissionRepo(memory.NewMemoryStorage())
		slog.Info("Using Memory storage")
	}

	// 4. Content services
	loader := content.NewLoader(platformClient, navCache, cfg.Platform.PageSize)
	relay := content.NewFormRelay(platformClient, store, cfg.Relay.MaxAttempts)
	monitor := content.NewMonitor(restClient, cachePinger, store)
	limiter := content.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	server := content.NewServer(loader, relay, monitor, limiter, cfg.Server.Port)

	// 5. Redelivery worker
	redeliverer := worker.NewRedeliverer(cfg.Relay, relay, store)

	return &App{
		cfg:         cfg,
		server:      server,
		redeliverer: redeliverer,
		db:          db,
		redisClient: redisClient,
		log:         slog.Default(),
	}, nil
}

// Start starts the HTTP server and background workers.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP server failed", "error", err)
		}
	}()

	if a.db != nil {
		a.db.StartMetricsCollector(ctx)
	}

	go a.redeliverer.Start(ctx)

	a.log.Info("Server listening", "port", a.cfg.Server.Port)
	return nil
}

// Stop stops the application.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping server...")

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}

	return a.server.Stop(ctx)
}
