package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/axiom-software-co/sitenav/internal/control"
	"github.com/axiom-software-co/sitenav/internal/core/config"
)

func TestGracefulShutdown(t *testing.T) {
	// Memory storage and no cache, enough to start every component.
	cfg := config.AppConfig{
		Server: config.ServerConfig{Port: freePort(t), RateLimitRPS: 1, RateLimitBurst: 5},
		Platform: config.PlatformConfig{
			Environment:   config.EnvDevelopment,
			Timeout:       time.Second,
			RetryAttempts: 1,
			PageSize:      100,
		},
		Relay: config.RelayConfig{Interval: time.Second, MaxAttempts: 3, BatchSize: 20},
	}

	app, err := control.NewApp(cfg)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Failed to start app: %v", err)
	}

	// Let it run for a bit
	time.Sleep(500 * time.Millisecond)

	// Trigger shutdown
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
