package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	redisclient "github.com/axiom-software-co/sitenav/internal/infra/redis"
)

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop all cached navigation projections",
	Run:   runFlush,
}

func init() {
	rootCmd.AddCommand(flushCmd)
}

func runFlush(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if cfg.Redis.URL == "" {
		fmt.Println("No Redis cache configured, nothing to flush")
		return
	}

	redisClient, err := redisclient.NewClient(cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cache := redisclient.NewNavCache(redisClient, cfg.Cache.TTL, cfg.Cache.Retention)
	if err := cache.Flush(ctx); err != nil {
		slog.Error("Failed to flush cache", "error", err)
		os.Exit(1)
	}

	fmt.Println("Navigation cache flushed")
}
