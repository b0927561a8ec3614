package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/axiom-software-co/sitenav/internal/content"
	"github.com/axiom-software-co/sitenav/internal/infra/platform"
	redisclient "github.com/axiom-software-co/sitenav/internal/infra/redis"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the navigation projections from live platform data",
	Run:   runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	baseURL, err := cfg.Platform.ResolveBaseURL()
	if err != nil {
		slog.Error("Failed to resolve platform base url", "error", err)
		os.Exit(1)
	}

	restClient := rest.NewClient(rest.Config{
		BaseURL:       baseURL,
		Timeout:       cfg.Platform.Timeout,
		RetryAttempts: cfg.Platform.RetryAttempts,
	})

	var navCache content.NavCache
	if cfg.Redis.URL != "" {
		redisClient, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("Failed to connect to Redis, rebuilt data will not be cached", "error", err)
		} else {
			defer func() {
				_ = redisClient.Close()
			}()
			navCache = redisclient.NewNavCache(redisClient, cfg.Cache.TTL, cfg.Cache.Retention)
		}
	}

	loader := content.NewLoader(platform.NewClient(restClient), navCache, cfg.Platform.PageSize)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	nav, err := loader.Refresh(ctx)
	if err != nil {
		slog.Error("Failed to rebuild navigation", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "CATEGORY\tMENU ITEMS\tFOOTER LINKS")
	for i, section := range nav.Menu {
		links := 0
		if i < len(nav.Footer) {
			links = len(nav.Footer[i].Links)
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\n", section.Category, len(section.Items), links)
	}
	_ = w.Flush()

	fmt.Printf("Featured: %s / %s\n", nav.Featured.Primary.CategoryName, nav.Featured.Secondary.CategoryName)
}
