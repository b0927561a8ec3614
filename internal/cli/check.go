package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/axiom-software-co/sitenav/internal/infra/rest"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the platform API health endpoint",
	Run:   runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	baseURL, err := cfg.Platform.ResolveBaseURL()
	if err != nil {
		slog.Error("Failed to resolve platform base url", "error", err)
		os.Exit(1)
	}

	client := rest.NewClient(rest.Config{
		BaseURL:       baseURL,
		Timeout:       cfg.Platform.Timeout,
		RetryAttempts: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	health := client.HealthCheck(ctx)
	if health.Status != rest.HealthHealthy {
		fmt.Printf("Platform %s is %s: %s\n", baseURL, health.Status, health.Detail)
		os.Exit(1)
	}

	fmt.Printf("Platform %s is healthy\n", baseURL)
}
