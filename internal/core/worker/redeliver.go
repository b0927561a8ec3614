package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/axiom-software-co/sitenav/internal/content/metrics"
	"github.com/axiom-software-co/sitenav/internal/core/config"
	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/storage"
)

// Redelivery retries relay of a single pending submission and persists
// the outcome.
type Redelivery interface {
	Redeliver(ctx context.Context, sub *domain.Submission) error
}

// Redeliverer periodically retries pending submissions and prunes
// finished ones past retention.
type Redeliverer struct {
	cfg   config.RelayConfig
	relay Redelivery
	store storage.SubmissionRepository
}

// NewRedeliverer creates a new Redeliverer worker.
func NewRedeliverer(cfg config.RelayConfig, relay Redelivery, store storage.SubmissionRepository) *Redeliverer {
	return &Redeliverer{
		cfg:   cfg,
		relay: relay,
		store: store,
	}
}

// Start runs the redelivery loop until the context is cancelled.
func (r *Redeliverer) Start(ctx context.Context) {
	interval := r.cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial sweep
	r.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Redeliverer) sweep(ctx context.Context) {
	pending, err := r.store.ListPending(ctx, r.cfg.BatchSize)
	if err != nil {
		slog.Error("Failed to list pending submissions", "error", err)
		return
	}

	for _, sub := range pending {
		if ctx.Err() != nil {
			return
		}
		if err := r.relay.Redeliver(ctx, sub); err != nil {
			slog.Warn("Submission redelivery failed",
				"id", sub.ID,
				"kind", sub.Kind,
				"attempts", sub.Attempts,
				"error", err)
		}
	}

	if r.cfg.Retention > 0 {
		cutoff := time.Now().Add(-r.cfg.Retention)
		removed, err := r.store.DeleteFinishedBefore(ctx, cutoff)
		if err != nil {
			slog.Error("Failed to prune finished submissions", "error", err)
		} else if removed > 0 {
			slog.Info("Pruned finished submissions", "count", removed)
		}
	}

	count, err := r.store.CountByStatus(ctx, domain.SubmissionStatusPending)
	if err != nil {
		return
	}
	metrics.PendingSubmissions.Set(float64(count))
}
