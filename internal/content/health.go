package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
	"github.com/axiom-software-co/sitenav/internal/infra/storage"
)

// SystemStatus represents the overall health state of the system or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// ComponentHealth contains health details for a single dependency.
type ComponentHealth struct {
	Status SystemStatus `json:"status"`
	Detail string       `json:"detail,omitempty"`
}

// HealthReport contains the full system health report.
type HealthReport struct {
	SystemStatus       SystemStatus               `json:"system_status"`
	Components         map[string]ComponentHealth `json:"components"`
	PendingSubmissions int                        `json:"pending_submissions"`
}

// UpstreamChecker probes the platform API health endpoint.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) rest.Health
}

// CachePinger reports whether the navigation cache is reachable.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// pendingBacklogLimit is the queued-submission count above which the
// store component is reported degraded.
const pendingBacklogLimit = 50

// Monitor aggregates health status from the platform, the cache and
// the submission store.
type Monitor struct {
	upstream   UpstreamChecker
	cache      CachePinger
	store      storage.SubmissionRepository
	lastCheck  time.Time
	lastReport HealthReport
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor. cache may be nil when no
// cache is configured.
func NewMonitor(upstream UpstreamChecker, cache CachePinger, store storage.SubmissionRepository) *Monitor {
	return &Monitor{
		upstream: upstream,
		cache:    cache,
		store:    store,
	}
}

// CheckHealth probes all dependencies and returns the aggregated report.
func (m *Monitor) CheckHealth(ctx context.Context) HealthReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Rate limit checks (max once per 10s) to avoid spamming dependencies
	if time.Since(m.lastCheck) < 10*time.Second && len(m.lastReport.Components) > 0 {
		return m.lastReport
	}

	report := HealthReport{
		SystemStatus: StatusHealthy,
		Components:   make(map[string]ComponentHealth),
	}

	// 1. Platform API. The site keeps serving cached or degraded
	// projections when the platform is down, so this never goes critical.
	platform := ComponentHealth{Status: StatusHealthy}
	if probe := m.upstream.HealthCheck(ctx); probe.Status != rest.HealthHealthy {
		platform.Status = StatusDegraded
		platform.Detail = probe.Detail
	}
	report.Components["platform"] = platform

	// 2. Cache, when configured.
	if m.cache != nil {
		cache := ComponentHealth{Status: StatusHealthy}
		if err := m.cache.Ping(ctx); err != nil {
			cache.Status = StatusDegraded
			cache.Detail = err.Error()
		}
		report.Components["cache"] = cache
	}

	// 3. Submission store. Form intake depends on it, so an unreachable
	// store is critical.
	store := ComponentHealth{Status: StatusHealthy}
	if err := m.store.Ping(ctx); err != nil {
		store.Status = StatusCritical
		store.Detail = err.Error()
	} else {
		pending, err := m.store.CountByStatus(ctx, domain.SubmissionStatusPending)
		if err == nil {
			report.PendingSubmissions = pending
			if pending > pendingBacklogLimit {
				store.Status = StatusDegraded
				store.Detail = fmt.Sprintf("%d submissions queued for relay", pending)
			}
		}
	}
	report.Components["store"] = store

	// Aggregate status (worst case wins)
	for _, c := range report.Components {
		if c.Status == StatusCritical {
			report.SystemStatus = StatusCritical
			break
		}
		if c.Status == StatusDegraded {
			report.SystemStatus = StatusDegraded
		}
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}
