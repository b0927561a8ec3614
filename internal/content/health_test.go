package content

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
	"github.com/axiom-software-co/sitenav/internal/infra/storage/memory"
)

type stubUpstream struct {
	health rest.Health
	calls  int
}

func (s *stubUpstream) HealthCheck(ctx context.Context) rest.Health {
	s.calls++
	return s.health
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

type failingStore struct {
	*memory.SubmissionRepo
	pingErr error
}

func (s *failingStore) Ping(ctx context.Context) error { return s.pingErr }

func TestCheckHealth_AllHealthy(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthHealthy}}
	store := memory.NewSubmissionRepo(memory.NewMemoryStorage())
	monitor := NewMonitor(upstream, &stubPinger{}, store)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusHealthy {
		t.Fatalf("expected healthy, got %q", report.SystemStatus)
	}
	if len(report.Components) != 3 {
		t.Fatalf("expected 3 components, got %d", len(report.Components))
	}
	for name, c := range report.Components {
		if c.Status != StatusHealthy {
			t.Errorf("expected %s healthy, got %q", name, c.Status)
		}
	}
}

func TestCheckHealth_PlatformDownDegrades(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthUnhealthy, Detail: "http 503"}}
	store := memory.NewSubmissionRepo(memory.NewMemoryStorage())
	monitor := NewMonitor(upstream, &stubPinger{}, store)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusDegraded {
		t.Fatalf("expected degraded, got %q", report.SystemStatus)
	}
	if report.Components["platform"].Status != StatusDegraded {
		t.Errorf("expected platform degraded, got %q", report.Components["platform"].Status)
	}
	if report.Components["platform"].Detail != "http 503" {
		t.Errorf("expected probe detail surfaced, got %q", report.Components["platform"].Detail)
	}
}

func TestCheckHealth_StoreDownCritical(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthHealthy}}
	store := &failingStore{
		SubmissionRepo: memory.NewSubmissionRepo(memory.NewMemoryStorage()),
		pingErr:        errors.New("connection refused"),
	}
	monitor := NewMonitor(upstream, &stubPinger{}, store)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusCritical {
		t.Fatalf("expected critical, got %q", report.SystemStatus)
	}
	if report.Components["store"].Status != StatusCritical {
		t.Errorf("expected store critical, got %q", report.Components["store"].Status)
	}
}

func TestCheckHealth_CacheDownDegrades(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthHealthy}}
	store := memory.NewSubmissionRepo(memory.NewMemoryStorage())
	monitor := NewMonitor(upstream, &stubPinger{err: errors.New("redis down")}, store)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusDegraded {
		t.Fatalf("expected degraded, got %q", report.SystemStatus)
	}
}

func TestCheckHealth_NoCacheConfigured(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthHealthy}}
	store := memory.NewSubmissionRepo(memory.NewMemoryStorage())
	monitor := NewMonitor(upstream, nil, store)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusHealthy {
		t.Fatalf("expected healthy, got %q", report.SystemStatus)
	}
	if _, ok := report.Components["cache"]; ok {
		t.Error("expected no cache component when cache is not configured")
	}
}

func TestCheckHealth_BacklogDegrades(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthHealthy}}
	store := memory.NewSubmissionRepo(memory.NewMemoryStorage())
	for i := 0; i < pendingBacklogLimit+1; i++ {
		sub := &domain.Submission{
			ID:      fmt.Sprintf("sub-%d", i),
			Kind:    domain.SubmissionKindContact,
			Payload: []byte(`{}`),
		}
		if err := store.Save(context.Background(), sub); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	monitor := NewMonitor(upstream, &stubPinger{}, store)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusDegraded {
		t.Fatalf("expected degraded, got %q", report.SystemStatus)
	}
	if report.PendingSubmissions != pendingBacklogLimit+1 {
		t.Errorf("expected %d pending, got %d", pendingBacklogLimit+1, report.PendingSubmissions)
	}
}

func TestCheckHealth_ResultReusedBetweenChecks(t *testing.T) {
	upstream := &stubUpstream{health: rest.Health{Status: rest.HealthHealthy}}
	store := memory.NewSubmissionRepo(memory.NewMemoryStorage())
	monitor := NewMonitor(upstream, &stubPinger{}, store)

	monitor.CheckHealth(context.Background())
	monitor.CheckHealth(context.Background())

	if upstream.calls != 1 {
		t.Fatalf("expected one upstream probe, got %d", upstream.calls)
	}
}
