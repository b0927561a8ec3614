package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/axiom-software-co/sitenav/internal/control"
	"github.com/axiom-software-co/sitenav/internal/core/config"
	"github.com/axiom-software-co/sitenav/internal/core/domain"
)

// platformStub fakes the upstream platform API with a small fixed catalog.
func platformStub() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"s-1","title":"Annual Checkup","slug":"annual-checkup","categoryId":"c-1"},
			{"id":"s-2","title":"Cardiology Consult","slug":"cardiology-consult","categoryId":"c-2","featured":true}
		]}`)
	})

	mux.HandleFunc("/services/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"c-1","name":"Primary Care","slug":"primary-care","featured1":true},
			{"id":"c-2","name":"Specialty Care","slug":"specialty-care","featured2":true}
		]}`)
	})

	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"n-1","title":"New Clinic Wing","slug":"new-clinic-wing","publishedAt":"2025-11-03T10:00:00Z"}
		]}`)
	})

	mux.HandleFunc("/research", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"r-1","title":"Telehealth Outcomes Study","slug":"telehealth-outcomes","publishedAt":"2025-10-20T09:00:00Z"}
		]}`)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "Healthy")
	})

	mux.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"id":"rcpt-1"}}`)
	})

	mux.HandleFunc("/newsletter", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"id":"rcpt-2"}}`)
	})

	return httptest.NewServer(mux)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func waitForServer(t *testing.T, base string) {
	t.Helper()
	for i := 0; i < 50; i++ {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("Server did not come up within 5s")
}

func TestGateway_EndToEnd(t *testing.T) {
	upstream := platformStub()
	defer upstream.Close()

	port := freePort(t)
	cfg := config.AppConfig{
		Server: config.ServerConfig{Port: port, RateLimitRPS: 100, RateLimitBurst: 100},
		Platform: config.PlatformConfig{
			Environment:   config.EnvDevelopment,
			BaseURL:       upstream.URL,
			Timeout:       5 * time.Second,
			RetryAttempts: 1,
			PageSize:      100,
		},
		Relay: config.RelayConfig{
			Interval:    time.Hour,
			MaxAttempts: 3,
			BatchSize:   20,
		},
	}

	app, err := control.NewApp(cfg)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitForServer(t, base)

	// Navigation is built from the stubbed catalog.
	resp, err := http.Get(base + "/api/navigation")
	if err != nil {
		t.Fatalf("Navigation request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var nav domain.NavigationData
	if err := json.NewDecoder(resp.Body).Decode(&nav); err != nil {
		t.Fatalf("Failed to decode navigation: %v", err)
	}
	if nav.Status != domain.DataStatusOK {
		t.Errorf("Expected ok status, got %q", nav.Status)
	}
	if len(nav.Menu) != 2 {
		t.Errorf("Expected 2 menu sections, got %d", len(nav.Menu))
	}
	if nav.Featured.Primary.CategoryName != "Primary Care" {
		t.Errorf("Expected Primary Care featured, got %q", nav.Featured.Primary.CategoryName)
	}

	// Contact form round trip.
	contact := strings.NewReader(`{"name":"Ana Pereira","email":"ana@example.org","message":"I would like to book an appointment."}`)
	resp2, err := http.Post(base+"/api/contact", "application/json", contact)
	if err != nil {
		t.Fatalf("Contact request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", resp2.StatusCode)
	}

	var sub struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&sub); err != nil {
		t.Fatalf("Failed to decode submission: %v", err)
	}
	if sub.Status != "relayed" {
		t.Errorf("Expected relayed submission, got %q", sub.Status)
	}

	// Health reflects the healthy stub.
	resp3, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 health, got %d", resp3.StatusCode)
	}
}

func TestGateway_DegradedWhenPlatformDown(t *testing.T) {
	// Point the app at a closed port so every platform call fails.
	deadPort := freePort(t)
	port := freePort(t)

	cfg := config.AppConfig{
		Server: config.ServerConfig{Port: port, RateLimitRPS: 100, RateLimitBurst: 100},
		Platform: config.PlatformConfig{
			Environment:   config.EnvDevelopment,
			BaseURL:       fmt.Sprintf("http://127.0.0.1:%d", deadPort),
			Timeout:       time.Second,
			RetryAttempts: 1,
			PageSize:      100,
		},
		Relay: config.RelayConfig{Interval: time.Hour, MaxAttempts: 3, BatchSize: 20},
	}

	app, err := control.NewApp(cfg)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitForServer(t, base)

	resp, err := http.Get(base + "/api/navigation")
	if err != nil {
		t.Fatalf("Navigation request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 even when degraded, got %d", resp.StatusCode)
	}

	var nav domain.NavigationData
	if err := json.NewDecoder(resp.Body).Decode(&nav); err != nil {
		t.Fatalf("Failed to decode navigation: %v", err)
	}
	if nav.Status != domain.DataStatusDegraded {
		t.Errorf("Expected degraded status, got %q", nav.Status)
	}
	if nav.Menu == nil || len(nav.Menu) != 0 {
		t.Errorf("Expected empty non-nil menu, got %#v", nav.Menu)
	}
}
