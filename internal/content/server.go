package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/axiom-software-co/sitenav/internal/content/metrics"
	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
)

// maxFormBody caps form request bodies. The largest field is the 4000
// character contact message.
const maxFormBody = 64 << 10

// Server exposes the navigation, form and health endpoints.
type Server struct {
	loader  *Loader
	relay   *FormRelay
	monitor *Monitor
	limiter *RateLimiter
	server  *http.Server
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(loader *Loader, relay *FormRelay, monitor *Monitor, limiter *RateLimiter, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		loader:  loader,
		relay:   relay,
		monitor: monitor,
		limiter: limiter,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/api/navigation", s.handleNavigation)
	mux.HandleFunc("/api/services", s.handleServices)
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/research", s.handleResearch)
	mux.HandleFunc("/api/contact", s.limit(s.handleContact))
	mux.HandleFunc("/api/newsletter", s.limit(s.handleNewsletter))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/detailed", s.handleDetailed)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler returns the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.loader.Navigation(r.Context()))
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, s.loader.ServicesPage(r.Context(), category))
}

type newsResponse struct {
	Data   []domain.NewsArticle `json:"data"`
	Status domain.DataStatus    `json:"status"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	articles, status := s.loader.News(r.Context())
	writeJSON(w, http.StatusOK, newsResponse{Data: articles, Status: status})
}

type researchResponse struct {
	Data   []domain.ResearchArticle `json:"data"`
	Status domain.DataStatus        `json:"status"`
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	articles, status := s.loader.Research(r.Context())
	writeJSON(w, http.StatusOK, researchResponse{Data: articles, Status: status})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var form domain.ContactRequest
	if !decodeBody(w, r, &form) {
		return
	}
	sub, err := s.relay.SubmitContact(r.Context(), form)
	s.writeSubmission(w, r, sub, err)
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var signup domain.NewsletterSignup
	if !decodeBody(w, r, &signup) {
		return
	}
	sub, err := s.relay.SubscribeNewsletter(r.Context(), signup)
	s.writeSubmission(w, r, sub, err)
}

type submissionResponse struct {
	ID     string                  `json:"id"`
	Status domain.SubmissionStatus `json:"status"`
}

// writeSubmission maps a relay outcome onto the response: accepted
// submissions get 202 even when relay is deferred, validation failures
// get 400, platform rejections get 502.
func (s *Server) writeSubmission(w http.ResponseWriter, r *http.Request, sub domain.Submission, err error) {
	if err == nil {
		writeJSON(w, http.StatusAccepted, submissionResponse{ID: sub.ID, Status: sub.Status})
		return
	}
	if IsValidationError(err) {
		writeError(w, http.StatusBadRequest, "validation failed", ValidationDetails(err))
		return
	}
	var restErr *rest.Error
	if errors.As(err, &restErr) && restErr.Status != 0 {
		writeError(w, http.StatusBadGateway, "platform rejected submission", nil)
		return
	}
	slog.Error("Form submission failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "submission failed", nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.monitor.CheckHealth(r.Context())

	status := http.StatusOK
	if report.SystemStatus == StatusCritical {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"status": string(report.SystemStatus)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.monitor.CheckHealth(r.Context()))
}

// limit wraps form handlers with the per-client rate limiter.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			metrics.RateLimitedRequests.Inc()
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next(w, r)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}
