package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/axiom-software-co/sitenav/internal/content/metrics"
)

// Config defines platform API client behavior.
type Config struct {
	BaseURL       string
	Timeout       time.Duration // per-attempt timeout
	RetryAttempts int
}

// DefaultConfig provides sensible defaults.
var DefaultConfig = Config{
	Timeout:       10 * time.Second,
	RetryAttempts: 3,
}

// Client is an HTTP client for the platform API with per-attempt timeouts,
// error classification and exponential backoff on retryable failures.
type Client struct {
	baseURL    string
	timeout    time.Duration
	attempts   int
	httpClient *http.Client

	// sleep waits between retry attempts, replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new platform API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig.Timeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultConfig.RetryAttempts
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.Timeout,
		attempts: cfg.RetryAttempts,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sleep: sleepContext,
	}
}

// BaseURL returns the configured platform base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes a single platform API request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any // marshaled to JSON when non-nil
}

// Do executes a request with retry and decodes the JSON response body into
// T. Non-JSON bodies are returned verbatim when T is string and rejected
// otherwise.
func Do[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var zero T

	body, contentType, err := c.execute(ctx, req)
	if err != nil {
		return zero, err
	}

	if !isJSONContent(contentType) {
		if s, ok := any(&zero).(*string); ok {
			*s = string(body)
			return zero, nil
		}
		return zero, fmt.Errorf("unexpected content type %q", contentType)
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// execute runs the retry loop around single attempts. Retryable failures
// back off exponentially; everything else surfaces immediately.
func (c *Client) execute(ctx context.Context, req Request) ([]byte, string, error) {
	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	// One correlation ID spans all attempts of a logical call.
	correlationID := uuid.NewString()

	var lastErr *Error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		body, contentType, err := c.attempt(ctx, req, payload, correlationID, attempt)
		if err == nil {
			metrics.PlatformRequests.WithLabelValues(req.Path, "success").Inc()
			return body, contentType, nil
		}

		// The caller gave up, stop regardless of classification.
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			return nil, "", err
		}
		if !apiErr.Retryable() {
			metrics.PlatformRequests.WithLabelValues(req.Path, "error").Inc()
			return nil, "", apiErr
		}

		lastErr = apiErr
		if attempt == c.attempts {
			break
		}

		delay := backoffDelay(attempt)
		slog.Warn("Platform request failed, retrying",
			"path", req.Path,
			"status", apiErr.Status,
			"attempt", attempt,
			"delay", delay,
		)
		metrics.PlatformRetries.WithLabelValues(req.Path).Inc()
		if err := c.sleep(ctx, delay); err != nil {
			return nil, "", err
		}
	}

	metrics.PlatformRequests.WithLabelValues(req.Path, "error").Inc()
	return nil, "", fmt.Errorf("failed after %d attempts: %w", c.attempts, lastErr)
}

// attempt performs one HTTP round trip under the per-attempt timeout.
func (c *Client) attempt(
	ctx context.Context,
	req Request,
	payload []byte,
	correlationID string,
	attempt int,
) ([]byte, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, target, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Correlation-Id", correlationID)
	httpReq.Header.Set("X-Retry-Attempt", strconv.Itoa(attempt))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.PlatformRequestDuration.WithLabelValues(req.Path).Observe(time.Since(start).Seconds())
	if err != nil {
		if isTimeout(err) {
			return nil, "", newTimeoutError(correlationID, c.timeout.String())
		}
		return nil, "", newNetworkError(err, correlationID)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, "", newTimeoutError(correlationID, c.timeout.String())
		}
		return nil, "", newNetworkError(err, correlationID)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", Classify(resp.StatusCode, body)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// Health reports the outcome of a platform health probe.
type Health struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// healthyBody is the literal body the platform health endpoint returns
// when all its checks pass.
const healthyBody = "Healthy"

// HealthCheck probes the platform health endpoint with a single attempt
// and no retries. It never returns an error; any failure is reported as
// an unhealthy status.
func (c *Client) HealthCheck(ctx context.Context) Health {
	req := Request{Method: http.MethodGet, Path: "/health"}
	body, _, err := c.attempt(ctx, req, nil, uuid.NewString(), 1)
	if err != nil {
		return Health{Status: HealthUnhealthy, Detail: err.Error()}
	}
	if string(body) != healthyBody {
		return Health{
			Status: HealthUnhealthy,
			Detail: fmt.Sprintf("unexpected health response %q", string(body)),
		}
	}
	return Health{Status: HealthHealthy}
}

func isJSONContent(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}

// isTimeout distinguishes per-attempt deadline expiry from other
// transport failures.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
