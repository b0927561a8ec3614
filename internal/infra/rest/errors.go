package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies a platform API failure.
type Kind int

const (
	KindGeneric Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
	KindServer
	KindTimeout
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "generic"
	}
}

// Error is a classified platform API failure. Status is the HTTP status
// code, 0 for network failures and 408 for client-side timeouts.
type Error struct {
	Kind          Kind
	Status        int
	Message       string
	Details       []string
	CorrelationID string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("http %d: %s (correlation: %s)", e.Status, e.Message, e.CorrelationID)
}

// Retryable reports whether the failure is worth another attempt.
// Server errors, rate limiting and timeouts qualify; network failures
// and client errors do not.
func (e *Error) Retryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests ||
		e.Status == http.StatusRequestTimeout
}

// errorEnvelope is the error body shape returned by the platform API.
type errorEnvelope struct {
	Message       string   `json:"message"`
	Errors        []string `json:"errors"`
	CorrelationID string   `json:"correlationId"`
}

// Classify maps a non-2xx platform response to a typed error. The body is
// parsed as an error envelope when possible; missing fields fall back to
// defaults derived from the status code.
func Classify(status int, body []byte) *Error {
	var env errorEnvelope
	// Malformed bodies are fine, defaults apply.
	_ = json.Unmarshal(body, &env)

	msg := env.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}

	correlationID := env.CorrelationID
	if correlationID == "" {
		correlationID = "unknown"
	}

	return &Error{
		Kind:          kindForStatus(status),
		Status:        status,
		Message:       msg,
		Details:       env.Errors,
		CorrelationID: correlationID,
	}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindServer
	default:
		return KindGeneric
	}
}

func newTimeoutError(correlationID string, timeout string) *Error {
	return &Error{
		Kind:          KindTimeout,
		Status:        http.StatusRequestTimeout,
		Message:       fmt.Sprintf("request timed out after %s", timeout),
		CorrelationID: correlationID,
	}
}

func newNetworkError(err error, correlationID string) *Error {
	return &Error{
		Kind:          KindNetwork,
		Status:        0,
		Message:       err.Error(),
		CorrelationID: correlationID,
	}
}
