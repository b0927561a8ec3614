package rest

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantKind        Kind
		wantMessage     string
		wantCorrelation string
		wantDetails     int
	}{
		{
			name:            "bad request with envelope",
			status:          400,
			body:            `{"message":"validation failed","errors":["name is required"],"correlationId":"abc-123"}`,
			wantKind:        KindBadRequest,
			wantMessage:     "validation failed",
			wantCorrelation: "abc-123",
			wantDetails:     1,
		},
		{
			name:            "unauthorized",
			status:          401,
			body:            `{"message":"token expired"}`,
			wantKind:        KindUnauthorized,
			wantMessage:     "token expired",
			wantCorrelation: "unknown",
		},
		{
			name:            "forbidden",
			status:          403,
			body:            `{}`,
			wantKind:        KindForbidden,
			wantMessage:     "Forbidden",
			wantCorrelation: "unknown",
		},
		{
			name:            "not found",
			status:          404,
			body:            `{"message":"service not found"}`,
			wantKind:        KindNotFound,
			wantMessage:     "service not found",
			wantCorrelation: "unknown",
		},
		{
			name:            "rate limited",
			status:          429,
			body:            "",
			wantKind:        KindRateLimited,
			wantMessage:     "Too Many Requests",
			wantCorrelation: "unknown",
		},
		{
			name:            "internal server error",
			status:          500,
			body:            `{"correlationId":"xyz-789"}`,
			wantKind:        KindServer,
			wantMessage:     "Internal Server Error",
			wantCorrelation: "xyz-789",
		},
		{
			name:            "bad gateway",
			status:          502,
			body:            "",
			wantKind:        KindServer,
			wantMessage:     "Bad Gateway",
			wantCorrelation: "unknown",
		},
		{
			name:            "service unavailable",
			status:          503,
			body:            "",
			wantKind:        KindServer,
			wantMessage:     "Service Unavailable",
			wantCorrelation: "unknown",
		},
		{
			name:            "gateway timeout",
			status:          504,
			body:            "",
			wantKind:        KindServer,
			wantMessage:     "Gateway Timeout",
			wantCorrelation: "unknown",
		},
		{
			name:            "unmapped status falls back to generic",
			status:          418,
			body:            "",
			wantKind:        KindGeneric,
			wantMessage:     "I'm a teapot",
			wantCorrelation: "unknown",
		},
		{
			name:            "malformed body uses defaults",
			status:          500,
			body:            `<html>upstream exploded</html>`,
			wantKind:        KindServer,
			wantMessage:     "Internal Server Error",
			wantCorrelation: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.status, []byte(tt.body))

			if err.Kind != tt.wantKind {
				t.Errorf("Expected kind %v, got %v", tt.wantKind, err.Kind)
			}
			if err.Status != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, err.Status)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, err.Message)
			}
			if err.CorrelationID != tt.wantCorrelation {
				t.Errorf("Expected correlation %q, got %q", tt.wantCorrelation, err.CorrelationID)
			}
			if len(err.Details) != tt.wantDetails {
				t.Errorf("Expected %d details, got %d", tt.wantDetails, len(err.Details))
			}
		})
	}
}

func TestErrorRetryable(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		expect bool
	}{
		{"internal server error", &Error{Status: 500}, true},
		{"not implemented", &Error{Status: 501}, true},
		{"bad gateway", &Error{Status: 502}, true},
		{"service unavailable", &Error{Status: 503}, true},
		{"gateway timeout", &Error{Status: 504}, true},
		{"rate limited", &Error{Status: 429}, true},
		{"client timeout", &Error{Status: 408}, true},
		{"bad request", &Error{Status: 400}, false},
		{"unauthorized", &Error{Status: 401}, false},
		{"forbidden", &Error{Status: 403}, false},
		{"not found", &Error{Status: 404}, false},
		{"network failure", &Error{Status: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Retryable(); got != tt.expect {
				t.Errorf("Retryable() for status %d = %v, want %v", tt.err.Status, got, tt.expect)
			}
		})
	}
}
