package domain

import (
	"encoding/json"
	"time"
)

// Submission represents a visitor form submission queued for relay to the
// platform API
type Submission struct {
	ID        string           `json:"id"`
	Kind      SubmissionKind   `json:"kind"`
	Payload   json.RawMessage  `json:"payload"`
	Status    SubmissionStatus `json:"status"`
	Attempts  int              `json:"attempts"`
	LastError string           `json:"last_error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type SubmissionKind string

const (
	SubmissionKindContact    SubmissionKind = "contact"
	SubmissionKindNewsletter SubmissionKind = "newsletter"
)

type SubmissionStatus string

const (
	SubmissionStatusPending SubmissionStatus = "pending"
	SubmissionStatusRelayed SubmissionStatus = "relayed"
	SubmissionStatusFailed  SubmissionStatus = "failed"
)
