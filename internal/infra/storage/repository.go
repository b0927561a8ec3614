package storage

import (
	"context"
	"errors"
	"time"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
)

var (
	// ErrSubmissionNotFound is returned when a submission doesn't exist
	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmissionRepository handles queued form submission storage
type SubmissionRepository interface {
	// Save stores a new submission
	Save(ctx context.Context, sub *domain.Submission) error

	// Update persists relay outcome changes (status, attempts, last error)
	Update(ctx context.Context, sub *domain.Submission) error

	// GetByID retrieves a submission by ID
	GetByID(ctx context.Context, id string) (*domain.Submission, error)

	// ListPending retrieves submissions awaiting relay, oldest first
	ListPending(ctx context.Context, limit int) ([]*domain.Submission, error)

	// CountByStatus returns the number of submissions with the given status
	CountByStatus(ctx context.Context, status domain.SubmissionStatus) (int, error)

	// DeleteFinishedBefore removes relayed and failed submissions last
	// updated before the cutoff, returning how many were removed
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping verifies the backing store is reachable
	Ping(ctx context.Context) error
}
