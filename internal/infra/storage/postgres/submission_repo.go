package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/storage"
)

// SubmissionRepo implements storage.SubmissionRepository using PostgreSQL.
type SubmissionRepo struct {
	db *DB
}

// NewSubmissionRepo creates a new PostgreSQL submission repository.
func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

type submissionRow struct {
	ID        string    `db:"id"`
	Kind      string    `db:"kind"`
	Payload   []byte    `db:"payload"`
	Status    string    `db:"status"`
	Attempts  int       `db:"attempts"`
	LastError string    `db:"last_error"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r submissionRow) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:        r.ID,
		Kind:      domain.SubmissionKind(r.Kind),
		Payload:   json.RawMessage(r.Payload),
		Status:    domain.SubmissionStatus(r.Status),
		Attempts:  r.Attempts,
		LastError: r.LastError,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Save stores a new submission.
func (r *SubmissionRepo) Save(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, kind, payload, status, attempts, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	status := string(sub.Status)
	if status == "" {
		status = string(domain.SubmissionStatusPending)
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		sub.ID,
		string(sub.Kind),
		[]byte(sub.Payload),
		status,
		sub.Attempts,
		sub.LastError,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// Update persists relay outcome changes.
func (r *SubmissionRepo) Update(ctx context.Context, sub *domain.Submission) error {
	query := `
		UPDATE submissions
		SET status = $2, attempts = $3, last_error = $4, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(
		ctx,
		query,
		sub.ID,
		string(sub.Status),
		sub.Attempts,
		sub.LastError,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return storage.ErrSubmissionNotFound
	}
	return nil
}

// GetByID retrieves a submission by ID.
func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `
		SELECT id, kind, payload, status, attempts, last_error, created_at, updated_at
		FROM submissions
		WHERE id = $1
	`

	var row submissionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return row.toDomain(), nil
}

// ListPending retrieves submissions awaiting relay, oldest first.
func (r *SubmissionRepo) ListPending(ctx context.Context, limit int) ([]*domain.Submission, error) {
	query := `
		SELECT id, kind, payload, status, attempts, last_error, created_at, updated_at
		FROM submissions
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
	`

	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list pending submissions: %w", err)
	}

	subs := make([]*domain.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toDomain())
	}
	return subs, nil
}

// CountByStatus returns the number of submissions with the given status.
func (r *SubmissionRepo) CountByStatus(
	ctx context.Context,
	status domain.SubmissionStatus,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM submissions
		WHERE status = $1
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, string(status)); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// DeleteFinishedBefore removes relayed and failed submissions last updated
// before the cutoff.
func (r *SubmissionRepo) DeleteFinishedBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	query := `
		DELETE FROM submissions
		WHERE status IN ('relayed', 'failed') AND updated_at < $1
	`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune submissions: %w", err)
	}
	return res.RowsAffected()
}

// Ping verifies the database is reachable.
func (r *SubmissionRepo) Ping(ctx context.Context) error {
	return r.db.Health(ctx)
}
