package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/storage"
)

// MemoryStorage keeps submissions in process memory. Used when no
// database is configured; queued submissions do not survive restarts.
type MemoryStorage struct {
	submissions map[string]*domain.Submission
	mu          sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		submissions: make(map[string]*domain.Submission),
	}
}

// SubmissionRepo implements storage.SubmissionRepository in memory.
type SubmissionRepo struct {
	store *MemoryStorage
}

func NewSubmissionRepo(store *MemoryStorage) *SubmissionRepo {
	return &SubmissionRepo{store: store}
}

func (r *SubmissionRepo) Save(ctx context.Context, sub *domain.Submission) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *sub
	if cp.Status == "" {
		cp.Status = domain.SubmissionStatusPending
	}
	now := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	r.store.submissions[cp.ID] = &cp
	return nil
}

func (r *SubmissionRepo) Update(ctx context.Context, sub *domain.Submission) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.submissions[sub.ID]
	if !ok {
		return storage.ErrSubmissionNotFound
	}

	cp := *sub
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	r.store.submissions[cp.ID] = &cp
	return nil
}

func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sub, ok := r.store.submissions[id]
	if !ok {
		return nil, storage.ErrSubmissionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *SubmissionRepo) ListPending(ctx context.Context, limit int) ([]*domain.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var pending []*domain.Submission
	for _, sub := range r.store.submissions {
		if sub.Status == domain.SubmissionStatusPending {
			cp := *sub
			pending = append(pending, &cp)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *SubmissionRepo) CountByStatus(
	ctx context.Context,
	status domain.SubmissionStatus,
) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, sub := range r.store.submissions {
		if sub.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *SubmissionRepo) DeleteFinishedBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for id, sub := range r.store.submissions {
		finished := sub.Status == domain.SubmissionStatusRelayed ||
			sub.Status == domain.SubmissionStatusFailed
		if finished && sub.UpdatedAt.Before(cutoff) {
			delete(r.store.submissions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *SubmissionRepo) Ping(ctx context.Context) error {
	return nil
}
