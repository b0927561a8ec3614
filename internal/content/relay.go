package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/axiom-software-co/sitenav/internal/content/metrics"
	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
	"github.com/axiom-software-co/sitenav/internal/infra/storage"
)

// FormsAPI is the subset of the platform client used to relay submissions.
type FormsAPI interface {
	SubmitContact(ctx context.Context, form domain.ContactRequest) error
	SubscribeNewsletter(ctx context.Context, signup domain.NewsletterSignup) error
}

// FormRelay validates visitor form submissions, persists them, and
// relays them to the platform. Submissions that fail on a transient
// error stay pending so the redelivery worker can retry them.
type FormRelay struct {
	api         FormsAPI
	store       storage.SubmissionRepository
	validate    *validator.Validate
	maxAttempts int
}

// NewFormRelay creates a form relay. maxAttempts caps redeliveries per
// submission before it is marked failed.
func NewFormRelay(api FormsAPI, store storage.SubmissionRepository, maxAttempts int) *FormRelay {
	return &FormRelay{
		api:         api,
		store:       store,
		validate:    validator.New(),
		maxAttempts: maxAttempts,
	}
}

// SubmitContact accepts a contact form submission. Validation failures
// return a validator.ValidationErrors without persisting anything.
func (r *FormRelay) SubmitContact(ctx context.Context, form domain.ContactRequest) (domain.Submission, error) {
	if err := r.validate.Struct(form); err != nil {
		return domain.Submission{}, fmt.Errorf("validation failed: %w", err)
	}
	return r.accept(ctx, domain.SubmissionKindContact, form)
}

// SubscribeNewsletter accepts a newsletter signup.
func (r *FormRelay) SubscribeNewsletter(ctx context.Context, signup domain.NewsletterSignup) (domain.Submission, error) {
	if err := r.validate.Struct(signup); err != nil {
		return domain.Submission{}, fmt.Errorf("validation failed: %w", err)
	}
	return r.accept(ctx, domain.SubmissionKindNewsletter, signup)
}

// accept persists the submission, then attempts immediate relay.
func (r *FormRelay) accept(ctx context.Context, kind domain.SubmissionKind, form any) (domain.Submission, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	now := time.Now().UTC()
	sub := domain.Submission{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		Status:    domain.SubmissionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.Save(ctx, &sub); err != nil {
		return domain.Submission{}, fmt.Errorf("failed to save submission: %w", err)
	}

	err = r.dispatch(ctx, &sub)
	sub.Attempts++
	if err == nil {
		sub.Status = domain.SubmissionStatusRelayed
		r.persist(ctx, &sub)
		metrics.FormSubmissions.WithLabelValues(string(sub.Kind), string(sub.Status)).Inc()
		return sub, nil
	}

	sub.LastError = err.Error()
	if redeliverable(err) {
		// Still pending; the redelivery worker picks it up later.
		r.persist(ctx, &sub)
		slog.Warn("Submission relay deferred", "id", sub.ID, "kind", sub.Kind, "error", err)
		metrics.FormSubmissions.WithLabelValues(string(sub.Kind), string(sub.Status)).Inc()
		return sub, nil
	}

	sub.Status = domain.SubmissionStatusFailed
	r.persist(ctx, &sub)
	metrics.FormSubmissions.WithLabelValues(string(sub.Kind), string(sub.Status)).Inc()
	return sub, fmt.Errorf("platform rejected submission: %w", err)
}

// Redeliver retries relay of a pending submission and persists the
// outcome. Submissions that exhaust the attempt cap are marked failed.
func (r *FormRelay) Redeliver(ctx context.Context, sub *domain.Submission) error {
	err := r.dispatch(ctx, sub)
	sub.Attempts++
	if err == nil {
		sub.Status = domain.SubmissionStatusRelayed
		sub.LastError = ""
		r.persist(ctx, sub)
		metrics.RedeliveryAttempts.WithLabelValues("relayed").Inc()
		return nil
	}

	sub.LastError = err.Error()
	if !redeliverable(err) || sub.Attempts >= r.maxAttempts {
		sub.Status = domain.SubmissionStatusFailed
		r.persist(ctx, sub)
		metrics.RedeliveryAttempts.WithLabelValues("failed").Inc()
		return fmt.Errorf("submission %s abandoned after %d attempts: %w", sub.ID, sub.Attempts, err)
	}

	r.persist(ctx, sub)
	metrics.RedeliveryAttempts.WithLabelValues("retry").Inc()
	return err
}

// dispatch relays the submission payload to the platform endpoint for
// its kind.
func (r *FormRelay) dispatch(ctx context.Context, sub *domain.Submission) error {
	switch sub.Kind {
	case domain.SubmissionKindContact:
		var form domain.ContactRequest
		if err := json.Unmarshal(sub.Payload, &form); err != nil {
			return fmt.Errorf("failed to decode contact payload: %w", err)
		}
		return r.api.SubmitContact(ctx, form)
	case domain.SubmissionKindNewsletter:
		var signup domain.NewsletterSignup
		if err := json.Unmarshal(sub.Payload, &signup); err != nil {
			return fmt.Errorf("failed to decode newsletter payload: %w", err)
		}
		return r.api.SubscribeNewsletter(ctx, signup)
	default:
		return fmt.Errorf("unknown submission kind %q", sub.Kind)
	}
}

func (r *FormRelay) persist(ctx context.Context, sub *domain.Submission) {
	sub.UpdatedAt = time.Now().UTC()
	if err := r.store.Update(ctx, sub); err != nil {
		slog.Error("Failed to update submission", "id", sub.ID, "error", err)
	}
}

// redeliverable reports whether a relay failure is worth retrying
// later. Platform rejections (4xx) are final; unreachable or overloaded
// platforms are not. Unclassified failures stay queued; the attempt cap
// bounds them.
func redeliverable(err error) bool {
	var restErr *rest.Error
	if errors.As(err, &restErr) {
		return restErr.Retryable() || restErr.Kind == rest.KindNetwork
	}
	return true
}

// IsValidationError reports whether err came from form validation.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// ValidationDetails flattens validator errors into readable field messages.
func ValidationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return details
}
