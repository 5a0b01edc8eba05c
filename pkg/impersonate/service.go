package impersonate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verdantops/irridash/pkg/metrics"
)

// StartNotifier receives a best-effort signal when an impersonation session
// starts, typically to write a notification for the target and send an email.
type StartNotifier interface {
	ImpersonationStarted(ctx context.Context, event AuditEvent) error
}

// Service owns the impersonation audit trail's read-modify-write protocol.
// It records events; it is not an exclusive lock, so multiple simultaneous
// active sessions for the same actor/target pair are permitted.
type Service struct {
	repository AuditRepository
	notifier   StartNotifier
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithStartNotifier attaches the notification side-channel.
func WithStartNotifier(notifier StartNotifier) ServiceOption {
	return func(s *Service) {
		s.notifier = notifier
	}
}

// NewService creates an audit-trail service on the given repository.
func NewService(repository AuditRepository, opts ...ServiceOption) *Service {
	s := &Service{repository: repository}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start records the start of an impersonation session and returns the new
// record, whose id the caller must retain to later close the session.
// Eligibility is the caller's concern; this records what was decided.
func (s *Service) Start(ctx context.Context, params CreateParams) (AuditEvent, error) {
	params.StartedAt = time.Now().UTC()

	event, err := s.repository.Create(ctx, params)
	if err != nil {
		return AuditEvent{}, fmt.Errorf("record impersonation start: %w", err)
	}
	metrics.IncImpersonationStarted()
	slog.Info("impersonation started",
		"tenant", event.TenantID, "actor", event.ActorUserID, "target", event.TargetUserID, "id", event.ID)

	if s.notifier != nil {
		if err := s.notifier.ImpersonationStarted(ctx, event); err != nil {
			slog.Warn("impersonation start notification failed", "id", event.ID, "err", err)
		}
	}
	return event, nil
}

// End transitions a record to its terminal state with a merge-style partial
// update. Calling it twice is safe: both calls leave active=false, with
// endedAt reflecting the last writer. Store failures are surfaced unmodified;
// retries are the caller's responsibility.
func (s *Service) End(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.repository.MergeEnd(ctx, tenantID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("record impersonation end: %w", err)
	}
	metrics.IncImpersonationEnded()
	slog.Info("impersonation ended", "tenant", tenantID, "id", id)
	return nil
}

// Get retrieves one audit record.
func (s *Service) Get(ctx context.Context, tenantID string, id uuid.UUID) (AuditEvent, error) {
	return s.repository.Get(ctx, tenantID, id)
}

// ListActive returns the tenant's currently active sessions.
func (s *Service) ListActive(ctx context.Context, tenantID string) ([]AuditEvent, error) {
	return s.repository.ListActive(ctx, tenantID)
}
