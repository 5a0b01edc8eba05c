package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/verdantops/irridash/pkg/impersonate"
)

var (
	ErrMissingTenant       = errors.New("company id cannot be empty")
	ErrEmptyBatch          = errors.New("notifications cannot be empty")
	ErrInvalidNotification = errors.New("notification requires userId and message")
)

// Service provides notification management plus the email side-channel the
// impersonation audit trail calls into.
type Service struct {
	repository Repository
	notifier   Notifier
	// Address resolution belongs to the user directory, which is outside
	// this service. When unset, the user id is passed through as-is.
	resolveAddress func(userID string) string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithNotifier attaches an outbound delivery channel.
func WithNotifier(notifier Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = notifier
	}
}

// WithAddressResolver sets the userID-to-address lookup for outbound mail.
func WithAddressResolver(resolve func(userID string) string) ServiceOption {
	return func(s *Service) {
		s.resolveAddress = resolve
	}
}

// NewService creates a notification service on the given repository.
func NewService(repository Repository, opts ...ServiceOption) *Service {
	s := &Service{repository: repository}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create writes a single notification.
func (s *Service) Create(ctx context.Context, params CreateParams) (Notification, error) {
	if params.TenantID == "" {
		return Notification{}, ErrMissingTenant
	}
	if params.UserID == "" || params.Message == "" {
		return Notification{}, ErrInvalidNotification
	}

	n, err := s.repository.Create(ctx, params)
	if err != nil {
		return Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// BulkCreate writes a batch of notifications for one tenant. The whole batch
// is validated before anything is written.
func (s *Service) BulkCreate(ctx context.Context, tenantID string, batch []CreateParams) ([]Notification, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	for i := range batch {
		if batch[i].UserID == "" || batch[i].Message == "" {
			return nil, ErrInvalidNotification
		}
		batch[i].TenantID = tenantID
	}

	created, err := s.repository.CreateBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("create notification batch: %w", err)
	}
	return created, nil
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, tenantID, userID string) ([]Notification, error) {
	return s.repository.ListByUser(ctx, tenantID, userID)
}

// MarkRead flags a notification as read.
func (s *Service) MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error {
	return s.repository.MarkRead(ctx, tenantID, id)
}

// ImpersonationStarted implements impersonate.StartNotifier: it records a
// notification for the impersonated user and sends a best-effort email.
func (s *Service) ImpersonationStarted(ctx context.Context, event impersonate.AuditEvent) error {
	message := "An administrator is currently acting on your account."
	details := fmt.Sprintf("Session started at %s.", event.StartedAt.Format("2006-01-02 15:04:05 MST"))

	_, err := s.Create(ctx, CreateParams{
		TenantID: event.TenantID,
		UserID:   event.TargetUserID,
		Message:  message,
		Details:  details,
	})
	if err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}
	to := event.TargetUserID
	if s.resolveAddress != nil {
		to = s.resolveAddress(event.TargetUserID)
	}
	if err := s.notifier.Send(ctx, Message{
		To:      to,
		Subject: "Account access notice",
		Body:    message + " " + details,
	}); err != nil {
		slog.Warn("impersonation notice email failed", "user", event.TargetUserID, "err", err)
	}
	return nil
}
