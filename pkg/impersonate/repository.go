package impersonate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAuditNotFound = errors.New("impersonation audit record not found")

// AuditRepository persists impersonation audit records, one collection per
// tenant. MergeEnd has document-store merge semantics: it sets the terminal
// fields without touching the rest, creates a partial record when the id was
// never started, and is safe to call twice.
type AuditRepository interface {
	Create(ctx context.Context, params CreateParams) (AuditEvent, error)
	MergeEnd(ctx context.Context, tenantID string, id uuid.UUID, endedAt time.Time) error
	Get(ctx context.Context, tenantID string, id uuid.UUID) (AuditEvent, error)
	ListActive(ctx context.Context, tenantID string) ([]AuditEvent, error)
}
