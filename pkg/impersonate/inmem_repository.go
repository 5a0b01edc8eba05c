package impersonate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type auditKey struct {
	tenantID string
	id       uuid.UUID
}

// InMemoryAuditRepository implements AuditRepository using in-memory storage.
type InMemoryAuditRepository struct {
	mu     sync.RWMutex
	events map[auditKey]AuditEvent
}

// NewInMemoryAuditRepository creates a new in-memory audit repository.
func NewInMemoryAuditRepository() *InMemoryAuditRepository {
	return &InMemoryAuditRepository{
		events: make(map[auditKey]AuditEvent),
	}
}

// Create persists a new active audit record and assigns its identifier.
func (r *InMemoryAuditRepository) Create(ctx context.Context, params CreateParams) (AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event := AuditEvent{
		ID:           uuid.New(),
		TenantID:     params.TenantID,
		ActorUserID:  params.ActorUserID,
		ActorRole:    params.ActorRole,
		TargetUserID: params.TargetUserID,
		TargetRole:   params.TargetRole,
		StartedAt:    params.StartedAt,
		Active:       true,
	}
	r.events[auditKey{params.TenantID, event.ID}] = event
	return event, nil
}

// MergeEnd sets the terminal fields, creating a partial record when the id
// was never started, the way a document-store merge write would.
func (r *InMemoryAuditRepository) MergeEnd(ctx context.Context, tenantID string, id uuid.UUID, endedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := auditKey{tenantID, id}
	event, ok := r.events[key]
	if !ok {
		event = AuditEvent{ID: id, TenantID: tenantID}
	}
	event.Active = false
	event.EndedAt = &endedAt
	r.events[key] = event
	return nil
}

// Get retrieves one audit record.
func (r *InMemoryAuditRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[auditKey{tenantID, id}]
	if !ok {
		return AuditEvent{}, ErrAuditNotFound
	}
	return event, nil
}

// ListActive returns the tenant's currently active audit records.
func (r *InMemoryAuditRepository) ListActive(ctx context.Context, tenantID string) ([]AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []AuditEvent
	for key, event := range r.events {
		if key.tenantID == tenantID && event.Active {
			active = append(active, event)
		}
	}
	return active, nil
}
