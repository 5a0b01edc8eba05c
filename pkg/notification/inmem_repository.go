package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage.
type InMemoryRepository struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]Notification
}

// NewInMemoryRepository creates a new in-memory notification repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		notifications: make(map[uuid.UUID]Notification),
	}
}

// Create persists a single notification.
func (r *InMemoryRepository) Create(ctx context.Context, params CreateParams) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(params), nil
}

// CreateBatch persists a batch of notifications.
func (r *InMemoryRepository) CreateBatch(ctx context.Context, params []CreateParams) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]Notification, 0, len(params))
	for _, p := range params {
		created = append(created, r.create(p))
	}
	return created, nil
}

func (r *InMemoryRepository) create(params CreateParams) Notification {
	n := Notification{
		ID:        uuid.New(),
		TenantID:  params.TenantID,
		UserID:    params.UserID,
		Message:   params.Message,
		Details:   params.Details,
		Link:      params.Link,
		CreatedAt: time.Now().UTC(),
	}
	r.notifications[n.ID] = n
	return n
}

// ListByUser returns a user's notifications, newest first.
func (r *InMemoryRepository) ListByUser(ctx context.Context, tenantID, userID string) ([]Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Notification
	for _, n := range r.notifications {
		if n.TenantID == tenantID && n.UserID == userID {
			matches = append(matches, n)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// MarkRead flags a notification as read.
func (r *InMemoryRepository) MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok || n.TenantID != tenantID {
		return ErrNotificationNotFound
	}
	n.IsRead = true
	r.notifications[id] = n
	return nil
}
