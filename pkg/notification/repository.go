package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Repository persists notifications, one collection per tenant.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Notification, error)
	CreateBatch(ctx context.Context, params []CreateParams) ([]Notification, error)
	ListByUser(ctx context.Context, tenantID, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error
}
