package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one user-facing dashboard notification, scoped per tenant.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	TenantID  string    `json:"tenantId"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
}

// CreateParams are the fields supplied when writing a notification.
type CreateParams struct {
	TenantID string `json:"tenantId"`
	UserID   string `json:"userId"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Link     string `json:"link,omitempty"`
}
