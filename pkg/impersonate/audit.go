package impersonate

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one impersonation session's audit record: created active by a
// start event, closed by an end event, terminal thereafter. EndedAt is set
// exactly when Active is false, and StartedAt <= EndedAt whenever both are
// present.
type AuditEvent struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     string     `json:"tenantId"`
	ActorUserID  string     `json:"actorUserId"`
	ActorRole    string     `json:"actorRole"`
	TargetUserID string     `json:"targetUserId"`
	TargetRole   string     `json:"targetRole"`
	StartedAt    time.Time  `json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	Active       bool       `json:"active"`
}

// CreateParams are the fields persisted by a start event. The repository
// assigns the record identifier.
type CreateParams struct {
	TenantID     string
	ActorUserID  string
	ActorRole    string
	TargetUserID string
	TargetRole   string
	StartedAt    time.Time
}
