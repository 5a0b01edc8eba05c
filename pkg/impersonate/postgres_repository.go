package impersonate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAuditRepository implements AuditRepository using PostgreSQL.
type PostgresAuditRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAuditRepository creates a new PostgreSQL-based audit repository.
func NewPostgresAuditRepository(pool *pgxpool.Pool) *PostgresAuditRepository {
	return &PostgresAuditRepository{pool: pool}
}

// Create persists a new active audit record and assigns its identifier.
func (r *PostgresAuditRepository) Create(ctx context.Context, params CreateParams) (AuditEvent, error) {
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

	_, err := r.pool.Exec(ctx, `
		INSERT INTO impersonation_event
			(id, tenant_id, actor_user_id, actor_role, target_user_id, target_role, started_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)`,
		event.ID, event.TenantID, event.ActorUserID, event.ActorRole,
		event.TargetUserID, event.TargetRole, event.StartedAt)
	if err != nil {
		return AuditEvent{}, fmt.Errorf("insert impersonation event: %w", err)
	}
	return event, nil
}

// MergeEnd upserts the terminal fields, leaving the rest of an existing row
// untouched and creating a partial row for an unknown id, mirroring a
// document-store merge write.
func (r *PostgresAuditRepository) MergeEnd(ctx context.Context, tenantID string, id uuid.UUID, endedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO impersonation_event (id, tenant_id, active, ended_at)
		VALUES ($1, $2, false, $3)
		ON CONFLICT (tenant_id, id)
		DO UPDATE SET active = false, ended_at = EXCLUDED.ended_at`,
		id, tenantID, endedAt)
	if err != nil {
		return fmt.Errorf("merge impersonation end: %w", err)
	}
	return nil
}

// Get retrieves one audit record.
func (r *PostgresAuditRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (AuditEvent, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, COALESCE(actor_user_id, ''), COALESCE(actor_role, ''),
		       COALESCE(target_user_id, ''), COALESCE(target_role, ''),
		       started_at, ended_at, active
		FROM impersonation_event
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)

	event, err := scanAuditEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AuditEvent{}, ErrAuditNotFound
		}
		return AuditEvent{}, fmt.Errorf("get impersonation event: %w", err)
	}
	return event, nil
}

// ListActive returns the tenant's currently active audit records.
func (r *PostgresAuditRepository) ListActive(ctx context.Context, tenantID string) ([]AuditEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, COALESCE(actor_user_id, ''), COALESCE(actor_role, ''),
		       COALESCE(target_user_id, ''), COALESCE(target_role, ''),
		       started_at, ended_at, active
		FROM impersonation_event
		WHERE tenant_id = $1 AND active
		ORDER BY started_at`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("list active impersonation events: %w", err)
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan impersonation event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanAuditEvent(row pgx.Row) (AuditEvent, error) {
	var (
		event     AuditEvent
		startedAt *time.Time
	)
	err := row.Scan(&event.ID, &event.TenantID, &event.ActorUserID, &event.ActorRole,
		&event.TargetUserID, &event.TargetRole, &startedAt, &event.EndedAt, &event.Active)
	if err != nil {
		return AuditEvent{}, err
	}
	if startedAt != nil {
		event.StartedAt = *startedAt
	}
	return event, nil
}
