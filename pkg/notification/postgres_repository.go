package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL-based notification repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a single notification.
func (r *PostgresRepository) Create(ctx context.Context, params CreateParams) (Notification, error) {
	n := newNotification(params)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notification (id, tenant_id, user_id, message, details, link, created_at, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)`,
		n.ID, n.TenantID, n.UserID, n.Message, n.Details, n.Link, n.CreatedAt)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// CreateBatch persists a batch of notifications in one transaction.
func (r *PostgresRepository) CreateBatch(ctx context.Context, params []CreateParams) ([]Notification, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin notification batch: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]Notification, 0, len(params))
	for _, p := range params {
		n := newNotification(p)
		_, err := tx.Exec(ctx, `
			INSERT INTO notification (id, tenant_id, user_id, message, details, link, created_at, is_read)
			VALUES ($1, $2, $3, $4, $5, $6, $7, false)`,
			n.ID, n.TenantID, n.UserID, n.Message, n.Details, n.Link, n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert notification batch: %w", err)
		}
		created = append(created, n)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit notification batch: %w", err)
	}
	return created, nil
}

func newNotification(params CreateParams) Notification {
	return Notification{
		ID:        uuid.New(),
		TenantID:  params.TenantID,
		UserID:    params.UserID,
		Message:   params.Message,
		Details:   params.Details,
		Link:      params.Link,
		CreatedAt: time.Now().UTC(),
	}
}

// ListByUser returns a user's notifications, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, tenantID, userID string) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, user_id, message, COALESCE(details, ''), COALESCE(link, ''), created_at, is_read
		FROM notification
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at DESC`,
		tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.TenantID, &n.UserID, &n.Message, &n.Details, &n.Link, &n.CreatedAt, &n.IsRead); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags a notification as read.
func (r *PostgresRepository) MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notification SET is_read = true
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
