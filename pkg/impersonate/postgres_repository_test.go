package impersonate

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "irridash_db"
	dbUser := "irridash"
	dbPassword := "pwd"

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "irridash_db.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connString)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestPostgresAuditRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresAuditRepository(pool)

	t.Run("CreateAndGet", func(t *testing.T) {
		event, err := repo.Create(ctx, CreateParams{
			TenantID:     "farm-1",
			ActorUserID:  "admin-1",
			ActorRole:    "admin",
			TargetUserID: "manager-1",
			TargetRole:   "manager",
			StartedAt:    time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.True(t, event.Active)

		got, err := repo.Get(ctx, "farm-1", event.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", got.ActorUserID)
		assert.Equal(t, "manager-1", got.TargetUserID)
		assert.True(t, got.Active)
		assert.Nil(t, got.EndedAt)
	})

	t.Run("MergeEndClosesRow", func(t *testing.T) {
		event, err := repo.Create(ctx, CreateParams{
			TenantID: "farm-1", ActorUserID: "admin-1", ActorRole: "admin",
			TargetUserID: "manager-2", TargetRole: "manager",
			StartedAt: time.Now().UTC(),
		})
		require.NoError(t, err)

		endedAt := time.Now().UTC()
		require.NoError(t, repo.MergeEnd(ctx, "farm-1", event.ID, endedAt))

		got, err := repo.Get(ctx, "farm-1", event.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
		require.NotNil(t, got.EndedAt)
		// Other columns survive the merge.
		assert.Equal(t, "admin-1", got.ActorUserID)
		assert.Equal(t, "manager-2", got.TargetUserID)
	})

	t.Run("MergeEndUnknownIDCreatesPartialRow", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, repo.MergeEnd(ctx, "farm-1", id, time.Now().UTC()))

		got, err := repo.Get(ctx, "farm-1", id)
		require.NoError(t, err)
		assert.False(t, got.Active)
		assert.NotNil(t, got.EndedAt)
		assert.Empty(t, got.ActorUserID)
		assert.True(t, got.StartedAt.IsZero())
	})

	t.Run("MergeEndIsIdempotent", func(t *testing.T) {
		event, err := repo.Create(ctx, CreateParams{
			TenantID: "farm-1", ActorUserID: "admin-1", ActorRole: "admin",
			TargetUserID: "manager-3", TargetRole: "manager",
			StartedAt: time.Now().UTC(),
		})
		require.NoError(t, err)

		require.NoError(t, repo.MergeEnd(ctx, "farm-1", event.ID, time.Now().UTC()))
		require.NoError(t, repo.MergeEnd(ctx, "farm-1", event.ID, time.Now().UTC()))

		got, err := repo.Get(ctx, "farm-1", event.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
	})

	t.Run("ListActiveScopedToTenant", func(t *testing.T) {
		started := time.Now().UTC()
		first, err := repo.Create(ctx, CreateParams{
			TenantID: "farm-2", ActorUserID: "admin-1", ActorRole: "admin",
			TargetUserID: "manager-1", TargetRole: "manager", StartedAt: started,
		})
		require.NoError(t, err)
		second, err := repo.Create(ctx, CreateParams{
			TenantID: "farm-2", ActorUserID: "admin-1", ActorRole: "admin",
			TargetUserID: "customer-1", TargetRole: "customer",
			StartedAt: started.Add(time.Second),
		})
		require.NoError(t, err)
		other, err := repo.Create(ctx, CreateParams{
			TenantID: "farm-3", ActorUserID: "admin-2", ActorRole: "admin",
			TargetUserID: "manager-9", TargetRole: "manager", StartedAt: started,
		})
		require.NoError(t, err)

		require.NoError(t, repo.MergeEnd(ctx, "farm-2", second.ID, time.Now().UTC()))

		active, err := repo.ListActive(ctx, "farm-2")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, first.ID, active[0].ID)

		activeOther, err := repo.ListActive(ctx, "farm-3")
		require.NoError(t, err)
		require.Len(t, activeOther, 1)
		assert.Equal(t, other.ID, activeOther[0].ID)
	})

	t.Run("GetUnknownID", func(t *testing.T) {
		_, err := repo.Get(ctx, "farm-1", uuid.New())
		assert.ErrorIs(t, err, ErrAuditNotFound)
	})
}
