package ch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clickhouseTC "github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"go.uber.org/zap"

	"partybot/internal/models"
)

// runMigrations creates the schema by hand, mirroring migrations/
func runMigrations(ctx context.Context, db *Recorder) error {
	_ = db.conn.Exec(ctx, "DROP TABLE IF EXISTS registrations")

	return db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			id UUID,
			event_date String,
			chat_id Int64,
			name String,
			phone String,
			username String,
			source String,
			registered_at DateTime
		) ENGINE = MergeTree()
		PARTITION BY event_date
		ORDER BY (event_date, registered_at, id)
	`)
}

// listByEventDate reads back the registrations of one event in insertion order
func listByEventDate(ctx context.Context, r *Recorder, partition string) ([]models.Registration, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, chat_id, name, phone, username, source, registered_at
		FROM registrations WHERE event_date = ? ORDER BY registered_at`, partition)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		var (
			reg models.Registration
			id  uuid.UUID
		)
		if err := rows.Scan(&id, &reg.ChatID, &reg.Name, &reg.Phone, &reg.Username, &reg.Source, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		reg.ID = id.String()
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// setupTestDB creates a test ClickHouse instance using testcontainers
func setupTestDB(t *testing.T) (*Recorder, func()) {
	if testing.Short() {
		t.Skip("skipping ClickHouse container test in short mode")
	}
	ctx := context.Background()

	clickhouseContainer, err := clickhouseTC.Run(ctx,
		"clickhouse/clickhouse-server:24.3.3.102-alpine",
		clickhouseTC.WithUsername("default"),
		clickhouseTC.WithPassword(""),
		clickhouseTC.WithDatabase("default"),
	)
	require.NoError(t, err, "Failed to start ClickHouse container")

	host, err := clickhouseContainer.Host(ctx)
	require.NoError(t, err)

	port, err := clickhouseContainer.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	db, err := NewRecorder(host, port.Int(), "default", "default", "", false, zap.NewNop())
	require.NoError(t, err, "Failed to connect to ClickHouse")

	err = runMigrations(ctx, db)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		db.Close()
		clickhouseContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRecorder_AppendPartitionsByEventDate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	olena := models.Registration{
		ID:           uuid.NewString(),
		ChatID:       1124775269,
		Name:         "Olena",
		Phone:        "+380501234567",
		Username:     "@olena_k",
		Source:       "instagram",
		RegisteredAt: at,
	}
	require.NoError(t, db.Append(ctx, "18.02", olena))
	require.NoError(t, db.Append(ctx, "25.02", models.Registration{
		Name: "Taras", Phone: "+380671112233", Username: "@taras", Source: "friends",
		RegisteredAt: at.Add(time.Minute),
	}))

	regs, err := listByEventDate(ctx, db, "18.02")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, olena.ID, regs[0].ID)
	assert.Equal(t, "Olena", regs[0].Name)
	assert.Equal(t, "+380501234567", regs[0].Phone)
	assert.Equal(t, "@olena_k", regs[0].Username)
	assert.Equal(t, "instagram", regs[0].Source)
	assert.Equal(t, int64(1124775269), regs[0].ChatID)

	regs, err = listByEventDate(ctx, db, "25.02")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.NotEmpty(t, regs[0].ID, "missing id should be generated")
}

func TestRecorder_DuplicatesAreKept(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	rec := models.Registration{Name: "Olena", Phone: "+380501234567", Username: "@olena_k", Source: "instagram"}

	require.NoError(t, db.Append(ctx, "18.02", rec))
	require.NoError(t, db.Append(ctx, "18.02", rec))

	regs, err := listByEventDate(ctx, db, "18.02")
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}

func TestRecorder_InvalidID(t *testing.T) {
	r := &Recorder{logger: zap.NewNop()}

	err := r.Append(context.Background(), "18.02", models.Registration{ID: "not-a-uuid"})
	assert.Error(t, err)
}
