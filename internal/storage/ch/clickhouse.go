package ch

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"partybot/internal/models"
	"partybot/internal/retry"
	"partybot/internal/storage"
)

// Recorder stores registrations in the registrations table, with the event
// date as the partition column
type Recorder struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

// NewRecorder creates a new ClickHouse connection
func NewRecorder(host string, port int, database, user, password string, useTLS bool, logger *zap.Logger) (*Recorder, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
		DialTimeout: 10 * time.Second,
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Recorder{conn: conn, logger: logger}, nil
}

// Append inserts the registration under the given event date
func (r *Recorder) Append(ctx context.Context, partition string, rec models.Registration) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("invalid registration id %q: %w", rec.ID, err)
	}
	registeredAt := rec.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now()
	}

	err = retry.Do(ctx, r.logger, "clickhouse.insert", func() error {
		return r.conn.Exec(ctx, `INSERT INTO registrations
			(id, event_date, chat_id, name, phone, username, source, registered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, partition, rec.ChatID, rec.Name, rec.Phone, rec.Username, rec.Source, registeredAt)
	})
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Recorder) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

var _ storage.Recorder = (*Recorder)(nil)
