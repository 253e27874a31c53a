package recordlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"funnelzip-demo/internal/models"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS submission_logs (
	log_key TEXT PRIMARY KEY,
	entries JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectLogSQL = `SELECT entries FROM submission_logs WHERE log_key = $1`
	upsertLogSQL = `INSERT INTO submission_logs (log_key, entries, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (log_key) DO UPDATE SET entries = EXCLUDED.entries, updated_at = now()`
)

// PostgresLog keeps each log as one JSONB row in submission_logs.
type PostgresLog struct {
	db *sql.DB
}

func NewPostgresLog(db *sql.DB) *PostgresLog {
	return &PostgresLog{db: db}
}

// Migrate creates the submission_logs table if it is missing.
func (p *PostgresLog) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create submission_logs: %w", err)
	}
	return nil
}

func (p *PostgresLog) Append(ctx context.Context, key string, rec models.SubmissionRecord) error {
	recs, err := p.List(ctx, key)
	if err != nil {
		return err
	}
	recs = append(recs, rec)

	b, err := encode(recs)
	if err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, upsertLogSQL, key, b); err != nil {
		return fmt.Errorf("write log %s: %w", key, err)
	}
	return nil
}

func (p *PostgresLog) List(ctx context.Context, key string) ([]models.SubmissionRecord, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx, selectLogSQL, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", key, err)
	}
	return decode(key, raw)
}

// Close is a no-op; the pool is owned by the caller.
func (p *PostgresLog) Close() error { return nil }
