package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the subset of *pgxpool.Pool and pgx.Tx used by PgRecorder.
type Execer interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

const createLoadsTable = `
CREATE TABLE IF NOT EXISTS catalog_loads (
    id          UUID PRIMARY KEY,
    path        TEXT NOT NULL,
    outcome     TEXT NOT NULL,
    lines       INTEGER NOT NULL DEFAULT 0,
    records     INTEGER NOT NULL DEFAULT 0,
    skipped     INTEGER NOT NULL DEFAULT 0,
    duration_ms BIGINT NOT NULL DEFAULT 0,
    error       TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertLoad = `
INSERT INTO catalog_loads (id, path, outcome, lines, records, skipped, duration_ms, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// PgRecorder writes load events to the catalog_loads table.
type PgRecorder struct {
	db Execer
}

// NewPgRecorder returns a recorder backed by db.
func NewPgRecorder(db Execer) *PgRecorder {
	return &PgRecorder{db: db}
}

// PoolConfig holds connection pool settings for Connect.
type PoolConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// Connect opens and pings a pgx pool.
func Connect(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the catalog_loads table if it does not exist.
func (r *PgRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createLoadsTable); err != nil {
		return fmt.Errorf("create catalog_loads: %w", err)
	}
	return nil
}

func (r *PgRecorder) Record(ctx context.Context, ev LoadEvent) error {
	_, err := r.db.Exec(ctx, insertLoad,
		pgtype.UUID{Bytes: ev.ID, Valid: true},
		ev.Path,
		string(ev.Outcome),
		ev.Lines,
		ev.Records,
		ev.Skipped,
		ev.Duration.Milliseconds(),
		toPgText(ev.Error),
		ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert catalog load %s: %w", ev.ID, err)
	}
	return nil
}

func toPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}
