// Package store persists source snapshots in PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/logging"
)

// DefaultKeep is the number of snapshots kept per source.
const DefaultKeep = 10

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// DB is a DBTX that can start transactions, such as *pgxpool.Pool.
type DB interface {
	DBTX
	Begin(context.Context) (pgx.Tx, error)
}

const createSnapshots = `
CREATE TABLE IF NOT EXISTS source_snapshots (
    id         UUID PRIMARY KEY,
    source     TEXT NOT NULL,
    fetched_at TIMESTAMPTZ NOT NULL,
    row_count  INTEGER NOT NULL,
    body       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS source_snapshots_source_fetched_idx
    ON source_snapshots (source, fetched_at DESC);`

const insertSnapshot = `
INSERT INTO source_snapshots (id, source, fetched_at, row_count, body)
VALUES ($1, $2, $3, $4, $5)`

const pruneSnapshots = `
DELETE FROM source_snapshots
WHERE source = $1
  AND id NOT IN (
    SELECT id FROM source_snapshots
    WHERE source = $1
    ORDER BY fetched_at DESC
    LIMIT $2
  )`

const latestSnapshot = `
SELECT id, source, fetched_at, row_count, body
FROM source_snapshots
WHERE source = $1
ORDER BY fetched_at DESC
LIMIT 1`

// Postgres is a core.SnapshotStore backed by a source_snapshots table.
type Postgres struct {
	db   DB
	keep int
}

var _ core.SnapshotStore = (*Postgres)(nil)

// NewPostgres creates a store that keeps the newest keep snapshots per
// source. keep <= 0 uses DefaultKeep.
func NewPostgres(db DB, keep int) *Postgres {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Postgres{db: db, keep: keep}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createSnapshots); err != nil {
		return fmt.Errorf("create source_snapshots: %w", err)
	}
	return nil
}

// Save inserts snap and prunes older snapshots of the same source in one
// transaction.
func (p *Postgres) Save(ctx context.Context, snap core.Snapshot) error {
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertSnapshot,
		pgtype.UUID{Bytes: snap.ID, Valid: true},
		snap.Source,
		snap.FetchedAt.UTC(),
		snap.RowCount,
		snap.Body,
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	tag, err := tx.Exec(ctx, pruneSnapshots, snap.Source, p.keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	logging.FromContext(ctx).Info("snapshot saved",
		"snapshot_id", snap.ID,
		"source", snap.Source,
		"rows", snap.RowCount,
		"bytes", len(snap.Body),
		"pruned", tag.RowsAffected(),
	)
	return nil
}

// Latest returns the newest snapshot for source, or core.ErrNoSnapshot.
func (p *Postgres) Latest(ctx context.Context, source string) (*core.Snapshot, error) {
	var (
		id        pgtype.UUID
		snap      core.Snapshot
		fetchedAt time.Time
	)
	err := p.db.QueryRow(ctx, latestSnapshot, source).Scan(
		&id, &snap.Source, &fetchedAt, &snap.RowCount, &snap.Body,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.ID = uuid.UUID(id.Bytes)
	snap.FetchedAt = fetchedAt
	return &snap, nil
}
