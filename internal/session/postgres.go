package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getSessionSQL = `SELECT data FROM import_sessions
WHERE id = $1 AND (expires_at IS NULL OR expires_at > now())`

	saveSessionSQL = `INSERT INTO import_sessions (id, data, expires_at, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE
SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`

	deleteSessionSQL = `DELETE FROM import_sessions WHERE id = $1`

	sweepSessionsSQL = `DELETE FROM import_sessions WHERE expires_at IS NOT NULL AND expires_at <= now()`

	lockSessionSQL = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// dbtx is satisfied by both the pool and a transaction
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the import_sessions table
type PostgresStore struct {
	pool *pgxpool.Pool
	db   dbtx
	ttl  time.Duration
}

// NewPostgresStore creates a store on an open pool; a zero ttl keeps rows forever
func NewPostgresStore(pool *pgxpool.Pool, ttl time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, db: pool, ttl: ttl}
}

// Get returns the stored session data
func (p *PostgresStore) Get(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := p.db.QueryRow(ctx, getSessionSQL, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres get session: %w", err)
	}
	return data, nil
}

// Save upserts data and refreshes its expiry
func (p *PostgresStore) Save(ctx context.Context, id string, data []byte) error {
	var expiresAt *time.Time
	if p.ttl > 0 {
		t := time.Now().Add(p.ttl)
		expiresAt = &t
	}

	if _, err := p.db.Exec(ctx, saveSessionSQL, id, data, expiresAt); err != nil {
		return fmt.Errorf("postgres save session: %w", err)
	}
	return nil
}

// Delete removes a session
func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := p.db.Exec(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("postgres delete session: %w", err)
	}
	return nil
}

// WithLock runs fn in a transaction holding an advisory lock on id.
// The store passed to fn works on that transaction, so the whole update
// uses a single pool connection. Writes made by fn are committed even
// when fn returns an error; that error is returned as is.
func (p *PostgresStore) WithLock(ctx context.Context, id string, fn func(Store) error) error {
	if p.pool == nil {
		return errors.New("postgres store is already bound to a transaction")
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if _, err := tx.Exec(ctx, lockSessionSQL, id); err != nil {
		return fmt.Errorf("postgres advisory lock: %w", err)
	}

	fnErr := fn(&PostgresStore{db: tx, ttl: p.ttl})

	if err := tx.Commit(ctx); err != nil && fnErr == nil {
		return fmt.Errorf("postgres commit: %w", err)
	}
	return fnErr
}

// Sweep deletes expired rows and returns how many were removed
func (p *PostgresStore) Sweep(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, sweepSessionsSQL)
	if err != nil {
		return 0, fmt.Errorf("postgres sweep sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunSweeper sweeps expired sessions every interval until ctx is done.
// Failed sweeps are reported to onError and retried on the next tick.
func (p *PostgresStore) RunSweeper(ctx context.Context, interval time.Duration, onError func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.Sweep(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
