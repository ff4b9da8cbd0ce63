package repository

import (
	"context"
	"database/sql"
	"errors"
	"realitycheck/internal/quota"
	"time"

	_ "github.com/lib/pq"
)

const pgQuotaSchema = `
CREATE TABLE IF NOT EXISTS quota_counters (
	key      TEXT PRIMARY KEY,
	count    INTEGER NOT NULL,
	reset_at TIMESTAMPTZ NOT NULL
)`

// Upsert either opens a fresh window or increments the live one.
const pgQuotaRecord = `
INSERT INTO quota_counters (key, count, reset_at) VALUES ($1, 1, $2)
ON CONFLICT (key) DO UPDATE SET
	count    = CASE WHEN quota_counters.reset_at <= $3 THEN 1 ELSE quota_counters.count + 1 END,
	reset_at = CASE WHEN quota_counters.reset_at <= $3 THEN EXCLUDED.reset_at ELSE quota_counters.reset_at END`

const pgQuotaSelect = `SELECT count, reset_at FROM quota_counters WHERE key = $1`

// PGQuotaRepo is a quota.Limiter backed by a Postgres table
type PGQuotaRepo interface {
	Check(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key string) error
	EnsureSchema(ctx context.Context) error
}

type pgQuotaRepo struct {
	db     *sql.DB
	policy quota.Policy
	now    func() time.Time
}

// OpenPostgres opens and pings a lib/pq connection pool
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func NewPGQuotaRepo(db *sql.DB, policy quota.Policy) PGQuotaRepo {
	return &pgQuotaRepo{db: db, policy: policy, now: time.Now}
}

func (r *pgQuotaRepo) key(key string) string {
	return r.policy.Name + ":" + key
}

func (r *pgQuotaRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, pgQuotaSchema)
	return err
}

func (r *pgQuotaRepo) Check(ctx context.Context, key string) (bool, error) {
	var count int
	var resetAt time.Time
	err := r.db.QueryRowContext(ctx, pgQuotaSelect, r.key(key)).Scan(&count, &resetAt)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !r.now().Before(resetAt) {
		return true, nil
	}
	return count < r.policy.Limit, nil
}

func (r *pgQuotaRepo) Record(ctx context.Context, key string) error {
	now := r.now()
	_, err := r.db.ExecContext(ctx, pgQuotaRecord, r.key(key), now.Add(r.policy.Window), now)
	return err
}
