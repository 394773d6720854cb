// Package cache is the Postgres-backed result cache: processed batches
// keyed by (user, key) with a per-user byte quota. Callers must treat a
// quota failure as a degrade signal, not a crash: persist metadata only
// and warn.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/eyther/claimstats/internal/sql"
)

var (
	// ErrQuotaExceeded means the write would push the user over their
	// byte quota. The entry is not written.
	ErrQuotaExceeded = errors.New("cache quota exceeded")
	// ErrNotFound means no entry exists for the (user, key) pair.
	ErrNotFound = errors.New("cache entry not found")
)

// Store reads and writes JSON cache entries.
type Store struct {
	pool *pgxpool.Pool
	// quotaBytes caps a user's total cached payload; <= 0 disables the
	// quota.
	quotaBytes int64
	log        zerolog.Logger
}

// NewStore wraps an existing pool. The schema must already be migrated.
func NewStore(pool *pgxpool.Pool, quotaBytes int64, log zerolog.Logger) *Store {
	return &Store{pool: pool, quotaBytes: quotaBytes, log: log}
}

// Set marshals value and upserts it under (userID, key). The quota check
// counts the user's other entries plus this payload, so overwriting a
// large entry with a smaller one always succeeds.
func (s *Store) Set(ctx context.Context, userID, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache payload: %w", err)
	}

	size := int64(len(payload))
	if s.quotaBytes > 0 {
		var used int64
		if err := s.pool.QueryRow(ctx, embedsql.CacheUsage, userID, key).Scan(&used); err != nil {
			return fmt.Errorf("query cache usage: %w", err)
		}
		if used+size > s.quotaBytes {
			s.log.Warn().
				Str("user", userID).
				Str("key", key).
				Int64("used", used).
				Int64("incoming", size).
				Int64("quota", s.quotaBytes).
				Msg("cache write rejected by quota")
			return fmt.Errorf("%w: %d+%d bytes over %d", ErrQuotaExceeded, used, size, s.quotaBytes)
		}
	}

	if _, err := s.pool.Exec(ctx, embedsql.CacheUpsert, userID, key, payload, size); err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

// Get unmarshals the entry under (userID, key) into dest.
func (s *Store) Get(ctx context.Context, userID, key string, dest any) error {
	var payload []byte
	err := s.pool.QueryRow(ctx, embedsql.CacheGet, userID, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, userID, key)
	}
	if err != nil {
		return fmt.Errorf("query cache entry: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache payload: %w", err)
	}
	return nil
}

// Remove deletes the entry under (userID, key). Deleting a missing entry
// is not an error.
func (s *Store) Remove(ctx context.Context, userID, key string) error {
	if _, err := s.pool.Exec(ctx, embedsql.CacheRemove, userID, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Usage reports the user's total cached payload bytes.
func (s *Store) Usage(ctx context.Context, userID string) (int64, error) {
	var used int64
	if err := s.pool.QueryRow(ctx, embedsql.CacheUsage, userID, "").Scan(&used); err != nil {
		return 0, fmt.Errorf("query cache usage: %w", err)
	}
	return used, nil
}
