package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/eyther/claimstats/internal/sql"
)

// ApplyMigrations brings the claim-cache schema up to date. Migration
// files run in filename order and every statement uses IF NOT EXISTS, so
// running against an already-migrated database is a no-op.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	names, err := fs.Glob(embedsql.Migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		ddl, err := fs.ReadFile(embedsql.Migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applying migration")
		if _, err := pool.Exec(ctx, string(ddl)); err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
	}

	log.Info().Int("count", len(names)).Msg("claim cache schema ready")
	return nil
}
