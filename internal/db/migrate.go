package db

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies each pending *.up.sql file in name order, one transaction per file.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := pendingFiles()
	if err != nil { return err }
	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version text PRIMARY KEY)`)
	if err != nil { return err }

	for _, name := range files {
		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)`, name).Scan(&exists); err != nil {
			return err
		}
		if exists { continue }

		b, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil { return err }

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(b)); err != nil { return err }
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations(version) VALUES($1)`, name)
			return err
		})
		if err != nil { return fmt.Errorf("migration %s: %w", name, err) }
	}
	return nil
}

func pendingFiles() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil { return nil, err }
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") { out = append(out, e.Name()) }
	}
	sort.Strings(out)
	return out, nil
}
