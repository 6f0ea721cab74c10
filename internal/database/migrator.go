package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Both dialects ship inside the binary, so containers need no SQL files.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

const versionTable = "schema_version"

// Migrate brings the schema up to the latest version.
//
// Postgres goes through jackc/tern on a connection borrowed from the pool.
// SQLite uses a small version table and applies each file in a transaction.
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	switch db.Dialect {
	case DialectPostgres:
		return migratePostgres(ctx, logger, db)
	case DialectSQLite:
		return migrateSQLite(ctx, logger, db.SQL)
	default:
		return fmt.Errorf("no migrations for dialect %q", db.Dialect)
	}
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection for migrations: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	logVersion(logger, int(from), len(m.Migrations))
	return nil
}

type sqliteMigration struct {
	version int
	name    string
	body    string
}

// loadSQLiteMigrations reads migrations/sqlite/NNN_name.sql in version order.
func loadSQLiteMigrations() ([]sqliteMigration, error) {
	entries, err := fs.ReadDir(migrations, "migrations/sqlite")
	if err != nil {
		return nil, fmt.Errorf("reading sqlite migrations: %w", err)
	}

	out := make([]sqliteMigration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("migration %q has no version prefix", e.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %q: bad version: %w", e.Name(), err)
		}
		body, err := fs.ReadFile(migrations, path.Join("migrations/sqlite", e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, sqliteMigration{version: version, name: e.Name(), body: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func migrateSQLite(ctx context.Context, logger *zerolog.Logger, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+versionTable+` (
			version    INTEGER  NOT NULL PRIMARY KEY,
			name       TEXT     NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating %s table: %w", versionTable, err)
	}

	var from int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM "+versionTable).Scan(&from); err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	pending, err := loadSQLiteMigrations()
	if err != nil {
		return err
	}

	latest := from
	for _, m := range pending {
		if m.version <= from {
			continue
		}
		if err := applySQLiteMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		latest = m.version
	}

	logVersion(logger, from, latest)
	return nil
}

func applySQLiteMigration(ctx context.Context, db *sql.DB, m sqliteMigration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, m.body); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+versionTable+" (version, name) VALUES (?, ?)", m.version, m.name,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func logVersion(logger *zerolog.Logger, from, to int) {
	if from == to {
		logger.Info().Msgf("database schema up to date, version %d", to)
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	}
}
