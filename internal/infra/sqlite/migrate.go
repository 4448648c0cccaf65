// Migration system for folio SQLite, driven by rubenv/sql-migrate.
// SQL files are bundled with embed.FS (zero runtime file deps) and applied
// records are tracked in schema_migrations.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	dialect        = "sqlite3"
	migrationTable = "schema_migrations"
)

func migrationSet() *migrate.MigrationSet {
	return &migrate.MigrationSet{TableName: migrationTable}
}

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// MigrateUp applies all pending migrations in filename order.
// Already-applied migrations are skipped, so repeated calls are safe.
func MigrateUp(db *sql.DB) error {
	if _, err := migrationSet().Exec(db, dialect, migrationSource(), migrate.Up); err != nil {
		return fmt.Errorf("migrate: up: %w", err)
	}
	return nil
}

// AppliedMigrations returns the IDs of applied migrations, oldest first.
func AppliedMigrations(db *sql.DB) ([]string, error) {
	records, err := migrationSet().GetMigrationRecords(db, dialect)
	if err != nil {
		return nil, fmt.Errorf("migrate: records: %w", err)
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Id)
	}
	return ids, nil
}
