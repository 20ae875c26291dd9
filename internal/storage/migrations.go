package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	// CurrentSchemaVersion tracks the database schema version
	CurrentSchemaVersion = "1.1.0"
)

// Migration represents a database schema migration
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
	{
		Version: "1.1.0",
		Up:      migrationV11Up,
		Down:    migrationV11Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- One row per recorded experiment
CREATE TABLE IF NOT EXISTS experiments (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    recorded_at INTEGER NOT NULL,   -- Unix nanoseconds
    elements TEXT NOT NULL,         -- JSON array of the selection snapshot
    reaction_id TEXT,               -- NULL for no-match
    reaction TEXT,                  -- JSON reaction record, NULL for no-match
    summary TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_experiments_session ON experiments(session_id, recorded_at);
CREATE INDEX IF NOT EXISTS idx_experiments_recorded ON experiments(recorded_at);

-- Selection snapshot, one row per staged element
CREATE TABLE IF NOT EXISTS experiment_elements (
    experiment_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    symbol TEXT NOT NULL,
    PRIMARY KEY (experiment_id, position),
    FOREIGN KEY (experiment_id) REFERENCES experiments(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_experiment_elements_symbol ON experiment_elements(symbol);
`

const migrationV1Down = `
DROP TABLE IF EXISTS experiment_elements;
DROP TABLE IF EXISTS experiments;
DROP TABLE IF EXISTS schema_version;
`

const migrationV11Up = `
-- Reaction name kept alongside the id for stats without decoding JSON
ALTER TABLE experiments ADD COLUMN reaction_name TEXT;

CREATE INDEX IF NOT EXISTS idx_experiments_reaction ON experiments(reaction_id);
`

const migrationV11Down = `
DROP INDEX IF EXISTS idx_experiments_reaction;
ALTER TABLE experiments DROP COLUMN reaction_name;
`

// currentSchemaVersion returns the highest applied version, or "0.0.0"
func currentSchemaVersion(ctx context.Context, db *sql.DB) (string, error) {
	var tableName string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)
	if err == sql.ErrNoRows {
		return "0.0.0", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check schema_version table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
	if err != nil {
		return "", fmt.Errorf("failed to read schema_version: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// Ordered by semver, not applied_at or string order
	highest := semver.MustParse("0.0.0")
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return "", err
		}
		parsed, err := semver.NewVersion(v)
		if err != nil {
			return "", fmt.Errorf("invalid schema version %s: %w", v, err)
		}
		if parsed.GreaterThan(highest) {
			highest = parsed
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return highest.String(), nil
}

// ApplyMigrations runs all pending migrations
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	current, err := currentSchemaVersion(ctx, db)
	if err != nil {
		return err
	}
	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid current schema version %s: %w", current, err)
	}

	// Run migrations in order
	for _, migration := range AllMigrations {
		migrationVersion, err := semver.NewVersion(migration.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", migration.Version, err)
		}

		// Skip if already applied
		if !currentVersion.LessThan(migrationVersion) {
			continue
		}

		if _, err := db.ExecContext(ctx, migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}

		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
		}

		currentVersion = migrationVersion
	}

	return nil
}

// RollbackMigration rolls back the most recent migration
func RollbackMigration(ctx context.Context, db *sql.DB) error {
	current, err := currentSchemaVersion(ctx, db)
	if err != nil {
		return err
	}
	if current == "0.0.0" {
		return fmt.Errorf("no migrations to rollback")
	}

	// Find migration
	var migration *Migration
	for i := range AllMigrations {
		if AllMigrations[i].Version == current {
			migration = &AllMigrations[i]
			break
		}
	}
	if migration == nil {
		return fmt.Errorf("migration %s not found", current)
	}

	if _, err := db.ExecContext(ctx, migration.Down); err != nil {
		return fmt.Errorf("failed to rollback migration %s: %w", current, err)
	}

	// The first migration drops schema_version itself
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version WHERE version = ?", current); err != nil && migration.Version != AllMigrations[0].Version {
		return fmt.Errorf("failed to remove migration record %s: %w", current, err)
	}

	return nil
}
