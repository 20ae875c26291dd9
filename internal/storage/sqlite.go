package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRecord is returned when a record cannot be archived
	ErrInvalidRecord = errors.New("invalid experiment record")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// A single connection also keeps an in-memory database alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance.
// Use MemoryDSN for an archive that lives only as long as the process.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		dbPath = MemoryDSN
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Experiment operations

// RecordExperiment archives one record and its selection snapshot atomically
func (s *SQLiteStorage) RecordExperiment(ctx context.Context, rec *types.ExperimentRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertExperiment(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

func insertExperiment(ctx context.Context, q querier, rec *types.ExperimentRecord) error {
	elements, err := json.Marshal(rec.Elements)
	if err != nil {
		return fmt.Errorf("marshal elements: %w", err)
	}

	var reactionID, reactionName, reactionJSON sql.NullString
	if rec.Result.Found() {
		data, err := json.Marshal(rec.Result.Reaction)
		if err != nil {
			return fmt.Errorf("marshal reaction: %w", err)
		}
		reactionID = sql.NullString{String: rec.Result.Reaction.ID, Valid: true}
		reactionName = sql.NullString{String: rec.Result.Reaction.Name, Valid: true}
		reactionJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO experiments (id, session_id, recorded_at, elements, reaction_id, reaction_name, reaction, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SessionID, rec.Timestamp.UnixNano(), string(elements),
		reactionID, reactionName, reactionJSON, rec.Summary)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: experiment %s", ErrAlreadyExists, rec.ID)
		}
		return fmt.Errorf("failed to insert experiment: %w", err)
	}

	for i := range rec.Elements {
		_, err := q.ExecContext(ctx, `
			INSERT INTO experiment_elements (experiment_id, position, symbol)
			VALUES (?, ?, ?)
		`, rec.ID, i, rec.Elements[i].Symbol)
		if err != nil {
			return fmt.Errorf("failed to insert experiment element: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

const experimentColumns = `e.id, e.session_id, e.recorded_at, e.elements, e.reaction, e.summary`

// GetExperiment returns one archived record
func (s *SQLiteStorage) GetExperiment(ctx context.Context, id string) (*types.ExperimentRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+experimentColumns+` FROM experiments e WHERE e.id = ?`, id)
	rec, err := scanExperiment(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListExperiments returns matching records, most recent first
func (s *SQLiteStorage) ListExperiments(ctx context.Context, filter ExperimentFilter) ([]*types.ExperimentRecord, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.SessionID != "" {
		where = append(where, "e.session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.ReactionID != "" {
		where = append(where, "e.reaction_id = ?")
		args = append(args, filter.ReactionID)
	}
	if filter.Symbol != "" {
		where = append(where, "EXISTS (SELECT 1 FROM experiment_elements x WHERE x.experiment_id = e.id AND x.symbol = ?)")
		args = append(args, filter.Symbol)
	}
	if filter.Matched != nil {
		if *filter.Matched {
			where = append(where, "e.reaction_id IS NOT NULL")
		} else {
			where = append(where, "e.reaction_id IS NULL")
		}
	}
	if !filter.Since.IsZero() {
		where = append(where, "e.recorded_at >= ?")
		args = append(args, filter.Since.UnixNano())
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := `SELECT ` + experimentColumns + ` FROM experiments e`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.recorded_at DESC, e.rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.ExperimentRecord
	for rows.Next() {
		rec, err := scanExperiment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExperiment(sc scanner) (*types.ExperimentRecord, error) {
	var (
		rec        types.ExperimentRecord
		recordedAt int64
		elements   string
		reaction   sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.SessionID, &recordedAt, &elements, &reaction, &rec.Summary); err != nil {
		return nil, err
	}

	rec.Timestamp = time.Unix(0, recordedAt)
	if err := json.Unmarshal([]byte(elements), &rec.Elements); err != nil {
		return nil, fmt.Errorf("decode elements of %s: %w", rec.ID, err)
	}
	if reaction.Valid {
		var r types.Reaction
		if err := json.Unmarshal([]byte(reaction.String), &r); err != nil {
			return nil, fmt.Errorf("decode reaction of %s: %w", rec.ID, err)
		}
		rec.Result = types.Matched(&r)
	}
	return &rec, nil
}

// Status operations

// GetStats summarizes the archive
func (s *SQLiteStorage) GetStats(ctx context.Context) (*ArchiveStats, error) {
	stats := &ArchiveStats{}

	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(reaction_id),
		       COUNT(DISTINCT session_id),
		       MAX(recorded_at)
		FROM experiments
	`).Scan(&stats.TotalExperiments, &stats.Matched, &stats.Sessions, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to count experiments: %w", err)
	}
	stats.Unmatched = stats.TotalExperiments - stats.Matched
	if last.Valid {
		stats.LastRecordedAt = time.Unix(0, last.Int64)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT reaction_id, MAX(reaction_name), COUNT(*) AS n
		FROM experiments
		WHERE reaction_id IS NOT NULL
		GROUP BY reaction_id
		ORDER BY n DESC, reaction_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to group experiments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rc ReactionCount
		if err := rows.Scan(&rc.ReactionID, &rc.Name, &rc.Count); err != nil {
			return nil, err
		}
		stats.ByReaction = append(stats.ByReaction, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.Health.DatabaseAccessible = s.db.PingContext(ctx) == nil
	version, err := currentSchemaVersion(ctx, s.db)
	if err == nil {
		stats.Health.SchemaVersion = version
	}

	return stats, nil
}
