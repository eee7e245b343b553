// Package workspace persists imported entity records in a local SQLite
// database so list screens work offline and survive restarts.
//
// Records are stored as JSON documents keyed by (entity, id). Every import
// replaces an entity's records wholesale and leaves a row in the imports
// audit table with a ULID batch id.
package workspace

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/logging"

	_ "modernc.org/sqlite"
)

// Store errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrEmptyEntity = errors.New("entity name is empty")
	ErrMissingID   = errors.New("record has no id")
)

// Store wraps the workspace SQLite database.
type Store struct {
	conn *sql.DB
	path string
}

// ImportMeta carries provenance for an import batch.
type ImportMeta struct {
	Source        string
	SchemaVersion string
	ExportedAt    string
}

// ImportResult describes one completed entity replacement.
type ImportResult struct {
	BatchID    string
	Entity     string
	Count      int
	ImportedAt time.Time
}

// ImportRecord is one row from the imports audit table.
type ImportRecord struct {
	BatchID       string
	Entity        string
	Source        string
	SchemaVersion string
	Count         int
	ImportedAt    time.Time
}

// Open opens (or creates) the workspace database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// SQLite allows one writer. A single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrating workspace schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS records (
			entity TEXT NOT NULL,
			id TEXT NOT NULL,
			data_json TEXT NOT NULL DEFAULT '{}',
			imported_at TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (entity, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_entity ON records(entity)`,
		`CREATE TABLE IF NOT EXISTS imports (
			batch_id TEXT PRIMARY KEY,
			entity TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			schema_version TEXT NOT NULL DEFAULT '',
			record_count INTEGER NOT NULL DEFAULT 0,
			imported_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_entity ON imports(entity)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ReplaceEntity swaps out every stored record for entity in one
// transaction and records the batch in the imports audit table. Records
// sharing an id collapse to the last occurrence.
func (s *Store) ReplaceEntity(
	ctx context.Context,
	entity string,
	records []listview.Record,
	meta ImportMeta,
) (*ImportResult, error) {
	entity = strings.ToLower(strings.TrimSpace(entity))
	if entity == "" {
		return nil, ErrEmptyEntity
	}
	for i, r := range records {
		if r.ID() == "" {
			return nil, fmt.Errorf("%w: %s record %d", ErrMissingID, entity, i)
		}
	}

	log := logging.FromContext(ctx)
	batchID := ulid.Make().String()
	importedAt := time.Now().UTC()
	stamp := importedAt.Format(time.RFC3339)

	log.Debug().
		Ctx(ctx).
		Str("component", "workspace").
		Str("operation", "replace_entity").
		Str("entity", entity).
		Str("batch_id", batchID).
		Int("record_count", len(records)).
		Msg("replacing entity records")

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE entity = ?`, entity); err != nil {
		return nil, fmt.Errorf("clearing %s records: %w", entity, err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO records (entity, id, data_json, imported_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = insert.Close() }()

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encoding %s record %s: %w", entity, r.ID(), err)
		}
		if _, err := insert.ExecContext(ctx, entity, r.ID(), string(data), stamp); err != nil {
			return nil, fmt.Errorf("storing %s record %s: %w", entity, r.ID(), err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (batch_id, entity, source, schema_version, record_count, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		batchID, entity, meta.Source, meta.SchemaVersion, len(records), stamp,
	); err != nil {
		return nil, fmt.Errorf("recording import batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	return &ImportResult{
		BatchID:    batchID,
		Entity:     entity,
		Count:      len(records),
		ImportedAt: importedAt,
	}, nil
}

// List returns every stored record for entity, ordered by id.
func (s *Store) List(ctx context.Context, entity string) ([]listview.Record, error) {
	entity = strings.ToLower(strings.TrimSpace(entity))
	if entity == "" {
		return nil, ErrEmptyEntity
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT data_json FROM records WHERE entity = ? ORDER BY id`, entity)
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", entity, err)
	}
	defer func() { _ = rows.Close() }()

	records := []listview.Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %s record: %w", entity, err)
		}
		var record listview.Record
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", entity, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing %s records: %w", entity, err)
	}
	return records, nil
}

// Get returns one stored record by id.
func (s *Store) Get(ctx context.Context, entity, id string) (listview.Record, error) {
	entity = strings.ToLower(strings.TrimSpace(entity))
	if entity == "" {
		return nil, ErrEmptyEntity
	}

	var data string
	err := s.conn.QueryRowContext(ctx,
		`SELECT data_json FROM records WHERE entity = ? AND id = ?`, entity, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s record %s: %w", entity, id, err)
	}

	var record listview.Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("decoding %s record %s: %w", entity, id, err)
	}
	return record, nil
}

// Entities returns the distinct entity names with stored records.
func (s *Store) Entities(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT DISTINCT entity FROM records ORDER BY entity`)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entities []string
	for rows.Next() {
		var entity string
		if err := rows.Scan(&entity); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	return entities, nil
}

// Counts returns the stored record count per entity.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT entity, COUNT(*) FROM records GROUP BY entity`)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var entity string
		var count int
		if err := rows.Scan(&entity, &count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[entity] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	return counts, nil
}

// ImportHistory returns the most recent import batches for entity,
// newest first. limit <= 0 means no limit.
func (s *Store) ImportHistory(ctx context.Context, entity string, limit int) ([]ImportRecord, error) {
	entity = strings.ToLower(strings.TrimSpace(entity))
	if entity == "" {
		return nil, ErrEmptyEntity
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT batch_id, entity, source, schema_version, record_count, imported_at
		 FROM imports WHERE entity = ?
		 ORDER BY imported_at DESC, batch_id DESC LIMIT ?`, entity, limit)
	if err != nil {
		return nil, fmt.Errorf("listing import history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		var stamp string
		if err := rows.Scan(&rec.BatchID, &rec.Entity, &rec.Source, &rec.SchemaVersion, &rec.Count, &stamp); err != nil {
			return nil, fmt.Errorf("scanning import record: %w", err)
		}
		if stamp != "" {
			if t, parseErr := time.Parse(time.RFC3339, stamp); parseErr == nil {
				rec.ImportedAt = t
			}
		}
		history = append(history, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing import history: %w", err)
	}
	return history, nil
}

// LastImport returns the newest import batch for entity, or nil when the
// entity has never been imported.
func (s *Store) LastImport(ctx context.Context, entity string) (*ImportRecord, error) {
	history, err := s.ImportHistory(ctx, entity, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[0], nil
}
