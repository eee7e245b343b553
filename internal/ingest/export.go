// Package ingest parses backend export files into records the workspace
// can import: JSON export envelopes and flat CSV dumps.
//
// Exports carry a semver schemaVersion; versions outside the supported
// range are rejected before any record reaches the workspace. Duplicate
// record ids are a caller invariant, so they are logged as warnings rather
// than errors.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/logging"
)

// SupportedSchemaRange is the export schema constraint this build accepts.
const SupportedSchemaRange = ">= 1.0.0, < 2.0.0"

// Parse errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported export schema version")
	ErrMissingEntity     = errors.New("export declares no entity")
	ErrMissingIDColumn   = errors.New("csv export has no id column")
	ErrNoExports         = errors.New("no export files (.json or .csv)")
)

// Export is the JSON envelope the backend emits per entity.
type Export struct {
	SchemaVersion string            `json:"schemaVersion"`
	Entity        string            `json:"entity"`
	ExportedAt    string            `json:"exportedAt"`
	Records       []listview.Record `json:"records"`
}

// checkSchemaVersion validates an export's schemaVersion against
// SupportedSchemaRange. An empty version is rejected.
func checkSchemaVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version missing", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	c, err := semver.NewConstraint(SupportedSchemaRange)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedSchema, version, SupportedSchemaRange)
	}
	return nil
}

// ParseExport parses a JSON export envelope from bytes.
func ParseExport(data []byte) (*Export, error) {
	return ParseExportWithContext(context.Background(), data)
}

// ParseExportWithContext parses a JSON export envelope, validating the
// schema version and entity name. ctx carries the logger; duplicate record
// ids are logged at warn level and kept.
func ParseExportWithContext(ctx context.Context, data []byte) (*Export, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "parse_export").
		Int("data_size_bytes", len(data)).
		Msg("parsing export envelope")

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing export JSON: %w", err)
	}

	if err := checkSchemaVersion(export.SchemaVersion); err != nil {
		return nil, err
	}
	if strings.TrimSpace(export.Entity) == "" {
		return nil, ErrMissingEntity
	}
	if export.Records == nil {
		export.Records = []listview.Record{}
	}

	warnDuplicateIDs(ctx, export.Entity, export.Records)

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("entity", export.Entity).
		Str("schema_version", export.SchemaVersion).
		Int("record_count", len(export.Records)).
		Msg("export parsed")

	return &export, nil
}

// LoadExport loads one export file, JSON or CSV by extension.
func LoadExport(path string) (*Export, error) {
	return LoadExportWithContext(context.Background(), path)
}

// LoadExportWithContext loads one export file. JSON files carry their own
// envelope; CSV files take their entity name from the file stem
// ("requests.csv" imports as requests) and skip the schema check.
func LoadExportWithContext(ctx context.Context, path string) (*Export, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_export").
		Str("path", path).
		Msg("loading export file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		entity := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		return ParseCSVWithContext(ctx, data, entity)
	default:
		return ParseExportWithContext(ctx, data)
	}
}

// WriteExport writes an export envelope as indented JSON, creating parent
// directories. Used by seeding and round-trip tests; the written file loads
// back through LoadExport unchanged.
func WriteExport(path string, export *Export) error {
	if strings.TrimSpace(export.Entity) == "" {
		return ErrMissingEntity
	}
	if err := checkSchemaVersion(export.SchemaVersion); err != nil {
		return err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s export: %w", export.Entity, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// warnDuplicateIDs logs duplicate record ids within one export.
func warnDuplicateIDs(ctx context.Context, entity string, records []listview.Record) {
	seen := make(map[string]struct{}, len(records))
	var dupes []string
	for _, r := range records {
		id := r.ID()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			dupes = append(dupes, id)
			continue
		}
		seen[id] = struct{}{}
	}
	if len(dupes) > 0 {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Ctx(ctx).
			Str("component", "ingest").
			Str("entity", entity).
			Strs("duplicate_ids", dupes).
			Msg("export contains duplicate record ids, keeping all occurrences")
	}
}
