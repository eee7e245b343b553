package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/logging"
)

// ParseCSV parses a flat CSV export. The first row names the fields.
func ParseCSV(data []byte, entity string) (*Export, error) {
	return ParseCSVWithContext(context.Background(), data, entity)
}

// ParseCSVWithContext parses a flat CSV export into an Export envelope.
// The header row supplies field names, every value stays a string, and
// empty cells are omitted so downstream treats them as missing. CSV
// exports carry no schema version.
func ParseCSVWithContext(ctx context.Context, data []byte, entity string) (*Export, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "parse_csv").
		Str("entity", entity).
		Int("data_size_bytes", len(data)).
		Msg("parsing csv export")

	if strings.TrimSpace(entity) == "" {
		return nil, ErrMissingEntity
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv export %q is empty", entity)
	}

	header := rows[0]
	fields := make([]string, len(header))
	hasID := false
	for i, name := range header {
		fields[i] = strings.TrimSpace(name)
		if fields[i] == listview.RecordIDField {
			hasID = true
		}
	}
	if !hasID {
		return nil, fmt.Errorf("%w: header %v", ErrMissingIDColumn, fields)
	}

	records := make([]listview.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(listview.Record, len(fields))
		for i, cell := range row {
			if cell == "" {
				continue
			}
			record[fields[i]] = cell
		}
		records = append(records, record)
	}

	warnDuplicateIDs(ctx, entity, records)

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("entity", entity).
		Int("record_count", len(records)).
		Msg("csv export parsed")

	return &Export{
		Entity:  entity,
		Records: records,
	}, nil
}
