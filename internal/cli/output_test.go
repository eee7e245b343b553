package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renodesk/renodesk/internal/listview"
)

func testSnapshot(t *testing.T) listview.Snapshot {
	t.Helper()

	engine, err := listview.New(listview.Config{
		Entity: "requests",
		Columns: []listview.Column{
			listview.NewColumn("status", "Status"),
			listview.NewColumn("message", "Message"),
		},
		DefaultSortKey: "status",
	}, nil)
	require.NoError(t, err)

	return engine.Snapshot([]listview.Record{
		{"id": "a", "status": "New", "message": "Fix roof"},
		{"id": "b", "status": "Archived"},
	})
}

func TestRenderTable(t *testing.T) {
	snap := testSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "Message")
	assert.Contains(t, out, "Fix roof")
	// Record b has no message: placeholder, not a blank cell.
	assert.Contains(t, out, emptyCell)
	assert.Contains(t, out, "Page 1 of 1 (2 of 2 records)")
	// The sorted column carries a direction marker.
	assert.Contains(t, out, "Status ▲")
}

func TestRenderListJSON(t *testing.T) {
	snap := testSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, renderList(&buf, OutputJSON, "requests", snap))

	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
	assert.Equal(t, "requests", envelope.Entity)
	assert.Len(t, envelope.Records, 2)
	assert.Equal(t, 2, envelope.Meta.MatchCount)
}

func TestRenderListNDJSON(t *testing.T) {
	snap := testSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, renderList(&buf, OutputNDJSON, "requests", snap))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		var record listview.Record
		assert.NoError(t, json.Unmarshal([]byte(line), &record))
	}
}

func TestRenderRecordTable(t *testing.T) {
	record := listview.Record{"id": "a", "status": "New", "budget": 25000.0}

	var buf bytes.Buffer
	require.NoError(t, renderRecord(&buf, OutputTable, record))
	out := buf.String()

	// id leads, remaining fields are alphabetical.
	idIdx := strings.Index(out, "id")
	budgetIdx := strings.Index(out, "budget")
	statusIdx := strings.Index(out, "status")
	assert.True(t, idIdx < budgetIdx && budgetIdx < statusIdx, "field order wrong: %q", out)
	assert.Contains(t, out, "25000")
}

func TestOutputWidth(t *testing.T) {
	// Test stdout is not a terminal, so width always resolves to the wide
	// breakpoint with or without --wide.
	assert.Equal(t, 120, outputWidth(120, false))
	assert.Equal(t, 120, outputWidth(120, true))
}
