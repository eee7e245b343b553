package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/listview"
)

func TestRenderCards(t *testing.T) {
	screen := catalog.Requests(testUI())
	e, err := listview.New(screen.View, nil)
	require.NoError(t, err)

	out := RenderCards(screen, e.Snapshot(testRequests()), 0, 100)

	// Newest request heads page one under the default createdAt sort.
	assert.Contains(t, out, "19 Oak Ave, Guelph")
	assert.Contains(t, out, "Status: New")
	assert.Contains(t, out, "Budget: $12,000")
	assert.Contains(t, out, "Page 1/3 · 5 matching")
	assert.NotContains(t, out, "3 Birch Ct")
}

func TestRenderCards_EmptyPage(t *testing.T) {
	screen := catalog.Requests(testUI())
	e, err := listview.New(screen.View, nil)
	require.NoError(t, err)

	out := RenderCards(screen, e.Snapshot(nil), 0, 100)
	assert.Contains(t, out, "No matching records.")
}

// TestRenderCards_Density verifies compact drops empty fields while
// comfortable shows a placeholder.
func TestRenderCards_Density(t *testing.T) {
	screen := catalog.Requests(testUI())
	e, err := listview.New(screen.View, nil)
	require.NoError(t, err)

	// The deck request carries no budget.
	e.SetSearch("deck")

	compact := RenderCards(screen, e.Snapshot(testRequests()), 0, 100)
	assert.Contains(t, compact, "Status: Archived")
	assert.NotContains(t, compact, "Budget:")

	_, err = e.ToggleDensity()
	require.NoError(t, err)

	comfortable := RenderCards(screen, e.Snapshot(testRequests()), 0, 100)
	assert.Contains(t, comfortable, "Budget: -")
}

// TestRenderCards_FallbackTitle verifies the record id heads cards with no
// address.
func TestRenderCards_FallbackTitle(t *testing.T) {
	screen := catalog.Requests(testUI())
	e, err := listview.New(screen.View, nil)
	require.NoError(t, err)

	records := []listview.Record{
		{"id": "req-9", "status": "New", "createdAt": "2025-03-01"},
	}
	out := RenderCards(screen, e.Snapshot(records), 0, 100)
	assert.Contains(t, out, "req-9")
}
