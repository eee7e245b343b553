package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/config"
	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/prefs"
)

func testUI() config.UIConfig {
	return config.UIConfig{
		KeyPrefix:        "admin",
		MobileBreakpoint: 80,
		WideBreakpoint:   120,
		CardPageSize:     2,
	}
}

func testScreens() []catalog.Screen {
	return []catalog.Screen{catalog.Requests(testUI()), catalog.Quotes(testUI())}
}

func testRequests() []listview.Record {
	return []listview.Record{
		{
			"id":            "req-1",
			"status":        "New",
			"message":       "Kitchen remodel with island bench",
			"homeownerName": "Dana Fox",
			"leadSource":    "Website",
			"assignedTo":    "Priya Shah",
			"budget":        45000,
			"createdAt":     "2025-03-01",
			"officeNotes":   "Prefers email contact",
			"property":      map[string]any{"address": "7 Pine Rd", "city": "Barrie"},
		},
		{
			"id":            "req-2",
			"status":        "New",
			"message":       "Bathroom refresh upstairs",
			"homeownerName": "Omar Reyes",
			"leadSource":    "Referral",
			"assignedTo":    "Marco Silva",
			"budget":        12000,
			"createdAt":     "2025-03-04",
			"property":      map[string]any{"address": "19 Oak Ave", "city": "Guelph"},
		},
		{
			"id":            "req-3",
			"status":        "Archived",
			"message":       "Deck replacement",
			"homeownerName": "Lena Park",
			"leadSource":    "Website",
			"createdAt":     "2025-02-11",
			"property":      map[string]any{"address": "3 Birch Ct", "city": "Barrie"},
		},
		{
			"id":            "req-4",
			"status":        "Quoted",
			"message":       "Basement finishing",
			"homeownerName": "Ed Marsh",
			"leadSource":    "Zillow",
			"assignedTo":    "Priya Shah",
			"budget":        80000,
			"createdAt":     "2025-02-20",
			"property":      map[string]any{"address": "88 Elm St", "city": "Milton"},
		},
		{
			"id":            "req-5",
			"status":        "Archived",
			"message":       "Fence repair after storm",
			"homeownerName": "Gail Soto",
			"leadSource":    "Referral",
			"createdAt":     "2025-01-15",
			"property":      map[string]any{"address": "12 Cedar Ln", "city": "Barrie"},
		},
	}
}

func testQuotes() []listview.Record {
	return []listview.Record{
		{
			"id":          "quo-1",
			"status":      "Sent",
			"totalAmount": 52000,
			"agentName":   "Rita Cole",
			"brokerage":   "Compass",
			"validUntil":  "2025-04-01",
			"createdAt":   "2025-03-02",
			"property":    map[string]any{"address": "40 King St", "city": "Toronto"},
		},
		{
			"id":          "quo-2",
			"status":      "Draft",
			"totalAmount": 18500,
			"agentName":   "Sam Hart",
			"brokerage":   "Compass",
			"createdAt":   "2025-03-05",
			"property":    map[string]any{"address": "5 Queen St", "city": "Toronto"},
		},
	}
}

func testLoad() LoadFunc {
	return func(context.Context) (map[string][]listview.Record, map[string]int, error) {
		records := map[string][]listview.Record{
			catalog.EntityRequests: testRequests(),
			catalog.EntityQuotes:   testQuotes(),
		}
		counts := map[string]int{
			catalog.EntityRequests: len(records[catalog.EntityRequests]),
			catalog.EntityQuotes:   len(records[catalog.EntityQuotes]),
		}
		return records, counts, nil
	}
}

func newTestModel(t *testing.T, store listview.PreferenceStore) *BrowseModel {
	t.Helper()
	m, err := NewBrowseModel(context.Background(), testScreens(), store, testLoad(), nil, catalog.EntityRequests)
	require.NoError(t, err)
	return m
}

// loadedModel builds a model and feeds it the initial load result.
func loadedModel(t *testing.T, store listview.PreferenceStore) *BrowseModel {
	t.Helper()
	m := newTestModel(t, store)
	updated, _ := m.Update(m.loadCmd()())
	return updated.(*BrowseModel)
}

// TestNewBrowseModel verifies initial model state.
func TestNewBrowseModel(t *testing.T) {
	m := newTestModel(t, prefs.NewMemoryStore())

	assert.Equal(t, ViewStateLoading, m.state)
	assert.Equal(t, catalog.EntityRequests, m.ActiveEntity())
	assert.Len(t, m.engines, 2)
	assert.NotNil(t, m.Init())
}

// TestNewBrowseModel_InitialEntity verifies starting screen selection.
func TestNewBrowseModel_InitialEntity(t *testing.T) {
	m, err := NewBrowseModel(context.Background(), testScreens(), prefs.NewMemoryStore(), testLoad(), nil, catalog.EntityQuotes)
	require.NoError(t, err)
	assert.Equal(t, catalog.EntityQuotes, m.ActiveEntity())

	// Unknown names fall back to the first screen.
	m, err = NewBrowseModel(context.Background(), testScreens(), prefs.NewMemoryStore(), testLoad(), nil, "invoices")
	require.NoError(t, err)
	assert.Equal(t, catalog.EntityRequests, m.ActiveEntity())
}

func TestNewBrowseModel_NoScreens(t *testing.T) {
	_, err := NewBrowseModel(context.Background(), nil, prefs.NewMemoryStore(), testLoad(), nil, "")
	require.Error(t, err)
}

// TestBrowseModel_StateTransitions verifies state machine transitions.
func TestBrowseModel_StateTransitions(t *testing.T) {
	m := newTestModel(t, prefs.NewMemoryStore())
	assert.Equal(t, ViewStateLoading, m.state)

	// Transition: Loading -> List (workspace loaded)
	msg := m.loadCmd()()
	require.IsType(t, recordsLoadedMsg{}, msg)
	updated, _ := m.Update(msg)
	m = updated.(*BrowseModel)
	assert.Equal(t, ViewStateList, m.state)
	assert.Equal(t, 5, m.Snapshot().TotalCount)
	assert.Equal(t, 5, m.Snapshot().MatchCount)

	// Transition: List -> Detail (Enter key)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*BrowseModel)
	assert.Equal(t, ViewStateDetail, m.state)

	// Transition: Detail -> List (Esc key)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(*BrowseModel)
	assert.Equal(t, ViewStateList, m.state)
}

// TestBrowseModel_LoadError verifies the error state quits the program.
func TestBrowseModel_LoadError(t *testing.T) {
	loadErr := errors.New("workspace unavailable")
	failing := func(context.Context) (map[string][]listview.Record, map[string]int, error) {
		return nil, nil, loadErr
	}

	m, err := NewBrowseModel(context.Background(), testScreens(), prefs.NewMemoryStore(), failing, nil, catalog.EntityRequests)
	require.NoError(t, err)

	updated, cmd := m.Update(m.loadCmd()())
	m = updated.(*BrowseModel)
	assert.Equal(t, ViewStateError, m.state)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "workspace unavailable")
}

// TestBrowseModel_DefaultSort verifies the configured sort applies on load.
func TestBrowseModel_DefaultSort(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	snap := m.Snapshot()
	assert.Equal(t, "createdAt", snap.SortKey)
	assert.Equal(t, listview.Descending, snap.SortDir)
	require.Len(t, snap.Rows, 5)
	assert.Equal(t, "req-2", snap.Rows[0].ID())
	assert.Equal(t, "req-5", snap.Rows[4].ID())
}

// TestBrowseModel_Search verifies the live search flow.
func TestBrowseModel_Search(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(*BrowseModel)
	assert.True(t, m.searchOpen)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Search:")

	// Every keystroke narrows the match set.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("kitchen")})
	m = updated.(*BrowseModel)
	require.Equal(t, 1, m.Snapshot().MatchCount)
	assert.Equal(t, "req-1", m.Snapshot().Rows[0].ID())

	// Enter closes the input but keeps the narrowing.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*BrowseModel)
	assert.False(t, m.searchOpen)
	assert.Equal(t, 1, m.Snapshot().MatchCount)

	// Esc in the list clears the search.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(*BrowseModel)
	assert.Equal(t, 5, m.Snapshot().MatchCount)
	assert.Empty(t, m.search.Value())
}

// TestBrowseModel_FilterCycling verifies f/F and the digit focus keys.
func TestBrowseModel_FilterCycling(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	press := func(r rune) {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(*BrowseModel)
	}

	// Status options cycle in sorted order and wrap back to all.
	press('f')
	assert.Equal(t, "Archived", m.engine().ActiveFilters()["status"])
	assert.Equal(t, 2, m.Snapshot().MatchCount)

	press('f')
	assert.Equal(t, "New", m.engine().ActiveFilters()["status"])
	assert.Equal(t, 2, m.Snapshot().MatchCount)

	press('f')
	assert.Equal(t, "Quoted", m.engine().ActiveFilters()["status"])
	assert.Equal(t, 1, m.Snapshot().MatchCount)

	press('f')
	assert.Empty(t, m.engine().ActiveFilters())
	assert.Equal(t, 5, m.Snapshot().MatchCount)

	// Digits focus the Nth declared filter; out-of-range digits are ignored.
	press('2')
	assert.Equal(t, 1, m.focusFilter)
	press('9')
	assert.Equal(t, 1, m.focusFilter)

	press('f')
	assert.Equal(t, "Referral", m.engine().ActiveFilters()["leadSource"])
	assert.Equal(t, 2, m.Snapshot().MatchCount)

	press('F')
	assert.Empty(t, m.engine().ActiveFilters())
	assert.Equal(t, 5, m.Snapshot().MatchCount)
}

// TestBrowseModel_SortCycling verifies the s/S keys.
func TestBrowseModel_SortCycling(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	// createdAt is the last sortable column, so s wraps to address.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(*BrowseModel)
	assert.Equal(t, "address", m.Snapshot().SortKey)
	assert.Equal(t, listview.Descending, m.Snapshot().SortDir)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	m = updated.(*BrowseModel)
	assert.Equal(t, listview.Ascending, m.Snapshot().SortDir)
	assert.Equal(t, "req-5", m.Snapshot().Rows[0].ID())
}

// TestBrowseModel_ViewModePersistence verifies v/d write through the store.
func TestBrowseModel_ViewModePersistence(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := loadedModel(t, store)
	assert.Equal(t, listview.ModeTable, m.Snapshot().Mode)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = updated.(*BrowseModel)
	assert.Equal(t, listview.ModeCards, m.Snapshot().Mode)

	v, ok := store.Get("admin-requests-view-mode")
	require.True(t, ok)
	assert.Equal(t, "cards", v)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(*BrowseModel)
	assert.Equal(t, listview.DensityComfortable, m.Snapshot().Density)

	v, ok = store.Get("admin-requests-density")
	require.True(t, ok)
	assert.Equal(t, "comfortable", v)
}

// TestBrowseModel_WindowResize verifies viewport-driven mode and columns.
func TestBrowseModel_WindowResize(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())
	require.Len(t, m.Snapshot().Columns, 8)

	// Narrow terminals force cards and trim hideable columns; the saved
	// preference stays table.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = updated.(*BrowseModel)
	assert.Equal(t, listview.ModeCards, m.Snapshot().Mode)
	assert.Equal(t, listview.ModeTable, m.engine().ViewModePreference())
	assert.Len(t, m.Snapshot().Columns, 4)
	assert.Contains(t, m.View(), "19 Oak Ave, Guelph")

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m = updated.(*BrowseModel)
	assert.Equal(t, listview.ModeTable, m.Snapshot().Mode)
	assert.Len(t, m.Snapshot().Columns, 8)
}

// TestBrowseModel_TabSwitch verifies per-screen state survives switching.
func TestBrowseModel_TabSwitch(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(*BrowseModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("kitchen")})
	m = updated.(*BrowseModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*BrowseModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*BrowseModel)
	assert.Equal(t, catalog.EntityQuotes, m.ActiveEntity())
	assert.Equal(t, 2, m.Snapshot().MatchCount)
	assert.Empty(t, m.search.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(*BrowseModel)
	assert.Equal(t, catalog.EntityRequests, m.ActiveEntity())
	assert.Equal(t, 1, m.Snapshot().MatchCount)
	assert.Equal(t, "kitchen", m.search.Value())
}

// TestBrowseModel_CardsNavigation verifies card paging and selection.
func TestBrowseModel_CardsNavigation(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	press := func(msg tea.Msg) {
		updated, _ := m.Update(msg)
		m = updated.(*BrowseModel)
	}

	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	snap := m.Snapshot()
	require.Equal(t, listview.ModeCards, snap.Mode)
	assert.Equal(t, 3, snap.PageCount)
	assert.Equal(t, 0, snap.PageIndex)
	assert.Len(t, snap.Page, 2)

	// Cursor stays inside the page.
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.cardCursor)
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.cardCursor)
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.cardCursor)

	// Paging clamps at the last page.
	press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Snapshot().PageIndex)
	press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Snapshot().PageIndex)
	press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Snapshot().PageIndex)
	assert.Len(t, m.Snapshot().Page, 1)

	press(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.Snapshot().PageIndex)

	// Enter opens the detail for the highlighted card.
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	press(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.state)
	assert.Equal(t, 3, m.detailIndex)
}

// TestBrowseModel_QuitKeys verifies quit key handling.
func TestBrowseModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedModel(t, prefs.NewMemoryStore())
			updated, cmd := m.Update(tt.key)
			m = updated.(*BrowseModel)
			assert.Equal(t, ViewStateQuitting, m.state)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

// TestBrowseModel_DataChanged verifies a watch event triggers a reload.
func TestBrowseModel_DataChanged(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	_, cmd := m.Update(dataChangedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, recordsLoadedMsg{}, cmd())
}

// TestBrowseModel_View verifies the list rendering.
func TestBrowseModel_View(t *testing.T) {
	m := newTestModel(t, prefs.NewMemoryStore())
	assert.Contains(t, m.View(), "Loading workspace...")

	updated, _ := m.Update(m.loadCmd()())
	m = updated.(*BrowseModel)

	view := m.View()
	assert.Contains(t, view, "REQUESTS")
	assert.Contains(t, view, "Records: 5")
	assert.Contains(t, view, "Total: $137,000")
	assert.Contains(t, view, "New: 2")
	assert.Contains(t, view, "Archived: 2")
	assert.Contains(t, view, "Quoted: 1")
	assert.Contains(t, view, "status=all")
	assert.Contains(t, view, "page 1/3")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*BrowseModel)
	view = m.View()
	assert.Contains(t, view, "REQUESTS DETAIL")
	assert.Contains(t, view, "req-2")
	assert.Contains(t, view, "Press ESC to return")
}

// TestBrowseModel_DetailExtraFields verifies non-column fields render.
func TestBrowseModel_DetailExtraFields(t *testing.T) {
	m := loadedModel(t, prefs.NewMemoryStore())

	// Narrow to the kitchen request, then open it.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(*BrowseModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("kitchen")})
	m = updated.(*BrowseModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*BrowseModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*BrowseModel)

	require.Equal(t, ViewStateDetail, m.state)
	view := m.View()
	assert.Contains(t, view, "OTHER FIELDS")
	assert.Contains(t, view, "officeNotes")
	assert.Contains(t, view, "Prefers email contact")
}

// TestNextFilterOption verifies option cycling order.
func TestNextFilterOption(t *testing.T) {
	options := []string{"Archived", "New", "Quoted"}

	tests := []struct {
		name    string
		current string
		want    string
	}{
		{"unset selects first", "", "Archived"},
		{"all selects first", listview.FilterAll, "Archived"},
		{"advances to next", "Archived", "New"},
		{"last wraps to unset", "Quoted", ""},
		{"stale value restarts", "Deleted", "Archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextFilterOption(options, tt.current))
		})
	}

	assert.Empty(t, nextFilterOption(nil, "New"))
}
