package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/logging"
)

// LoadFunc fetches the current records and per-entity counts for every
// screen. The browser calls it once at startup and again whenever the
// watched export directory changes.
type LoadFunc func(ctx context.Context) (map[string][]listview.Record, map[string]int, error)

// recordsLoadedMsg carries a completed load.
type recordsLoadedMsg struct {
	records map[string][]listview.Record
	counts  map[string]int
	err     error
}

// dataChangedMsg signals that an export file under watch changed.
type dataChangedMsg struct{}

// BrowseModel is the Bubble Tea model for the interactive browser.
type BrowseModel struct {
	ctx     context.Context
	load    LoadFunc
	watcher *Watcher

	screens []catalog.Screen
	engines []*listview.Engine
	active  int

	records map[string][]listview.Record
	counts  map[string]int
	snap    listview.Snapshot

	state       ViewState
	table       table.Model
	search      textinput.Model
	searchOpen  bool
	focusFilter int
	cardCursor  int
	detailIndex int

	loading *LoadingState
	width   int
	height  int
	err     error
}

// NewBrowseModel builds the browser over the given screens. prefs feeds
// each screen's engine so view mode and density rehydrate; watcher may be
// nil when watch mode is off. initial selects the starting screen by
// entity name.
func NewBrowseModel(
	ctx context.Context,
	screens []catalog.Screen,
	prefs listview.PreferenceStore,
	load LoadFunc,
	watcher *Watcher,
	initial string,
) (*BrowseModel, error) {
	if len(screens) == 0 {
		return nil, fmt.Errorf("no screens to browse")
	}

	engines := make([]*listview.Engine, len(screens))
	active := 0
	for i, s := range screens {
		e, err := listview.New(s.View, prefs)
		if err != nil {
			return nil, fmt.Errorf("building %s engine: %w", s.View.Entity, err)
		}
		engines[i] = e
		if s.View.Entity == initial {
			active = i
		}
	}

	m := &BrowseModel{
		ctx:     ctx,
		load:    load,
		watcher: watcher,
		screens: screens,
		engines: engines,
		active:  active,
		records: map[string][]listview.Record{},
		counts:  map[string]int{},
		state:   ViewStateLoading,
		search:  newSearchInput(),
		loading: NewLoadingState(),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	for _, e := range m.engines {
		e.SetViewportWidth(m.width)
	}
	m.refresh()
	return m, nil
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

// engine returns the active screen's engine.
func (m *BrowseModel) engine() *listview.Engine {
	return m.engines[m.active]
}

// screen returns the active screen.
func (m *BrowseModel) screen() catalog.Screen {
	return m.screens[m.active]
}

// Snapshot exposes the active screen's current snapshot.
func (m *BrowseModel) Snapshot() listview.Snapshot {
	return m.snap
}

// State exposes the current view state.
func (m *BrowseModel) State() ViewState {
	return m.state
}

// ActiveEntity returns the active screen's entity name.
func (m *BrowseModel) ActiveEntity() string {
	return m.engine().Entity()
}

// Err returns the load error that ended the session, if any.
func (m *BrowseModel) Err() error {
	return m.err
}

// Init starts the spinner, the initial load, and the watch loop.
func (m *BrowseModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loading.Init(), m.loadCmd()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.WaitForChange())
	}
	return tea.Batch(cmds...)
}

func (m *BrowseModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		records, counts, err := m.load(m.ctx)
		return recordsLoadedMsg{records: records, counts: counts, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, e := range m.engines {
			e.SetViewportWidth(msg.Width)
		}
		m.refresh()
		return m, nil

	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)

	case dataChangedMsg:
		cmds := []tea.Cmd{m.loadCmd()}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.WaitForChange())
		}
		return m, tea.Batch(cmds...)
	}

	if m.searchOpen {
		return m.handleSearchInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m, m.loading.Update(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m, nil
	default:
		return m, nil
	}
}

func (m *BrowseModel) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, tea.Quit
	}

	m.records = msg.records
	m.counts = msg.counts
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
	m.refresh()
	return m, nil
}

func (m *BrowseModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.searchOpen = false
			m.search.Blur()
			m.engine().SetSearch(m.search.Value())
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	// Live search: every keystroke narrows the list.
	m.engine().SetSearch(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m *BrowseModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

//nolint:gocognit // Key dispatch is one branch per binding.
func (m *BrowseModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := keyMsg.String()

	// Digits focus the Nth declared filter.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.engine().Filters()) {
			m.focusFilter = idx
		}
		return m, nil
	}

	switch key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit

	case keySlash:
		m.searchOpen = true
		m.search.Focus()
		return m, textinput.Blink

	case keyTab:
		m.switchScreen(1)
		return m, nil

	case keyShiftTab:
		m.switchScreen(-1)
		return m, nil

	case keySortKey:
		m.engine().CycleSortKey()
		m.refresh()
		return m, nil

	case keySortDir:
		m.engine().ToggleSortDirection()
		m.refresh()
		return m, nil

	case keyViewMode:
		if _, err := m.engine().ToggleViewMode(); err != nil {
			m.warnPreference("view-mode", err)
		}
		m.refresh()
		return m, nil

	case keyDensity:
		if _, err := m.engine().ToggleDensity(); err != nil {
			m.warnPreference("density", err)
		}
		m.refresh()
		return m, nil

	case keyFilterCycle:
		m.cycleFilterValue()
		return m, nil

	case keyFilterClear:
		m.engine().ClearFilters()
		m.refresh()
		return m, nil

	case keyEnter:
		m.openDetail()
		return m, nil

	case keyEsc:
		m.clearNarrowing()
		return m, nil
	}

	if m.snap.Mode == listview.ModeCards {
		return m.handleCardsKeypress(key)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

func (m *BrowseModel) handleCardsKeypress(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keyUp, "k":
		if m.cardCursor > 0 {
			m.cardCursor--
		}
	case keyDown, "j":
		if m.cardCursor < len(m.snap.Page)-1 {
			m.cardCursor++
		}
	case keyLeft, keyPgUp:
		m.engine().PrevCardPage()
		m.cardCursor = 0
		m.refresh()
	case keyRight, keyPgDown:
		m.engine().NextCardPage(m.snap.PageCount)
		m.cardCursor = 0
		m.refresh()
	}
	return m, nil
}

func (m *BrowseModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc, keyEnter:
			m.state = ViewStateList
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

// switchScreen moves to the next or previous entity screen and syncs the
// search input with that screen's engine.
func (m *BrowseModel) switchScreen(step int) {
	n := len(m.screens)
	m.active = (m.active + step + n) % n
	m.cardCursor = 0
	m.focusFilter = 0
	m.search.SetValue(m.engine().SearchTerm())
	m.refresh()
}

// cycleFilterValue advances the focused filter through its options:
// all -> first option -> ... -> last option -> all.
func (m *BrowseModel) cycleFilterValue() {
	e := m.engine()
	fields := e.Filters()
	if len(fields) == 0 {
		return
	}
	if m.focusFilter >= len(fields) {
		m.focusFilter = 0
	}

	field := fields[m.focusFilter].Field
	options := m.snap.FilterOptions[field]
	current := e.ActiveFilters()[field]

	e.SetFilter(field, nextFilterOption(options, current))
	m.refresh()
}

// nextFilterOption returns the option after current, wrapping through the
// unset state.
func nextFilterOption(options []string, current string) string {
	if len(options) == 0 {
		return ""
	}
	if current == "" || current == listview.FilterAll {
		return options[0]
	}
	for i, opt := range options {
		if opt == current {
			if i == len(options)-1 {
				return ""
			}
			return options[i+1]
		}
	}
	return options[0]
}

// openDetail records the selected row and switches to the detail view.
func (m *BrowseModel) openDetail() {
	var idx int
	if m.snap.Mode == listview.ModeCards {
		idx = m.snap.PageIndex*m.snap.PageSize + m.cardCursor
	} else {
		idx = m.table.Cursor()
	}
	if idx < 0 || idx >= len(m.snap.Rows) {
		return
	}
	m.detailIndex = idx
	m.state = ViewStateDetail
}

// clearNarrowing backs out of the current narrowing: search first, then
// filters.
func (m *BrowseModel) clearNarrowing() {
	e := m.engine()
	if e.SearchTerm() != "" {
		e.SetSearch("")
		m.search.SetValue("")
		m.refresh()
		return
	}
	if len(e.ActiveFilters()) > 0 {
		e.ClearFilters()
		m.refresh()
	}
}

// warnPreference logs a failed preference write. The in-memory toggle
// already applied, so browsing continues.
func (m *BrowseModel) warnPreference(setting string, err error) {
	logger := logging.FromContext(m.ctx)
	logger.Warn().
		Ctx(m.ctx).
		Str("component", "tui").
		Str("setting", setting).
		Err(err).
		Msg("preference not saved")
}

// refresh re-derives the snapshot for the active screen and rebuilds the
// table model.
func (m *BrowseModel) refresh() {
	e := m.engine()
	m.snap = e.Snapshot(m.records[e.Entity()])

	if m.cardCursor >= len(m.snap.Page) {
		m.cardCursor = len(m.snap.Page) - 1
	}
	if m.cardCursor < 0 {
		m.cardCursor = 0
	}

	cursor := m.table.Cursor()
	m.table = m.buildTable()
	if cursor >= len(m.snap.Rows) {
		cursor = len(m.snap.Rows) - 1
	}
	if cursor > 0 {
		m.table.SetCursor(cursor)
	}
}

// buildTable constructs the table model from the visible columns and the
// full match set.
func (m *BrowseModel) buildTable() table.Model {
	widths := columnWidths(m.width, len(m.snap.Columns))

	columns := make([]table.Column, len(m.snap.Columns))
	for i, col := range m.snap.Columns {
		columns[i] = table.Column{Title: col.Label, Width: widths[i]}
	}

	rows := make([]table.Row, len(m.snap.Rows))
	for i, r := range m.snap.Rows {
		row := make(table.Row, len(m.snap.Columns))
		for j, col := range m.snap.Columns {
			cell := col.CellValue(r)
			if cell == "" {
				cell = "-"
			}
			row[j] = cell
		}
		rows[i] = row
	}

	height := m.height - chromeHeight
	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// columnWidths distributes the terminal width across n columns.
func columnWidths(total, n int) []int {
	if n == 0 {
		return nil
	}

	per := (total - n*borderPadding) / n
	if per < minColumnWidth {
		per = minColumnWidth
	}
	if per > maxColumnWidth {
		per = maxColumnWidth
	}

	widths := make([]int, n)
	for i := range widths {
		widths[i] = per
	}
	return widths
}

// Column width clamps for the table renderer.
const (
	minColumnWidth = 8
	maxColumnWidth = 32
)
