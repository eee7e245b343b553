package listview

import (
	"errors"
	"fmt"
)

// PreferenceStore is the key-value store the engine persists display
// preferences through. Implementations must tolerate unknown keys; the
// engine falls back to documented defaults when a key is absent.
type PreferenceStore interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}

// Persisted setting names, composed into keys via PreferenceKey.
const (
	SettingViewMode = "view-mode"
	SettingDensity  = "density"
)

// Engine defaults, used when a Config leaves the knob zero.
const (
	DefaultKeyPrefix        = "admin"
	DefaultMobileBreakpoint = 768
	DefaultWideBreakpoint   = 1024
	DefaultCardPageSize     = 10
)

// defaultAlwaysVisible lists the semantic column keys every screen keeps on
// narrow viewports unless its config says otherwise.
func defaultAlwaysVisible() []string {
	return []string{"status", "address", "actions"}
}

// Config validation errors.
var (
	ErrMissingEntity   = errors.New("engine config requires an entity name")
	ErrDuplicateColumn = errors.New("duplicate column key")
	ErrBreakpointOrder = errors.New("mobile breakpoint must not exceed wide breakpoint")
)

// PreferenceKey composes the persistence key for one setting of one entity
// type, "{prefix}-{entityType}-{settingName}". The entity segment keeps two
// entity types from ever colliding in the store.
func PreferenceKey(prefix, entity, setting string) string {
	return prefix + "-" + entity + "-" + setting
}

// Config is the surface each calling screen supplies to drive the engine.
type Config struct {
	// Entity names the record type ("requests", "quotes", "projects").
	// It labels the screen and namespaces persisted preferences.
	Entity string
	// Title is the human heading for the screen.
	Title string
	// Columns drive table headers, sort-key resolution, and visibility.
	Columns []Column
	// Filters declares the discrete-value filter controls.
	Filters []FilterField
	// SearchFields is the ordered field list free-text search matches on.
	SearchFields []string

	DefaultSortKey string
	DefaultSortDir Direction

	// AlwaysVisible overrides the semantic always-shown keys on narrow
	// viewports. Nil selects the defaults (status, address, actions).
	AlwaysVisible []string

	// Breakpoints in viewport units. Zero selects the defaults.
	MobileBreakpoint int
	WideBreakpoint   int

	CardPageSize int
	// KeyPrefix namespaces preference keys, "admin" by default.
	KeyPrefix string
}

// Engine owns the view state of one list screen: search term, active
// filters, sort, view mode, density, card page. Exactly one screen instance
// owns an Engine at a time, so no locking is needed; Snapshot derivation is
// idempotent and side-effect-free.
type Engine struct {
	cfg   Config
	store PreferenceStore

	searchTerm   string
	filters      map[string]string
	sortKey      string
	sortDir      Direction
	viewMode     ViewMode
	density      Density
	cardPage     int
	cardPageSize int
	width        int
}

// nopStore backs engines created without persistence.
type nopStore struct{}

func (nopStore) Get(string) (string, bool) { return "", false }
func (nopStore) Set(string, string) error  { return nil }

// New validates cfg, applies defaults, and rehydrates the persisted view
// mode and density for cfg.Entity from store. All other view state starts
// at its mount defaults: page 0, no search, no filters, the configured
// default sort. A nil store disables persistence.
func New(cfg Config, store PreferenceStore) (*Engine, error) {
	if cfg.Entity == "" {
		return nil, ErrMissingEntity
	}
	seen := make(map[string]struct{}, len(cfg.Columns))
	for _, c := range cfg.Columns {
		if _, dup := seen[c.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = struct{}{}
	}

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.MobileBreakpoint <= 0 {
		cfg.MobileBreakpoint = DefaultMobileBreakpoint
	}
	if cfg.WideBreakpoint <= 0 {
		cfg.WideBreakpoint = DefaultWideBreakpoint
	}
	if cfg.MobileBreakpoint > cfg.WideBreakpoint {
		return nil, fmt.Errorf("%w: %d > %d", ErrBreakpointOrder, cfg.MobileBreakpoint, cfg.WideBreakpoint)
	}
	if cfg.CardPageSize < 1 {
		cfg.CardPageSize = DefaultCardPageSize
	}
	if cfg.AlwaysVisible == nil {
		cfg.AlwaysVisible = defaultAlwaysVisible()
	}
	if !cfg.DefaultSortDir.Valid() {
		cfg.DefaultSortDir = Ascending
	}
	if store == nil {
		store = nopStore{}
	}

	e := &Engine{
		cfg:          cfg,
		store:        store,
		filters:      make(map[string]string),
		sortKey:      cfg.DefaultSortKey,
		sortDir:      cfg.DefaultSortDir,
		viewMode:     ModeTable,
		density:      DensityCompact,
		cardPageSize: cfg.CardPageSize,
		// Everything is visible until the first viewport report.
		width: cfg.WideBreakpoint,
	}

	if v, ok := store.Get(e.prefKey(SettingViewMode)); ok {
		if m := ViewMode(v); m.Valid() {
			e.viewMode = m
		}
	}
	if v, ok := store.Get(e.prefKey(SettingDensity)); ok {
		if d := Density(v); d.Valid() {
			e.density = d
		}
	}
	return e, nil
}

func (e *Engine) prefKey(setting string) string {
	return PreferenceKey(e.cfg.KeyPrefix, e.cfg.Entity, setting)
}

// Entity returns the configured entity name.
func (e *Engine) Entity() string { return e.cfg.Entity }

// Title returns the configured screen heading.
func (e *Engine) Title() string { return e.cfg.Title }

// Columns returns the full declared column list, visibility aside.
func (e *Engine) Columns() []Column { return e.cfg.Columns }

// Filters returns the declared filter controls.
func (e *Engine) Filters() []FilterField { return e.cfg.Filters }

// SearchTerm returns the current free-text search term.
func (e *Engine) SearchTerm() string { return e.searchTerm }

// ActiveFilters returns a copy of the current field selections.
func (e *Engine) ActiveFilters() map[string]string {
	out := make(map[string]string, len(e.filters))
	for k, v := range e.filters {
		out[k] = v
	}
	return out
}

// SortKey returns the canonical sort column key. Table and cards mode both
// render from this one value; switching modes never changes it.
func (e *Engine) SortKey() string { return e.sortKey }

// SortDirection returns the canonical sort direction.
func (e *Engine) SortDirection() Direction { return e.sortDir }

// ViewModePreference returns the persisted preference, which may differ
// from the effective mode on narrow viewports.
func (e *Engine) ViewModePreference() ViewMode { return e.viewMode }

// Density returns the current density preset.
func (e *Engine) Density() Density { return e.density }

// CardPage returns the current zero-based cards page.
func (e *Engine) CardPage() int { return e.cardPage }

// CardPageSize returns the cards-per-page count.
func (e *Engine) CardPageSize() int { return e.cardPageSize }

// ViewportWidth returns the last reported viewport width.
func (e *Engine) ViewportWidth() int { return e.width }

// SetSearch replaces the search term. Changing it rewinds the cards page so
// the user sees the first page of new matches.
func (e *Engine) SetSearch(term string) {
	if e.searchTerm == term {
		return
	}
	e.searchTerm = term
	e.cardPage = 0
}

// SetFilter selects value for field. Empty and FilterAll selections clear
// the field. Changing a filter rewinds the cards page.
func (e *Engine) SetFilter(field, value string) {
	if value == "" || value == FilterAll {
		if _, ok := e.filters[field]; !ok {
			return
		}
		delete(e.filters, field)
	} else {
		if e.filters[field] == value {
			return
		}
		e.filters[field] = value
	}
	e.cardPage = 0
}

// ClearFilters drops every active filter selection.
func (e *Engine) ClearFilters() {
	if len(e.filters) == 0 {
		return
	}
	e.filters = make(map[string]string)
	e.cardPage = 0
}

// SetSort sets the canonical sort state. Invalid directions are ignored so
// a partially parsed flag cannot corrupt the state.
func (e *Engine) SetSort(key string, dir Direction) {
	e.sortKey = key
	if dir.Valid() {
		e.sortDir = dir
	}
}

// CycleSortKey advances the sort key to the next sortable column after the
// current one, wrapping at the end, and returns the new key. With no
// sortable columns it leaves the state alone.
func (e *Engine) CycleSortKey() string {
	sortable := make([]string, 0, len(e.cfg.Columns))
	for _, c := range e.cfg.Columns {
		if c.Sortable {
			sortable = append(sortable, c.Key)
		}
	}
	if len(sortable) == 0 {
		return e.sortKey
	}

	next := sortable[0]
	for i, key := range sortable {
		if key == e.sortKey {
			next = sortable[(i+1)%len(sortable)]
			break
		}
	}
	e.sortKey = next
	return next
}

// ToggleSortDirection flips the canonical direction and returns it.
func (e *Engine) ToggleSortDirection() Direction {
	e.sortDir = e.sortDir.Toggle()
	return e.sortDir
}

// ToggleViewMode flips the persisted view-mode preference and writes it
// through the store. The in-memory state is authoritative either way; a
// store error is returned for the caller to log, not to roll back.
func (e *Engine) ToggleViewMode() (ViewMode, error) {
	e.viewMode = e.viewMode.Toggle()
	return e.viewMode, e.store.Set(e.prefKey(SettingViewMode), string(e.viewMode))
}

// ToggleDensity flips the persisted density preset and writes it through
// the store, with the same fire-and-forget error contract as
// ToggleViewMode.
func (e *Engine) ToggleDensity() (Density, error) {
	e.density = e.density.Toggle()
	return e.density, e.store.Set(e.prefKey(SettingDensity), string(e.density))
}

// SetViewportWidth records a viewport resize. Column visibility and the
// effective view mode are derived from it on the next Snapshot.
func (e *Engine) SetViewportWidth(width int) {
	if width > 0 {
		e.width = width
	}
}

// SetCardPage jumps to a zero-based cards page. Negative pages clamp to 0;
// pages beyond the end render empty until Snapshot clamps them back.
func (e *Engine) SetCardPage(page int) {
	if page < 0 {
		page = 0
	}
	e.cardPage = page
}

// NextCardPage advances one cards page, bounded by pageCount (from the
// latest Snapshot).
func (e *Engine) NextCardPage(pageCount int) {
	if e.cardPage+1 < pageCount {
		e.cardPage++
	}
}

// PrevCardPage steps back one cards page.
func (e *Engine) PrevCardPage() {
	if e.cardPage > 0 {
		e.cardPage--
	}
}

// SetCardPageSize changes the cards-per-page count. A size change resets
// the page to 0; anything below 1 clamps to 1.
func (e *Engine) SetCardPageSize(size int) {
	if size < 1 {
		size = 1
	}
	if size == e.cardPageSize {
		return
	}
	e.cardPageSize = size
	e.cardPage = 0
}

// Snapshot is one derived rendering of a record set: everything the
// presentation layer needs, computed fresh from the engine's state.
type Snapshot struct {
	// Rows is the full searched, filtered, sorted set (table mode rows).
	Rows []Record
	// Page is the cards-mode slice of Rows for PageIndex.
	Page []Record
	// PageIndex is the cards page actually shown, clamped into range;
	// it can differ from Engine.CardPage after the match set shrinks.
	PageIndex int
	PageCount int
	PageSize  int

	TotalCount int
	MatchCount int

	// Columns holds the visible columns in declaration order.
	Columns    []Column
	Visibility map[string]bool

	// Mode is the effective view mode after viewport reconciliation.
	Mode    ViewMode
	Density Density

	SortKey string
	SortDir Direction

	// FilterOptions maps each declared filter field to its derived
	// option list. Options come from the full record set, so a selection
	// in one filter never hides the others' values.
	FilterOptions map[string][]string
}

// Snapshot derives the current view of records. It is pure with respect to
// the engine: recomputing on every keystroke, filter change, or resize
// yields the same result for the same inputs and mutates nothing.
func (e *Engine) Snapshot(records []Record) Snapshot {
	rows := ApplyTextSearch(records, e.searchTerm, e.cfg.SearchFields)
	rows = ApplyFieldFilters(rows, e.filters)
	rows = ApplySort(rows, e.sortKey, e.sortDir, e.cfg.Columns)

	pages := PageCount(len(rows), e.cardPageSize)
	page := e.cardPage
	switch {
	case pages == 0:
		page = 0
	case page >= pages:
		page = pages - 1
	}

	vis := ComputeColumnVisibility(e.cfg.Columns, e.width, e.cfg.WideBreakpoint, e.cfg.AlwaysVisible)
	visible := make([]Column, 0, len(e.cfg.Columns))
	for _, c := range e.cfg.Columns {
		if vis[c.Key] {
			visible = append(visible, c)
		}
	}

	options := make(map[string][]string, len(e.cfg.Filters))
	for _, f := range e.cfg.Filters {
		options[f.Field] = DeriveFilterOptions(records, f.Field)
	}

	return Snapshot{
		Rows:          rows,
		Page:          Paginate(rows, page, e.cardPageSize),
		PageIndex:     page,
		PageCount:     pages,
		PageSize:      e.cardPageSize,
		TotalCount:    len(records),
		MatchCount:    len(rows),
		Columns:       visible,
		Visibility:    vis,
		Mode:          ResolveViewMode(e.viewMode, e.width, e.cfg.MobileBreakpoint),
		Density:       e.density,
		SortKey:       e.sortKey,
		SortDir:       e.sortDir,
		FilterOptions: options,
	}
}
