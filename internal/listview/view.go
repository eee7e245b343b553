package listview

// ViewMode is a presentation mode for a list screen.
type ViewMode string

// Presentation modes. ModeTable is the default for new users.
const (
	ModeTable ViewMode = "table"
	ModeCards ViewMode = "cards"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	return m == ModeTable || m == ModeCards
}

// Toggle returns the opposite view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ModeTable {
		return ModeCards
	}
	return ModeTable
}

// Density is a vertical-spacing preset, persisted per entity type.
type Density string

// Densities. DensityCompact is the default for new users.
const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
)

// Valid reports whether d is a known density.
func (d Density) Valid() bool {
	return d == DensityCompact || d == DensityComfortable
}

// Toggle returns the opposite density.
func (d Density) Toggle() Density {
	if d == DensityCompact {
		return DensityComfortable
	}
	return DensityCompact
}

// narrowColumnBudget is how many leading columns stay visible below the
// wide breakpoint regardless of flags.
const narrowColumnBudget = 4

// ComputeColumnVisibility decides, per column, whether it renders at the
// given viewport width. Visibility is recomputed from scratch on every
// width change and is not user-togglable state.
//
// At or above wideBreakpoint every column is visible. Below it a column is
// visible when any of: it is not hideable, its key is in alwaysVisible
// (semantic keys a screen never drops, such as the status or primary
// identifier column), or it is among the first narrowColumnBudget declared
// columns.
func ComputeColumnVisibility(columns []Column, width, wideBreakpoint int, alwaysVisible []string) map[string]bool {
	vis := make(map[string]bool, len(columns))
	if width >= wideBreakpoint {
		for _, c := range columns {
			vis[c.Key] = true
		}
		return vis
	}

	always := make(map[string]struct{}, len(alwaysVisible))
	for _, key := range alwaysVisible {
		always[key] = struct{}{}
	}

	for i, c := range columns {
		_, pinned := always[c.Key]
		vis[c.Key] = !c.Hideable || pinned || i < narrowColumnBudget
	}
	return vis
}

// ResolveViewMode reconciles the user's persisted preference with the
// viewport. The effective mode is cards whenever the viewport is narrower
// than mobileBreakpoint OR the preference is cards; otherwise it is table.
// Only the effective mode is forced on narrow viewports; the preference
// itself changes solely through an explicit toggle.
func ResolveViewMode(pref ViewMode, width, mobileBreakpoint int) ViewMode {
	if width < mobileBreakpoint {
		return ModeCards
	}
	if pref == ModeCards {
		return ModeCards
	}
	return ModeTable
}
