// Package listview implements the shared list-screen engine used by every
// entity browser in renodesk.
//
// The engine converts a raw record slice plus a screen configuration into the
// exact ordered, filtered, paginated view the presentation layer should
// render, along with derived UI-affordance data:
//   - free-text search across configured fields
//   - per-field equality filters with derived option lists
//   - stable, null-aware sorting with column accessor resolution
//   - cards-mode pagination
//   - width-responsive column visibility and view-mode resolution
//   - persisted per-entity display preferences (view mode, density)
//
// All derivation functions are pure and total: empty slices, absent fields,
// and nil values are valid inputs with defined behavior, never errors. State
// lives only in Engine, which is owned by exactly one screen at a time;
// Snapshot may be recomputed on every input change without side effects.
package listview
