package listview

// Accessor derives a display/sort value from a record, used when the value
// requires resolving through a nested object or joining several fields
// (for example a formatted street address). A nil Accessor means the column
// reads the field named by its Key directly.
type Accessor func(Record) any

// Column describes one potential display/sort/filter dimension of a record.
// Key is the logical field name and the column's identity for sort state and
// visibility; it must be unique within one engine configuration.
type Column struct {
	Key      string
	Label    string
	Accessor Accessor
	Sortable bool
	Hideable bool
}

// NewColumn returns a column with the defaults every screen starts from:
// sortable and hideable. Callers chain the With/Not modifiers to deviate.
func NewColumn(key, label string) Column {
	return Column{Key: key, Label: label, Sortable: true, Hideable: true}
}

// WithAccessor sets a derivation function for the column's value.
func (c Column) WithAccessor(fn Accessor) Column {
	c.Accessor = fn
	return c
}

// NotSortable marks the column as excluded from sort-key cycling.
func (c Column) NotSortable() Column {
	c.Sortable = false
	return c
}

// NotHideable pins the column so responsive narrowing never hides it.
func (c Column) NotHideable() Column {
	c.Hideable = false
	return c
}

// Value resolves the column's value for a record: the accessor when one is
// set, otherwise a direct field read by key.
func (c Column) Value(r Record) any {
	if c.Accessor != nil {
		return c.Accessor(r)
	}
	return r.Field(c.Key)
}

// CellValue resolves and formats the column's value for display and
// comparison.
func (c Column) CellValue(r Record) string {
	return FormatValue(c.Value(r))
}

// FilterField declares one discrete-value filter control exposed to the
// user. Legal values are derived from the current record set via
// DeriveFilterOptions, never from a fixed enum.
type FilterField struct {
	Field string
	Label string
}

// columnByKey returns the column declaring key, or false when no column
// matches (sort falls back to a direct field read in that case).
func columnByKey(columns []Column, key string) (Column, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
