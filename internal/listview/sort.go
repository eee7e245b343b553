package listview

import (
	"sort"
	"strings"
)

// Direction is a sort direction.
type Direction string

// Sort directions. The values double as the CLI's sort-order vocabulary.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ApplySort returns records ordered by the sortKey column. The input slice
// is never reordered; an empty sortKey returns it unchanged.
//
// The value getter resolves through columns: a column declaring sortKey with
// an accessor wins, otherwise the field is read directly by name. The
// comparator is stable and null-aware:
//
//  1. both values nil: equal, original relative order kept
//  2. exactly one nil: the nil sorts last in BOTH directions, so missing
//     data never clutters the top of either order
//  3. otherwise: case-insensitive lexicographic comparison of the string
//     representations, sign flipped for Descending
//
// Comparison is deliberately string-based rather than numeric or date
// aware. Numeric fields therefore sort lexicographically ("10" before "2")
// while ISO-format date strings sort correctly. Screens that need a
// different order for a derived value supply an accessor that formats it
// into a lexicographically sortable form.
func ApplySort(records []Record, sortKey string, dir Direction, columns []Column) []Record {
	if sortKey == "" {
		return records
	}

	value := func(r Record) any { return r.Field(sortKey) }
	if col, ok := columnByKey(columns, sortKey); ok && col.Accessor != nil {
		value = col.Accessor
	}

	out := make([]Record, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		va, vb := value(out[i]), value(out[j])
		switch {
		case va == nil && vb == nil:
			return false
		case va == nil:
			return false
		case vb == nil:
			return true
		}

		cmp := strings.Compare(strings.ToLower(FormatValue(va)), strings.ToLower(FormatValue(vb)))
		if dir == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}
