package listview

import "sort"

// FilterAll is the sentinel selection meaning "no restriction" for a filter
// field. Filter dropdowns offer it as the implicit first option.
const FilterAll = "all"

// ApplyFieldFilters retains the records matching every active filter.
//
// A pair whose selected value is empty or FilterAll is skipped. The rest
// compare by string-coerced equality: numeric and boolean fields match via
// the same string representation DeriveFilterOptions produced them with.
// Filters are independent predicates composed with AND, so application
// order never affects the result.
func ApplyFieldFilters(records []Record, active map[string]string) []Record {
	effective := make(map[string]string, len(active))
	for field, selected := range active {
		if selected == "" || selected == FilterAll {
			continue
		}
		effective[field] = selected
	}
	if len(effective) == 0 {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		keep := true
		for field, selected := range effective {
			v := r.Field(field)
			if v == nil || FormatValue(v) != selected {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// DeriveFilterOptions produces the distinct, non-nil, non-empty values of
// field across records, stringified and sorted ascending. Each value doubles
// as its own display label. Options reflect whatever record set the caller
// passes, so they track the data instead of a fixed vocabulary.
func DeriveFilterOptions(records []Record, field string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		v := r.Field(field)
		if v == nil {
			continue
		}
		s := FormatValue(v)
		if s == "" {
			continue
		}
		seen[s] = struct{}{}
	}

	options := make([]string, 0, len(seen))
	for s := range seen {
		options = append(options, s)
	}
	sort.Strings(options)
	return options
}
