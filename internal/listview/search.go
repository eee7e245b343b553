package listview

import "strings"

// ApplyTextSearch returns the subset of records where at least one of the
// named fields contains term as a case-insensitive, unanchored substring.
//
// An empty term or an empty field list returns records unchanged. That is a
// deliberate fast path, not filtering to empty: a cleared search box shows
// everything. Records missing a field, or holding nil there, never match on
// that field. Matching is plain substring, not tokenized and not fuzzy.
func ApplyTextSearch(records []Record, term string, fields []string) []Record {
	if term == "" || len(fields) == 0 {
		return records
	}

	needle := strings.ToLower(term)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		for _, field := range fields {
			v := r.Field(field)
			if v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(FormatValue(v)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
