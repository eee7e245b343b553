package listview

// Paginate returns the zero-based page of records, the slice
// [page*pageSize, (page+1)*pageSize) clamped to the record count.
//
// Pages beyond the end (after a filtered set shrinks, for example) yield an
// empty slice, never an error; the state owner clamps its page back into
// range when totals change. A pageSize below 1 is clamped to 1 and a
// negative page to 0 so the function stays total under caller misuse.
// Table mode does not page through this function; only cards mode does.
func Paginate(records []Record, page, pageSize int) []Record {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 0 {
		page = 0
	}

	start := page * pageSize
	if start >= len(records) {
		return []Record{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// PageCount returns the number of pages needed to show total records at
// pageSize per page. Zero records means zero pages.
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
