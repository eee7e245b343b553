package pagination

import (
	"github.com/renodesk/renodesk/internal/listview"
)

// Meta describes one page of list results for JSON output. Field names
// are camelCase to match the backend export format.
type Meta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	MatchCount  int  `json:"matchCount"`
	TotalCount  int  `json:"totalCount"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewMeta builds page metadata from an engine snapshot. Page is 1-based
// in the output.
func NewMeta(snap listview.Snapshot) Meta {
	return Meta{
		Page:        snap.PageIndex + 1,
		PageSize:    snap.PageSize,
		TotalPages:  snap.PageCount,
		MatchCount:  snap.MatchCount,
		TotalCount:  snap.TotalCount,
		HasPrevious: snap.PageIndex > 0,
		HasNext:     snap.PageIndex < snap.PageCount-1,
	}
}
