package pagination

import (
	"fmt"
	"strings"

	"github.com/renodesk/renodesk/internal/listview"
)

// SortableFields returns the keys of sortable columns in declaration order.
func SortableFields(columns []listview.Column) []string {
	fields := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.Sortable {
			fields = append(fields, col.Key)
		}
	}
	return fields
}

// ValidateSortField checks that field names a sortable column.
func ValidateSortField(field string, columns []listview.Column) error {
	for _, col := range columns {
		if col.Key == field {
			if !col.Sortable {
				return fmt.Errorf("%w: %q is not sortable (sortable: %s)",
					ErrInvalidSortField, field, strings.Join(SortableFields(columns), ", "))
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q (sortable: %s)",
		ErrInvalidSortField, field, strings.Join(SortableFields(columns), ", "))
}

// FilterableFields returns the declared filter field names.
func FilterableFields(fields []listview.FilterField) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

// ValidateFilterFields checks every filter key against the declared
// filter fields.
func ValidateFilterFields(filters map[string]string, fields []listview.FilterField) error {
	for key := range filters {
		found := false
		for _, f := range fields {
			if f.Field == key {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q (filterable: %s)",
				ErrInvalidFilterField, key, strings.Join(FilterableFields(fields), ", "))
		}
	}
	return nil
}
