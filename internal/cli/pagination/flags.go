package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/renodesk/renodesk/internal/listview"
)

// Flag defaults and validation limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MinPage         = 1
	MinPageSize     = 1
	MaxPageSize     = 500
)

// Common validation errors.
var (
	ErrInvalidPage         = errors.New("page must be >= 1")
	ErrInvalidPageSize     = errors.New("page-size must be between 1 and 500, or 0 to disable paging")
	ErrInvalidSortFormat   = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'createdAt:desc')")
	ErrEmptySortField      = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder    = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField    = errors.New("invalid sort field")
	ErrInvalidFilterFormat = errors.New("invalid filter format: use 'field=value' (e.g., 'status=New')")
	ErrInvalidFilterField  = errors.New("invalid filter field")
)

// Params holds the list-command flags. Page is 1-based on the command
// line; PageIndex converts to the engine's 0-based pages. PageSize 0
// disables paging.
type Params struct {
	Page     int
	PageSize int
	Sort     string
	Filters  []string
	Search   string
}

// NewParams returns Params with default values.
func NewParams() *Params {
	return &Params{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Bind registers the shared list flags on flags.
func (p *Params) Bind(flags *pflag.FlagSet) {
	flags.IntVar(&p.Page, "page", p.Page, "page to show (1-based)")
	flags.IntVar(&p.PageSize, "page-size", p.PageSize, "records per page (0 shows everything)")
	flags.StringVar(&p.Sort, "sort", p.Sort, "sort expression: 'field' or 'field:asc|desc'")
	flags.StringArrayVar(&p.Filters, "filter", nil, "field filter 'field=value' (repeatable)")
	flags.StringVar(&p.Search, "search", "", "case-insensitive text search")
}

// Validate checks the numeric flags. Sort and filter expressions are
// validated when parsed.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize != 0 && (p.PageSize < MinPageSize || p.PageSize > MaxPageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// PageIndex returns the 0-based page index for the engine.
func (p Params) PageIndex() int {
	if p.Page < MinPage {
		return 0
	}
	return p.Page - 1
}

// sortPartsMax is the maximum number of parts in a sort expression.
const sortPartsMax = 2

// ParseSort parses a sort expression in the format "field" or
// "field:order". A bare field sorts ascending.
func ParseSort(expr string) (string, listview.Direction, error) {
	if strings.TrimSpace(expr) == "" {
		return "", "", ErrEmptySortField
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	dir := listview.Ascending
	if len(parts) == sortPartsMax {
		dir = listview.Direction(strings.ToLower(strings.TrimSpace(parts[1])))
		if !dir.Valid() {
			return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, parts[1])
		}
	}

	return field, dir, nil
}

// ParseFilter parses one --filter expression in the format "field=value".
func ParseFilter(expr string) (string, string, error) {
	field, value, ok := strings.Cut(expr, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFilterFormat, expr)
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFilterFormat, expr)
	}
	return field, strings.TrimSpace(value), nil
}

// FilterMap parses every --filter expression into a field->value map.
// Later expressions overwrite earlier ones for the same field.
func (p Params) FilterMap() (map[string]string, error) {
	if len(p.Filters) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(p.Filters))
	for _, expr := range p.Filters {
		field, value, err := ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		filters[field] = value
	}
	return filters, nil
}
