package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/renodesk/renodesk/internal/listview"
)

// printer renders numbers with locale-aware digit grouping for the money
// and size columns.
//
//nolint:gochecknoglobals // Shared formatter, construction is not cheap.
var printer = message.NewPrinter(language.English)

// moneyValue formats a numeric field as whole dollars with digit grouping.
// Non-numeric values pass through untouched and nil stays nil so missing
// amounts keep sorting last.
func moneyValue(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return printer.Sprintf("$%.0f", n)
	case int:
		return printer.Sprintf("$%d", n)
	case int64:
		return printer.Sprintf("$%d", n)
	default:
		return v
	}
}

// FormatCount renders an integer with digit grouping for summary lines.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney renders whole dollars with digit grouping.
func FormatMoney(amount float64) string {
	return printer.Sprintf("$%.0f", amount)
}

// AmountOf reads a screen's amount field from a record as a float64.
// Missing and non-numeric values return 0 and false.
func AmountOf(s Screen, r listview.Record) (float64, bool) {
	if s.AmountField == "" {
		return 0, false
	}
	switch n := r.Field(s.AmountField).(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
