package listview

import (
	"fmt"
	"strconv"
)

// Record is one entity instance shown in a list screen: a unique string id
// plus an open-ended mapping of field name to value (string, number, bool,
// date string, or nested object). The engine is fully generic over record
// shape and never mutates an input record.
type Record map[string]any

// RecordIDField is the field every record must carry, unique within one
// input slice. Uniqueness is a caller invariant, not something the engine
// detects.
const RecordIDField = "id"

// ID returns the record's identifier, or "" when absent.
func (r Record) ID() string {
	id, _ := r[RecordIDField].(string)
	return id
}

// Field returns the named field's value. Missing fields and explicit nil
// values are indistinguishable: both return nil and both mean "no data" to
// search, filters, and sorting.
func (r Record) Field(name string) any {
	if r == nil {
		return nil
	}
	return r[name]
}

// FormatValue converts a field value to the string used for searching,
// filter-option derivation, filter equality, sorting, and display. The
// coercion must stay consistent across all of those so a derived filter
// option always matches the records it was derived from.
//
// nil converts to "". Floats use the shortest round-trip decimal form, so
// whole-number floats (the usual result of decoding JSON) render without an
// exponent or trailing zeros.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
