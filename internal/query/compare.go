package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// equalValues implements the store's value equality: numeric kinds
// compare by numeric value (a record decoded from JSON holds float64
// where an in-memory insert may have passed int), everything else by
// deep equality.
func equalValues(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	if aNum != bNum {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two values by their runtime types: numbers
// numerically, strings lexicographically, bools false<true. Mixed or
// unordered types report ok=false and the pair is treated as a tie by
// sorting and as a non-match by range operators.
func compareValues(a, b any) (int, bool) {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}

	sa, aStr := a.(string)
	sb, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(sa, sb), true
	}

	ba, aBool := a.(bool)
	bb, bBool := b.(bool)
	if aBool && bBool {
		switch {
		case ba == bb:
			return 0, true
		case bb:
			return -1, true
		}
		return 1, true
	}

	return 0, false
}

// likeMatch does case-insensitive substring containment over the string
// forms of both sides.
func likeMatch(field, value any) bool {
	if field == nil {
		return false
	}
	return strings.Contains(
		strings.ToLower(stringify(field)),
		strings.ToLower(stringify(value)),
	)
}

// stringify renders a value the way it appears in a composite index key
// or a like comparison. Floats that hold integers print without the
// trailing ".0" JSON decoding would otherwise introduce.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Stringify is the exported form used for composite index keys.
func Stringify(v any) string {
	return stringify(v)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}
