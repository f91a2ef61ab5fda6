package expr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Lookup resolves a dotted path through nested maps.
// Returns nil, false when any segment is missing.
func Lookup(vars map[string]any, path string) (any, bool) {
	if v, ok := vars[path]; ok {
		return v, true
	}

	var cur any = vars
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case interface{ Map() map[string]any }:
		return m.Map(), true
	default:
		return nil, false
	}
}

// IsTruthy returns whether a value is truthy.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	}
	if f, ok := toNumber(v); ok {
		return f != 0
	}
	return true
}

// ToFloat64 converts a value to float64 for numeric comparison.
// Returns 0 for values that cannot be converted.
func ToFloat64(v any) float64 {
	f, _ := toNumber(v)
	return f
}

func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case uint32:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func isNumeric(v any) bool {
	if _, ok := v.(string); ok {
		return false
	}
	_, ok := toNumber(v)
	return ok
}

func format(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}
