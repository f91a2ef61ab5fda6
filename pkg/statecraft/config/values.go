package config

import (
	"time"
)

// Values wraps a map[string]any for type-safe value extraction.
// All accessor methods return the default value if the key is missing
// or the value cannot be converted to the requested type.
type Values struct {
	data map[string]any
}

// NewValues creates Values from the given map.
// If data is nil, empty Values are returned.
func NewValues(data map[string]any) Values {
	if data == nil {
		data = make(map[string]any)
	}
	return Values{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (v Values) String(key, defaultVal string) string {
	if s, ok := v.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (v Values) Bool(key string, defaultVal bool) bool {
	if b, ok := v.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
// Floats convert only when they have no fractional part.
func (v Values) Int(key string, defaultVal int) int {
	switch val := v.data[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Float returns the float64 value for key, or defaultVal if missing or not convertible.
func (v Values) Float(key string, defaultVal float64) float64 {
	switch val := v.data[key].(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
// Strings are parsed with time.ParseDuration; numbers are seconds.
func (v Values) Duration(key string, defaultVal time.Duration) time.Duration {
	switch val := v.data[key].(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case time.Duration:
		return val
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or
// not convertible. A single string is returned as a one-element slice.
func (v Values) StringSlice(key string, defaultVal []string) []string {
	switch val := v.data[key].(type) {
	case []string:
		return val
	case string:
		return []string{val}
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// Map returns the nested map for key, or nil if missing or not a map.
func (v Values) Map(key string) map[string]any {
	if m, ok := v.data[key].(map[string]any); ok {
		return m
	}
	return nil
}

// Sub returns the nested map for key as Values.
func (v Values) Sub(key string) Values {
	return NewValues(v.Map(key))
}

// List returns the elements of the list under key that are maps, as Values.
func (v Values) List(key string) []Values {
	items, ok := v.data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Values, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, NewValues(m))
		}
	}
	return out
}

// Any returns the raw value for key, or defaultVal if missing.
func (v Values) Any(key string, defaultVal any) any {
	val, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	return val
}

// Has returns true if the key exists.
func (v Values) Has(key string) bool {
	_, ok := v.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (v Values) Raw() map[string]any {
	return v.data
}
