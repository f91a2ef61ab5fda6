package store

import (
	"encoding/json"
	"maps"
	"slices"
)

// Snapshot is an immutable view of application state.
// The zero value is an empty snapshot.
type Snapshot struct {
	data map[string]any
}

// NewSnapshot creates a snapshot holding a copy of data.
func NewSnapshot(data map[string]any) Snapshot {
	return Snapshot{data: maps.Clone(data)}
}

// Get returns the value under key, or nil.
func (s Snapshot) Get(key string) any {
	return s.data[key]
}

// Lookup returns the value under key and whether it is set.
func (s Snapshot) Lookup(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Has reports whether key is set.
func (s Snapshot) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Bool returns the boolean under key, or false.
func (s Snapshot) Bool(key string) bool {
	b, _ := s.data[key].(bool)
	return b
}

// String returns the string under key, or "".
func (s Snapshot) String(key string) string {
	str, _ := s.data[key].(string)
	return str
}

// Int returns the integer under key, or 0. Whole floats convert.
func (s Snapshot) Int(key string) int {
	switch v := s.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return 0
}

// With returns a new snapshot with key set to value.
func (s Snapshot) With(key string, value any) Snapshot {
	d := make(map[string]any, len(s.data)+1)
	maps.Copy(d, s.data)
	d[key] = value
	return Snapshot{data: d}
}

// Merge returns a new snapshot with every entry of changes applied.
func (s Snapshot) Merge(changes map[string]any) Snapshot {
	d := make(map[string]any, len(s.data)+len(changes))
	maps.Copy(d, s.data)
	maps.Copy(d, changes)
	return Snapshot{data: d}
}

// Without returns a new snapshot with key removed.
func (s Snapshot) Without(key string) Snapshot {
	if !s.Has(key) {
		return s
	}
	d := maps.Clone(s.data)
	delete(d, key)
	return Snapshot{data: d}
}

// Keys returns the set keys in sorted order.
func (s Snapshot) Keys() []string {
	return slices.Sorted(maps.Keys(s.data))
}

// Len returns the number of set keys.
func (s Snapshot) Len() int {
	return len(s.data)
}

// Map returns a copy of the snapshot as a map.
func (s Snapshot) Map() map[string]any {
	d := make(map[string]any, len(s.data))
	maps.Copy(d, s.data)
	return d
}

// MarshalJSON encodes the snapshot as a JSON object.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// Static serves a fixed snapshot as a state source.
type Static struct {
	snap Snapshot
}

// NewStatic returns a source that always reports snap.
func NewStatic(snap Snapshot) *Static {
	return &Static{snap: snap}
}

// State returns the fixed snapshot.
func (s *Static) State() Snapshot {
	return s.snap
}
