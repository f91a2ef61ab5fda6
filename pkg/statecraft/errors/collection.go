package errors

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Entry is a single recorded error: a kind plus free-form parameters.
type Entry struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// Category returns the entry's category.
func (e Entry) Category() Category {
	return Categorize(e.Type)
}

// String renders the entry as "kind {k=v ...}".
func (e Entry) String() string {
	if len(e.Params) == 0 {
		return e.Type
	}
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, e.Params[k])
	}
	return fmt.Sprintf("%s {%s}", e.Type, strings.Join(parts, " "))
}

// Collection accumulates errors recorded during a single invocation.
// Entries keep the order they were added. The zero value is ready to use,
// and read methods are safe on a nil *Collection.
type Collection struct {
	entries []Entry
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add records an error of the given kind. The params map is copied.
func (c *Collection) Add(kind string, params map[string]any) {
	var p map[string]any
	if len(params) > 0 {
		p = maps.Clone(params)
	}
	c.entries = append(c.entries, Entry{Type: kind, Params: p})
}

// Has reports whether any entry of the given kind was recorded.
func (c *Collection) Has(kind string) bool {
	_, ok := c.Find(kind)
	return ok
}

// Find returns the first entry of the given kind.
func (c *Collection) Find(kind string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.entries {
		if e.Type == kind {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter returns every entry of the given kind, in recording order.
func (c *Collection) Filter(kind string) []Entry {
	if c == nil {
		return nil
	}
	var out []Entry
	for _, e := range c.entries {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// All returns a copy of every recorded entry.
func (c *Collection) All() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Kinds returns the distinct kinds recorded, in first-seen order.
func (c *Collection) Kinds() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool, len(c.entries))
	var kinds []string
	for _, e := range c.entries {
		if !seen[e.Type] {
			seen[e.Type] = true
			kinds = append(kinds, e.Type)
		}
	}
	return kinds
}

// Len returns the number of recorded entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Empty reports whether nothing was recorded.
func (c *Collection) Empty() bool {
	return c.Len() == 0
}

// Merge appends every entry of other.
func (c *Collection) Merge(other *Collection) {
	if other == nil {
		return
	}
	c.entries = append(c.entries, other.entries...)
}

// Err returns nil for an empty collection, otherwise a *CollectionError
// wrapping a snapshot of the entries.
func (c *Collection) Err() error {
	if c.Empty() {
		return nil
	}
	return &CollectionError{Entries: c.All()}
}

// CollectionError exposes a non-empty collection through the error interface.
type CollectionError struct {
	Entries []Entry
}

// Error implements the error interface.
func (e *CollectionError) Error() string {
	parts := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		parts[i] = entry.String()
	}
	return strings.Join(parts, "; ")
}
