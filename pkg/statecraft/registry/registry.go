package registry

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry for values indexed by key.
// Unlike a plain map it remembers insertion order, so Keys, Values and Range
// enumerate entries deterministically in the order they were first registered.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	order   []K
}

// New creates a new empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds or updates a value in the registry.
// Updating an existing key keeps its original position.
func (r *Registry[K, V]) Register(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(key, value)
}

// Add registers a value only if the key is not already present.
// Returns an error naming the key when it is taken.
func (r *Registry[K, V]) Add(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("registry: duplicate key %v", key)
	}
	r.put(key, value)
	return nil
}

func (r *Registry[K, V]) put(key K, value V) {
	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = value
}

// Get returns the value for a key and whether it exists.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has returns true if the key exists in the registry.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Delete removes a key from the registry.
func (r *Registry[K, V]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Keys returns all keys in insertion order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Values returns all values in key insertion order.
func (r *Registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := make([]V, 0, len(r.order))
	for _, k := range r.order {
		values = append(values, r.entries[k])
	}
	return values
}

// Len returns the number of entries in the registry.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range iterates over all entries in insertion order.
// If fn returns false, iteration stops.
//
// Range iterates over a snapshot of the registry, so it is safe
// to call Register or Delete during iteration without affecting
// the current iteration.
func (r *Registry[K, V]) Range(fn func(K, V) bool) {
	r.mu.RLock()
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	values := make([]V, len(r.order))
	for i, k := range r.order {
		values[i] = r.entries[k]
	}
	r.mu.RUnlock()

	for i, k := range keys {
		if !fn(k, values[i]) {
			return
		}
	}
}

// Clone returns an independent copy with the same entries and order.
func (r *Registry[K, V]) Clone() *Registry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry[K, V]{
		entries: make(map[K]V, len(r.entries)),
		order:   make([]K, len(r.order)),
	}
	copy(c.order, r.order)
	for k, v := range r.entries {
		c.entries[k] = v
	}
	return c
}
