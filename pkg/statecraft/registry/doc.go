// Package registry provides a generic, insertion-ordered, thread-safe registry
// for values indexed by key.
//
// statecraft builds its declaration tables on it: event schemas per
// namespace, command definitions and alias lookups per controller type.
// Those tables are filled once at program start and read on every command,
// so Registry is tuned for reads (sync.RWMutex) and enumerates entries in
// the order they were registered.
//
// # Basic Usage
//
//	r := registry.New[string, int]()
//	r.Register("one", 1)
//	r.Register("two", 2)
//
//	r.Keys() // [one two]
//
// # Unique Keys
//
// Add refuses to overwrite an existing key, which is how alias collisions
// are detected:
//
//	if err := aliases.Add("take off", def); err != nil {
//	    // alias already claimed by another command
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use. Range iterates over a snapshot,
// so mutations during iteration do not affect it.
package registry
