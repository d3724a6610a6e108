package hashmap

// Map is the common behaviour of the thread safe maps in this package. The console uses them for
// the request outcome counters and the read-through response cache.
type Map[K comparable, V any] interface {
	// Size returns the amount of stored key-value pairs
	Size() int

	// Has returns whether a value is assigned to the given key
	Has(key K) bool

	// Lookup returns the value assigned to the given key and a boolean indicating whether it was
	// set before or is just the type's zero value
	Lookup(key K) (V, bool)

	// Get returns the value assigned to the given key.
	// May be the type's zero value if it was not set using Set before; use Has or Lookup for this information.
	Get(key K) V

	// Set sets a key-value pair
	Set(key K, value V)

	// Unset deletes the value assigned to given key
	Unset(key K)

	// Clear clears the whole map (essentially re-creating the underlying map)
	Clear()

	// BootstrappedManipulation runs the given function on the underlying map while holding the
	// map's lock, allowing multi-step operations like increments or snapshot-and-reset to be atomic
	BootstrappedManipulation(func(underlying map[K]V))
}
