package threadsafe

import "sync"

// Map provides a simple locked map[K]V in order to make it thread safe
type Map[K comparable, V any] struct {
	sync.RWMutex
	values map[K]V
}

// NewMap creates a new thread safe map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

// Size returns the amount of stored K-V-pairs
func (safeMap *Map[K, V]) Size() int {
	safeMap.RLock()
	defer safeMap.RUnlock()
	return len(safeMap.values)
}

// Lookup looks up a specific key and returns the corresponding value and a boolean indicating if it was found
func (safeMap *Map[K, V]) Lookup(key K) (V, bool) {
	safeMap.RLock()
	defer safeMap.RUnlock()
	val, ok := safeMap.values[key]
	return val, ok
}

// Set sets the value of a specific key
func (safeMap *Map[K, V]) Set(key K, val V) {
	safeMap.Lock()
	defer safeMap.Unlock()
	safeMap.values[key] = val
}

// Remove removes the value of a specific key
func (safeMap *Map[K, V]) Remove(key K) {
	safeMap.Lock()
	defer safeMap.Unlock()
	delete(safeMap.values, key)
}

// Range calls the given function for every stored K-V-pair while holding the read lock
func (safeMap *Map[K, V]) Range(fn func(key K, val V)) {
	safeMap.RLock()
	defer safeMap.RUnlock()
	for key, val := range safeMap.values {
		fn(key, val)
	}
}

// Reset re-creates the underlying map
func (safeMap *Map[K, V]) Reset() {
	safeMap.Lock()
	defer safeMap.Unlock()
	safeMap.values = make(map[K]V)
}
