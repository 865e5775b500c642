package sync

import (
	"sync"

	"golang.org/x/exp/maps"
)

// Map is like a Go map[K]V but is safe for concurrent use by multiple goroutines.
type Map[K comparable, V any] struct {
	mutex sync.RWMutex
	data  map[K]V
}

// NewMap creates map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Store sets the value for a key.
func (m *Map[K, V]) Store(key K, value V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = value
}

// Load returns the value stored in the map for a key. The ok result
// indicates whether the value was found in the map.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok = m.data[key]
	return value, ok
}

// LoadOrStore returns the existing value for the key if present. Otherwise,
// it stores and returns the given value. The loaded result is true if the
// value was loaded, false if stored.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.data[key]
	if ok {
		return v, true
	}
	m.data[key] = value
	return value, false
}

// LoadAndDelete deletes the value for a key, returning the previous value if
// any. The loaded result reports whether the key was present.
func (m *Map[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.data[key]
	if ok {
		delete(m.data, key)
	}
	return v, ok
}

// Delete deletes the value for a key.
func (m *Map[K, V]) Delete(key K) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.data, key)
}

// Length returns the number of stored keys.
func (m *Map[K, V]) Length() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.data)
}

// Range calls f sequentially for each key and value present in the map. If f
// returns false, range stops the iteration. The function iterates over a
// copy of the map taken under a read lock, so f may modify the map.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.mutex.RLock()
	mCopy := make(map[K]V, len(m.data))
	maps.Copy(mCopy, m.data)
	m.mutex.RUnlock()
	for key, value := range mCopy {
		if !f(key, value) {
			return
		}
	}
}
