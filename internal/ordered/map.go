// Package ordered provides a minimal insertion-ordered map, used by
// xtce/definitions to model XTCE's ParameterTypeSet/ParameterSet/
// ContainerSet — each a uniquely-keyed set whose declaration order the
// loader and serializer must preserve (spec §3, §8 round-trip law).
package ordered

// Map is an insertion-ordered map from K to V. The zero value is not
// usable; construct with NewMap.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewMap returns an empty, ready-to-use Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set inserts or overwrites key's value, recording insertion order on
// first-time inserts. Returns true if key already existed.
func (m *Map[K, V]) Set(key K, value V) bool {
	_, exists := m.values[key]
	if !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return exists
}

// Get returns key's value and whether it is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	return m.keys
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// All iterates (key, value) pairs in insertion order.
func (m *Map[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}
