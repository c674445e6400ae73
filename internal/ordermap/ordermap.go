// Package ordermap provides a minimal insertion-order-preserving map,
// used wherever deterministic iteration order matters — most notably
// free-variable sets, whose order fixes closure-environment struct
// layout.
package ordermap

// Map is an insertion-order-preserving map from K to V. The zero value
// is ready to use.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// Insert adds key->value if key is not already present. First insertion
// wins on conflict.
func (m *Map[K, V]) Insert(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
}

// Delete removes key, if present, preserving the order of the rest.
func (m *Map[K, V]) Delete(key K) {
	if m.values == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Get looks up key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order. Callers must not mutate the
// returned slice.
func (m *Map[K, V]) Keys() []K { return m.keys }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Union returns a new Map containing m's entries followed by other's,
// with m's entries winning on key conflict.
func Union[K comparable, V any](m, other *Map[K, V]) *Map[K, V] {
	out := &Map[K, V]{}
	if m != nil {
		for _, k := range m.keys {
			v, _ := m.Get(k)
			out.Insert(k, v)
		}
	}
	if other != nil {
		for _, k := range other.keys {
			v, _ := other.Get(k)
			out.Insert(k, v)
		}
	}
	return out
}

// New constructs an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}
