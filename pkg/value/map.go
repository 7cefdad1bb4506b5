package value

import (
	"iter"
	"slices"
)

// Map is a string-keyed object that remembers insertion order. Setting an
// existing key keeps its original position. Read methods accept a nil Map,
// Set does not.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// MapOf builds a Map from alternating key and value arguments.
func MapOf(kv ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		val, ok := kv[i+1].(Value)
		if !ok {
			val, _ = Of(kv[i+1])
		}
		m.Set(key, val)
	}
	return m
}

// Len returns the number of keys in m.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Set stores v under key.
func (m *Map) Set(key string, v Value) {
	if m.vals == nil {
		m.vals = make(map[string]Value)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates over the entries of m in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	res := NewMap()
	for k, v := range m.All() {
		res.Set(k, v.Clone())
	}
	return res
}

// Interface converts m into a map[string]any, losing the key order.
func (m *Map) Interface() map[string]any {
	res := make(map[string]any, m.Len())
	for k, v := range m.All() {
		res[k] = v.Interface()
	}
	return res
}
