package area

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
)

// VnumMap is an insertion-ordered map from vnum to record. Iteration and JSON
// encoding follow file order.
//
// Invariant: every key in keys is present in items exactly once.
type VnumMap[T any] struct {
	keys  []int
	items map[int]T
}

// NewVnumMap returns an empty map.
func NewVnumMap[T any]() *VnumMap[T] {
	return &VnumMap[T]{items: make(map[int]T)}
}

// Set stores v under vnum. Replacing an existing vnum keeps its original
// position.
func (m *VnumMap[T]) Set(vnum int, v T) {
	if _, ok := m.items[vnum]; !ok {
		m.keys = append(m.keys, vnum)
	}
	m.items[vnum] = v
}

// Get returns the record stored under vnum.
func (m *VnumMap[T]) Get(vnum int) (T, bool) {
	v, ok := m.items[vnum]
	return v, ok
}

// Len returns the number of records.
func (m *VnumMap[T]) Len() int { return len(m.keys) }

// Keys returns the vnums in insertion order.
func (m *VnumMap[T]) Keys() []int {
	out := make([]int, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates the records in insertion order.
func (m *VnumMap[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the map as a JSON object whose keys appear in
// insertion order.
func (m *VnumMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(k)))
		buf.WriteByte(':')
		v, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, fmt.Errorf("encoding vnum %d: %w", k, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
