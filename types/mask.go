package types

import "math/bits"

// MaxComponentTypes is the number of distinct component types a single world
// can register. One bit of every entity's mask is reserved per type.
const MaxComponentTypes = 256

// Mask is a fixed-capacity bitset with one bit per registered component type.
// It is the single source of truth for "does entity E have component type T":
// bit i is set if and only if storage i holds a live entry for the entity.
type Mask [4]uint64

// Set enables the bit for the given component ID. IDs outside
// [1, MaxComponentTypes] have no bit and are ignored.
func (m *Mask) Set(id ComponentID) {
	if id < 1 || id > MaxComponentTypes {
		return
	}
	bit := uint(id - 1)
	m[bit>>6] |= uint64(1) << (bit & 63)
}

// Unset disables the bit for the given component ID. IDs outside
// [1, MaxComponentTypes] have no bit and are ignored.
func (m *Mask) Unset(id ComponentID) {
	if id < 1 || id > MaxComponentTypes {
		return
	}
	bit := uint(id - 1)
	m[bit>>6] &^= uint64(1) << (bit & 63)
}

// Test reports whether the bit for the given component ID is set. IDs outside
// [1, MaxComponentTypes] have no bit and are never set.
func (m Mask) Test(id ComponentID) bool {
	if id < 1 || id > MaxComponentTypes {
		return false
	}
	bit := uint(id - 1)
	return m[bit>>6]&(uint64(1)<<(bit&63)) != 0
}

// ContainsAll reports whether every bit set in sub is also set in m.
func (m Mask) ContainsAll(sub Mask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// IsZero reports whether no bits are set. A zero mask is still a valid entity
// mask (a tag-only entity).
func (m Mask) IsZero() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// IDs returns the component IDs of all set bits in ascending order.
func (m Mask) IDs() []ComponentID {
	ids := make([]ComponentID, 0, m.Count())
	for word := 0; word < len(m); word++ {
		w := m[word]
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			ids = append(ids, ComponentID(word*64+bit+1))
			w &= w - 1
		}
	}
	return ids
}
