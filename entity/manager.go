// Package entity allocates and tracks entity identifiers. An identifier is an
// index plus a generation; freed indices are reused with a bumped generation so
// stale handles can always be detected.
package entity

import (
	"github.com/rotisserie/eris"

	"github.com/quartz-engine/quartz/types"
)

var ErrEntityNotAlive = eris.New("entity does not exist")

// Manager owns the entity index space and the per-entity component masks.
// Not safe for concurrent structural mutation.
type Manager struct {
	// generations[i] is the generation a live handle for index i must carry.
	// It starts at 1 on first allocation and is bumped every time the index is
	// destroyed, so handles from a previous use never match again.
	generations []types.Generation
	masks       []types.Mask
	alive       []bool
	// destroyed indices available for reuse, most recently freed last
	destroyed []types.EntityIndex
}

func NewManager() *Manager {
	return &Manager{
		destroyed: make([]types.EntityIndex, 0, 256),
	}
}

// Create allocates an entity with the given initial component mask. A freed
// index is reused when available, otherwise the index space is extended.
func (m *Manager) Create(mask types.Mask) types.Entity {
	if n := len(m.destroyed); n > 0 {
		idx := m.destroyed[n-1]
		m.destroyed = m.destroyed[:n-1]
		m.masks[idx] = mask
		m.alive[idx] = true
		return types.Entity{Index: idx, Generation: m.generations[idx]}
	}
	idx := types.EntityIndex(len(m.generations))
	m.generations = append(m.generations, 1)
	m.masks = append(m.masks, mask)
	m.alive = append(m.alive, true)
	return types.Entity{Index: idx, Generation: 1}
}

// Destroy frees the entity's index for reuse and bumps its generation so every
// outstanding handle becomes detectably stale. Destroying a dead or stale
// entity is an error and mutates nothing.
func (m *Manager) Destroy(e types.Entity) error {
	if !m.IsAlive(e) {
		return eris.Wrapf(ErrEntityNotAlive, "entity %s", e)
	}
	m.masks[e.Index] = types.Mask{}
	m.alive[e.Index] = false
	m.generations[e.Index]++
	m.destroyed = append(m.destroyed, e.Index)
	return nil
}

// IsAlive reports whether the handle refers to a live entity: the index must
// be in range and the generation must match the slot's live generation.
func (m *Manager) IsAlive(e types.Entity) bool {
	if e.IsNil() || int(e.Index) >= len(m.generations) {
		return false
	}
	return m.alive[e.Index] && m.generations[e.Index] == e.Generation
}

// Mask returns the entity's live component mask.
func (m *Manager) Mask(e types.Entity) (types.Mask, error) {
	if !m.IsAlive(e) {
		return types.Mask{}, eris.Wrapf(ErrEntityNotAlive, "entity %s", e)
	}
	return m.masks[e.Index], nil
}

// SetMask replaces the entity's live component mask.
func (m *Manager) SetMask(e types.Entity, mask types.Mask) error {
	if !m.IsAlive(e) {
		return eris.Wrapf(ErrEntityNotAlive, "entity %s", e)
	}
	m.masks[e.Index] = mask
	return nil
}

// Each calls fn for every live entity in index order, stopping early when fn
// returns false. An empty mask is still a live entity. Iteration order is
// index order, not creation order, and is stable between calls that do not
// change liveness.
func (m *Manager) Each(fn func(types.Entity) bool) {
	for idx := range m.generations {
		if !m.alive[idx] {
			continue
		}
		e := types.Entity{Index: types.EntityIndex(idx), Generation: m.generations[idx]}
		if !fn(e) {
			return
		}
	}
}

// Entities returns a snapshot of all live entities in index order.
func (m *Manager) Entities() []types.Entity {
	out := make([]types.Entity, 0, m.Len())
	m.Each(func(e types.Entity) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Len returns the number of live entities.
func (m *Manager) Len() int {
	n := 0
	for idx := range m.alive {
		if m.alive[idx] {
			n++
		}
	}
	return n
}
