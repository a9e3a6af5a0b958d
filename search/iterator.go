package search

import (
	"github.com/quartz-engine/quartz/types"
)

// EntityIterator is a forward-only iterator over a snapshot of entity handles.
// Because it walks a snapshot, structural changes made while iterating cannot
// invalidate it; they only make later liveness checks fail.
type EntityIterator struct {
	current  int
	entities []types.Entity
}

// NewEntityIterator returns an iterator over the given entities.
func NewEntityIterator(entities []types.Entity) EntityIterator {
	return EntityIterator{
		current:  0,
		entities: entities,
	}
}

// HasNext returns true if there are more entities to iterate over.
func (it *EntityIterator) HasNext() bool {
	return it.current < len(it.entities)
}

// Next returns the next entity.
func (it *EntityIterator) Next() types.Entity {
	e := it.entities[it.current]
	it.current++
	return e
}
