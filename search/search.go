// Package search implements lazy, mask-filtered views over a world's entities.
package search

import (
	"github.com/rotisserie/eris"

	"github.com/quartz-engine/quartz/filter"
	"github.com/quartz-engine/quartz/types"
)

var ErrNoMatch = eris.New("no entity matches the search")

// Reader is the slice of the world a search evaluates against.
type Reader interface {
	// Entities returns a snapshot of all live entities in index order.
	Entities() []types.Entity
	// EntityMask returns the entity's live component mask.
	EntityMask(e types.Entity) (types.Mask, error)
	// ComponentID returns the registered ID for a component name; ok is
	// false for unregistered names.
	ComponentID(name string) (types.ComponentID, bool)
}

// CallbackFn represents a function that can operate on a single entity, and
// returns whether the next entity should be processed.
type CallbackFn func(types.Entity) bool

// Search is a lazy, restartable view over the entities whose component set
// matches a filter. Nothing is evaluated until Each, Count or First is called;
// each call re-evaluates against the world's state at that moment.
type Search struct {
	componentFilter filter.ComponentFilter
}

// New creates a search from the given component filter.
func New(componentFilter filter.ComponentFilter) *Search {
	return &Search{componentFilter: componentFilter}
}

// Evaluate snapshots the entities matching the search at this moment. Filters
// are matched against each entity's mask alone; the snapshot is taken before
// any component data is dereferenced so structural mutation by a callback
// cannot invalidate the iteration.
func (s *Search) Evaluate(reader Reader) ([]types.Entity, error) {
	matched := make([]types.Entity, 0)
	for _, e := range reader.Entities() {
		mask, err := reader.EntityMask(e)
		if err != nil {
			return nil, err
		}
		if s.componentFilter.Matches(mask, reader.ComponentID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Each executes the given callback on every entity that matches this search.
// If any call to callback returns false, no more entities are processed.
func (s *Search) Each(reader Reader, callback CallbackFn) error {
	matched, err := s.Evaluate(reader)
	if err != nil {
		return err
	}
	it := NewEntityIterator(matched)
	for it.HasNext() {
		if !callback(it.Next()) {
			return nil
		}
	}
	return nil
}

// Count returns the number of entities that match this search.
func (s *Search) Count(reader Reader) (int, error) {
	matched, err := s.Evaluate(reader)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// First returns the first entity that matches this search, in index order.
func (s *Search) First(reader Reader) (types.Entity, error) {
	matched, err := s.Evaluate(reader)
	if err != nil {
		return types.Nil, err
	}
	if len(matched) == 0 {
		return types.Nil, eris.Wrap(ErrNoMatch, "")
	}
	return matched[0], nil
}
