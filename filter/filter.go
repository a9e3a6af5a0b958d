// Package filter provides the component filters a Search is built from.
// Filters match against an entity's component mask, with component names
// resolved to registered IDs by the world being searched.
package filter

import (
	"github.com/quartz-engine/quartz/types"
)

// Resolver maps a component type name to its registered ID. ok is false for
// names that are not registered in the world being searched.
type Resolver func(name string) (types.ComponentID, bool)

// ComponentFilter is a filter that selects entities based on the set of
// components currently attached to them.
type ComponentFilter interface {
	// Matches reports whether an entity with the given component mask
	// satisfies the filter.
	Matches(mask types.Mask, resolve Resolver) bool
}

// Component returns the zero value of component type T, for use as a type
// token in filters: Contains(Component[Position]()).
func Component[T types.Component]() types.Component {
	var x T
	return x
}

type all struct{}

// All matches every entity, including tag-only entities with no components.
func All() ComponentFilter {
	return &all{}
}

func (f *all) Matches(_ types.Mask, _ Resolver) bool {
	return true
}

type and struct {
	filters []ComponentFilter
}

func And(filters ...ComponentFilter) ComponentFilter {
	return &and{filters: filters}
}

func (f *and) Matches(mask types.Mask, resolve Resolver) bool {
	for _, filter := range f.filters {
		if !filter.Matches(mask, resolve) {
			return false
		}
	}
	return true
}

type or struct {
	filters []ComponentFilter
}

func Or(filters ...ComponentFilter) ComponentFilter {
	return &or{filters: filters}
}

func (f *or) Matches(mask types.Mask, resolve Resolver) bool {
	for _, filter := range f.filters {
		if filter.Matches(mask, resolve) {
			return true
		}
	}
	return false
}

type not struct {
	filter ComponentFilter
}

func Not(filter ComponentFilter) ComponentFilter {
	return &not{filter: filter}
}

func (f *not) Matches(mask types.Mask, resolve Resolver) bool {
	return !f.filter.Matches(mask, resolve)
}
