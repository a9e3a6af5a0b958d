package quartz

import (
	"github.com/quartz-engine/quartz/filter"
	"github.com/quartz-engine/quartz/search"
)

// Interface guard
var _ search.Reader = (*World)(nil)

// NewSearch allows for the querying of entities within a World. The search is
// lazy: matching entities are snapshotted each time Each, Count or First runs.
func NewSearch(componentFilter filter.ComponentFilter) *search.Search {
	return search.New(componentFilter)
}
