package filter

import (
	"github.com/quartz-engine/quartz/types"
)

type exact struct {
	components []types.Component
}

// Exact matches entities whose component set is exactly the one specified.
func Exact(components ...types.Component) ComponentFilter {
	return exact{
		components: components,
	}
}

func (f exact) Matches(mask types.Mask, resolve Resolver) bool {
	target, ok := maskOf(f.components, resolve)
	if !ok {
		return false
	}
	return mask == target
}
