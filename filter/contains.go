package filter

import (
	"github.com/quartz-engine/quartz/types"
)

type contains struct {
	components []types.Component
}

// Contains matches entities that have at least all the components specified.
// This is the required-mask filter a typed query desugars to.
func Contains(components ...types.Component) ComponentFilter {
	return &contains{components: components}
}

func (f *contains) Matches(mask types.Mask, resolve Resolver) bool {
	required, ok := maskOf(f.components, resolve)
	if !ok {
		// An unregistered component can be attached to no entity.
		return false
	}
	return mask.ContainsAll(required)
}
