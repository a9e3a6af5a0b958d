package filter

import (
	"github.com/quartz-engine/quartz/types"
)

// maskOf builds the mask covering the given component type tokens. ok is
// false when any token's name has no registered ID.
func maskOf(components []types.Component, resolve Resolver) (types.Mask, bool) {
	var m types.Mask
	for _, c := range components {
		id, ok := resolve(c.Name())
		if !ok {
			return types.Mask{}, false
		}
		m.Set(id)
	}
	return m, true
}
