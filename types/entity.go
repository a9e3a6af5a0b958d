package types

import (
	"encoding/json"
	"fmt"
)

// EntityIndex is the dense, reusable part of an entity identifier. Component
// storages are keyed by it.
type EntityIndex uint32

// Generation disambiguates successive uses of the same entity index. A
// generation of zero never refers to a live entity.
type Generation uint32

// Entity is a lightweight handle to a logical object composed of components.
// Holding an Entity confers no ownership; liveness must be checked against the
// world before use.
type Entity struct {
	Index      EntityIndex `json:"index"`
	Generation Generation  `json:"generation"`
}

// Nil is the zero Entity. It is never alive.
var Nil = Entity{}

func (e Entity) IsNil() bool {
	return e.Generation == 0
}

func (e Entity) String() string {
	return fmt.Sprintf("%d@%d", e.Index, e.Generation)
}

// Package is a transient, serializable snapshot of one entity's components,
// keyed by component name. The concrete external encoding of each value is
// whatever the component's codec produced; the core only moves the raw bytes
// around.
type Package map[string]json.RawMessage
