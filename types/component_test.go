package types

import (
	"testing"

	"github.com/quartz-engine/quartz/assert"
)

type bearing struct {
	Degrees float64 `json:"degrees"`
}

func (bearing) Name() string { return "bearing" }

type altitude struct {
	Meters int `json:"meters"`
}

func (altitude) Name() string { return "altitude" }

func TestSerializeComponentSchema(t *testing.T) {
	schema, err := SerializeComponentSchema(bearing{})
	assert.NilError(t, err)
	assert.True(t, len(schema) > 0)

	again, err := SerializeComponentSchema(bearing{Degrees: 90})
	assert.NilError(t, err)
	// The schema depends on the type, not the value.
	assert.DeepEqual(t, schema, again)
}

func TestIsSchemaValid(t *testing.T) {
	bearingSchema, err := SerializeComponentSchema(bearing{})
	assert.NilError(t, err)
	altitudeSchema, err := SerializeComponentSchema(altitude{})
	assert.NilError(t, err)

	ok, err := IsSchemaValid(bearingSchema, bearingSchema)
	assert.NilError(t, err)
	assert.True(t, ok)

	ok, err = IsSchemaValid(bearingSchema, altitudeSchema)
	assert.NilError(t, err)
	assert.False(t, ok)

	_, err = IsSchemaValid([]byte("not json"), bearingSchema)
	assert.Check(t, err != nil)
}

func TestEntityIsNil(t *testing.T) {
	assert.True(t, Nil.IsNil())
	assert.True(t, Entity{Index: 3}.IsNil(), "generation zero is never alive")
	assert.False(t, Entity{Index: 0, Generation: 1}.IsNil())
}
