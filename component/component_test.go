package component

import (
	"testing"

	"github.com/quartz-engine/quartz/assert"
	"github.com/quartz-engine/quartz/types"
)

type Health struct {
	HP int `json:"hp"`
}

func (Health) Name() string {
	return "health"
}

type Stamina struct {
	Value int `json:"value"`
}

func (Stamina) Name() string {
	return "stamina"
}

func TestMetadataNameAndID(t *testing.T) {
	meta, err := NewComponentMetadata[Health]()
	assert.NilError(t, err)
	assert.Equal(t, "health", meta.Name())

	assert.NilError(t, meta.SetID(7))
	assert.Equal(t, types.ComponentID(7), meta.ID())

	// same ID again is tolerated, a different one is not
	assert.NilError(t, meta.SetID(7))
	assert.IsError(t, meta.SetID(8))
}

func TestNewUsesZeroValueWithoutDefault(t *testing.T) {
	meta, err := NewComponentMetadata[Health]()
	assert.NilError(t, err)

	bz, err := meta.New()
	assert.NilError(t, err)
	decoded, err := meta.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Health{HP: 0}, decoded)
}

func TestNewUsesRegisteredDefault(t *testing.T) {
	meta, err := NewComponentMetadata[Health](WithDefault(Health{HP: 100}))
	assert.NilError(t, err)

	bz, err := meta.New()
	assert.NilError(t, err)
	decoded, err := meta.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Health{HP: 100}, decoded)
}

func TestSettingDefaultTwicePanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewComponentMetadata[Health](
			WithDefault(Health{HP: 1}),
			WithDefault(Health{HP: 2}),
		)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	meta, err := NewComponentMetadata[Health]()
	assert.NilError(t, err)

	bz, err := meta.Encode(Health{HP: 42})
	assert.NilError(t, err)
	decoded, err := meta.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Health{HP: 42}, decoded)
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	meta, err := NewComponentMetadata[Health]()
	assert.NilError(t, err)
	_, err = meta.Decode([]byte(`{"hp": "not a number"`))
	assert.IsError(t, err)
}

func TestValidateAgainstSchema(t *testing.T) {
	healthMeta, err := NewComponentMetadata[Health]()
	assert.NilError(t, err)
	staminaMeta, err := NewComponentMetadata[Stamina]()
	assert.NilError(t, err)

	assert.NilError(t, healthMeta.ValidateAgainstSchema(healthMeta.GetSchema()))

	err = healthMeta.ValidateAgainstSchema(staminaMeta.GetSchema())
	assert.ErrorIs(t, err, types.ErrComponentSchemaMismatch)
}
