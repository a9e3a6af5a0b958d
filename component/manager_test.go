package component

import (
	"testing"

	"github.com/rotisserie/eris"

	"github.com/quartz-engine/quartz/assert"
	"github.com/quartz-engine/quartz/snapshot"
	"github.com/quartz-engine/quartz/types"
)

// memorySchemaStorage keeps schemas in a map, standing in for the redis-backed
// store in tests that don't need a server.
type memorySchemaStorage struct {
	schemas map[string][]byte
}

func newMemorySchemaStorage() *memorySchemaStorage {
	return &memorySchemaStorage{schemas: map[string][]byte{}}
}

func (m *memorySchemaStorage) GetSchema(name string) ([]byte, error) {
	bz, ok := m.schemas[name]
	if !ok {
		return nil, eris.Wrapf(snapshot.ErrNoSchemaFound, "no schema stored for component %q", name)
	}
	return bz, nil
}

func (m *memorySchemaStorage) SetSchema(name string, schema []byte) error {
	m.schemas[name] = schema
	return nil
}

func mustMetadata[T types.Component](t *testing.T) types.ComponentMetadata {
	t.Helper()
	meta, err := NewComponentMetadata[T]()
	assert.NilError(t, err)
	return meta
}

func TestRegisterAssignsIDsInRegistrationOrder(t *testing.T) {
	mgr := NewManager(nil)

	health := mustMetadata[Health](t)
	stamina := mustMetadata[Stamina](t)
	assert.NilError(t, mgr.RegisterComponent(health))
	assert.NilError(t, mgr.RegisterComponent(stamina))

	assert.Equal(t, types.ComponentID(1), health.ID())
	assert.Equal(t, types.ComponentID(2), stamina.ID())

	got, err := mgr.GetComponentByName("health")
	assert.NilError(t, err)
	assert.Equal(t, health.ID(), got.ID())

	got, err = mgr.GetComponentByID(2)
	assert.NilError(t, err)
	assert.Equal(t, "stamina", got.Name())
}

func TestDuplicateRegistrationIsAnError(t *testing.T) {
	mgr := NewManager(nil)
	assert.NilError(t, mgr.RegisterComponent(mustMetadata[Health](t)))
	assert.IsError(t, mgr.RegisterComponent(mustMetadata[Health](t)))
	assert.Len(t, mgr.GetComponents(), 1)
}

func TestLookupOfUnregisteredComponent(t *testing.T) {
	mgr := NewManager(nil)
	_, err := mgr.GetComponentByName("health")
	assert.ErrorIs(t, err, ErrComponentNotRegistered)
	_, err = mgr.GetComponentByID(1)
	assert.ErrorIs(t, err, ErrComponentNotRegistered)
}

func TestStorageSetGetRemove(t *testing.T) {
	mgr := NewManager(nil)
	health := mustMetadata[Health](t)
	assert.NilError(t, mgr.RegisterComponent(health))

	idx := types.EntityIndex(3)
	assert.NilError(t, mgr.SetComponent(health, idx, Health{HP: 10}))

	got, err := mgr.GetComponent(health, idx)
	assert.NilError(t, err)
	assert.Equal(t, Health{HP: 10}, got)

	// overwrite is allowed
	assert.NilError(t, mgr.SetComponent(health, idx, Health{HP: 20}))
	got, err = mgr.GetComponent(health, idx)
	assert.NilError(t, err)
	assert.Equal(t, Health{HP: 20}, got)

	mgr.RemoveComponent(health, idx)
	_, err = mgr.GetComponent(health, idx)
	assert.ErrorIs(t, err, ErrComponentNotOnEntity)

	// removing an absent entry is a no-op
	mgr.RemoveComponent(health, idx)
}

func TestRemoveAllPurgesEveryMaskedEntry(t *testing.T) {
	mgr := NewManager(nil)
	health := mustMetadata[Health](t)
	stamina := mustMetadata[Stamina](t)
	assert.NilError(t, mgr.RegisterComponent(health))
	assert.NilError(t, mgr.RegisterComponent(stamina))

	idx := types.EntityIndex(0)
	assert.NilError(t, mgr.SetComponent(health, idx, Health{HP: 1}))
	assert.NilError(t, mgr.SetComponent(stamina, idx, Stamina{Value: 2}))

	var mask types.Mask
	mask.Set(health.ID())
	mask.Set(stamina.ID())
	mgr.RemoveAll(mask, idx)

	_, err := mgr.GetComponent(health, idx)
	assert.ErrorIs(t, err, ErrComponentNotOnEntity)
	_, err = mgr.GetComponent(stamina, idx)
	assert.ErrorIs(t, err, ErrComponentNotOnEntity)
}

func TestRegisterStoresAndChecksSchema(t *testing.T) {
	store := newMemorySchemaStorage()

	mgr := NewManager(store)
	assert.NilError(t, mgr.RegisterComponent(mustMetadata[Health](t)))
	assert.NotNil(t, store.schemas["health"])

	// a second manager sharing the store accepts the same shape again
	mgr2 := NewManager(store)
	assert.NilError(t, mgr2.RegisterComponent(mustMetadata[Health](t)))

	// but rejects a different shape registered under the same name
	store.schemas["stamina"] = store.schemas["health"]
	mgr3 := NewManager(store)
	err := mgr3.RegisterComponent(mustMetadata[Stamina](t))
	assert.ErrorIs(t, err, types.ErrComponentSchemaMismatch)
}
