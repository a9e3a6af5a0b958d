package component

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/quartz-engine/quartz/snapshot"
	"github.com/quartz-engine/quartz/types"
)

var (
	ErrComponentNotRegistered = eris.New("component not registered")
	ErrComponentNotOnEntity   = eris.New("component not on entity")
	ErrTooManyComponents      = eris.New("component type limit reached")
)

// SchemaStorage persists component schemas across world restarts so that a
// component registered under a name it was previously stored with must still
// have the same shape.
type SchemaStorage interface {
	GetSchema(name string) ([]byte, error)
	SetSchema(name string, schema []byte) error
}

// Manager owns the component type registry and one type-erased storage per
// registered component type. Storages map an entity index to the encoded bytes
// of that entity's component value.
//
// The manager is not safe for concurrent structural mutation; the surrounding
// scheduler must serialize registration and add/remove calls.
type Manager struct {
	registeredComponents map[string]types.ComponentMetadata
	componentsByID       map[types.ComponentID]types.ComponentMetadata
	storages             map[types.ComponentID]map[types.EntityIndex][]byte
	nextComponentID      types.ComponentID
	schemaStorage        SchemaStorage
}

// NewManager creates a new component manager. schemaStorage may be nil, in
// which case schemas are only held in memory for the lifetime of the manager.
func NewManager(schemaStorage SchemaStorage) *Manager {
	return &Manager{
		registeredComponents: make(map[string]types.ComponentMetadata),
		componentsByID:       make(map[types.ComponentID]types.ComponentMetadata),
		storages:             make(map[types.ComponentID]map[types.EntityIndex][]byte),
		nextComponentID:      1,
		schemaStorage:        schemaStorage,
	}
}

// RegisterComponent registers a component type and allocates its storage.
// There can only be one component with a given name, which is declared by the
// user by implementing the Name() method. A duplicate name is an error and the
// component is not registered.
func (m *Manager) RegisterComponent(compMetadata types.ComponentMetadata) error {
	if err := m.isComponentNameUnique(compMetadata); err != nil {
		return err
	}
	if int(m.nextComponentID) > types.MaxComponentTypes {
		return eris.Wrapf(ErrTooManyComponents, "cannot register %q", compMetadata.Name())
	}

	if m.schemaStorage != nil {
		// If the schema does not exist in storage yet we can safely proceed;
		// any other error terminates the registration.
		storedSchema, err := m.schemaStorage.GetSchema(compMetadata.Name())
		if err != nil && !eris.Is(err, snapshot.ErrNoSchemaFound) {
			return err
		}

		if storedSchema != nil {
			if err := compMetadata.ValidateAgainstSchema(storedSchema); err != nil {
				if eris.Is(err, types.ErrComponentSchemaMismatch) {
					return eris.Wrap(err,
						fmt.Sprintf("component %q does not match the schema stored in storage", compMetadata.Name()),
					)
				}
				return eris.Wrap(err, "error when validating component schema against stored schema in storage")
			}
		} else {
			if err := m.schemaStorage.SetSchema(compMetadata.Name(), compMetadata.GetSchema()); err != nil {
				return err
			}
		}
	}

	// Set the component ID and register the component. This happens after the
	// schema checks so the component is only registered when they succeed.
	if err := compMetadata.SetID(m.nextComponentID); err != nil {
		return err
	}
	m.registeredComponents[compMetadata.Name()] = compMetadata
	m.componentsByID[m.nextComponentID] = compMetadata
	m.storages[m.nextComponentID] = make(map[types.EntityIndex][]byte)
	m.nextComponentID++

	return nil
}

// GetComponents returns a list of all registered components.
// Note: The order of the components in the list is not deterministic.
func (m *Manager) GetComponents() []types.ComponentMetadata {
	registeredComponents := make([]types.ComponentMetadata, 0, len(m.registeredComponents))
	for _, comp := range m.registeredComponents {
		registeredComponents = append(registeredComponents, comp)
	}
	return registeredComponents
}

// GetComponentByName returns the component metadata for the given component name.
func (m *Manager) GetComponentByName(name string) (types.ComponentMetadata, error) {
	c, ok := m.registeredComponents[name]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q is not registered", name))
	}
	return c, nil
}

// GetComponentByID returns the component metadata for the given component ID.
func (m *Manager) GetComponentByID(id types.ComponentID) (types.ComponentMetadata, error) {
	c, ok := m.componentsByID[id]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component id %d is not registered", id))
	}
	return c, nil
}

// SetComponent encodes value into the component's storage at the given entity
// index, overwriting any previous entry for that (type, index) pair.
func (m *Manager) SetComponent(comp types.ComponentMetadata, idx types.EntityIndex, value any) error {
	storage, ok := m.storages[comp.ID()]
	if !ok {
		return eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q has no storage", comp.Name()))
	}
	bz, err := comp.Encode(value)
	if err != nil {
		return err
	}
	storage[idx] = bz
	return nil
}

// SetRawComponent stores already-encoded component bytes at the given entity index.
func (m *Manager) SetRawComponent(comp types.ComponentMetadata, idx types.EntityIndex, bz []byte) error {
	storage, ok := m.storages[comp.ID()]
	if !ok {
		return eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q has no storage", comp.Name()))
	}
	storage[idx] = bz
	return nil
}

// GetComponent decodes and returns the component value stored for the given
// entity index. Callers must have verified via the entity's mask that the
// entry exists; an absent entry is an error.
func (m *Manager) GetComponent(comp types.ComponentMetadata, idx types.EntityIndex) (types.Component, error) {
	bz, err := m.GetRawComponent(comp, idx)
	if err != nil {
		return nil, err
	}
	return comp.Decode(bz)
}

// GetRawComponent returns the encoded bytes stored for the given entity index.
func (m *Manager) GetRawComponent(comp types.ComponentMetadata, idx types.EntityIndex) ([]byte, error) {
	storage, ok := m.storages[comp.ID()]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q has no storage", comp.Name()))
	}
	bz, ok := storage[idx]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotOnEntity,
			fmt.Sprintf("entity index %d has no %q component", idx, comp.Name()))
	}
	return bz, nil
}

// RemoveComponent erases the storage entry for the given entity index.
// Removing an absent entry is a no-op.
func (m *Manager) RemoveComponent(comp types.ComponentMetadata, idx types.EntityIndex) {
	if storage, ok := m.storages[comp.ID()]; ok {
		delete(storage, idx)
	}
}

// RemoveAll erases every storage entry named by mask for the given entity
// index. Used on entity destruction so a reused index can never expose stale
// component data.
func (m *Manager) RemoveAll(mask types.Mask, idx types.EntityIndex) {
	for _, id := range mask.IDs() {
		if storage, ok := m.storages[id]; ok {
			delete(storage, idx)
		}
	}
}

// isComponentNameUnique checks if the component name already exists in the component map.
func (m *Manager) isComponentNameUnique(compMetadata types.ComponentMetadata) error {
	_, ok := m.registeredComponents[compMetadata.Name()]
	if ok {
		return eris.Errorf("component %q is already registered", compMetadata.Name())
	}
	return nil
}
