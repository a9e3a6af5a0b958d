// Package quartz is an entity-component-system data store. A World holds
// entities identified by index+generation handles, per-type component
// storages kept consistent with a per-entity component mask, and singleton
// resources behind read/write locks. It is purely a typed, queryable data
// store; scheduling, rendering and domain logic live outside.
//
// Structural mutation (registration, create/destroy, add/remove) is
// single-writer: it is unsafe during concurrent reads or writes and must be
// serialized by the caller. The only concurrency primitive the world owns is
// the per-resource read/write lock.
package quartz

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/quartz-engine/quartz/component"
	"github.com/quartz-engine/quartz/entity"
	"github.com/quartz-engine/quartz/resource"
	"github.com/quartz-engine/quartz/snapshot"
	"github.com/quartz-engine/quartz/types"
)

var ErrNoSnapshotStorage = eris.New("world has no snapshot storage")

// World is the facade composing the entity, component and resource managers.
type World struct {
	config WorldConfig
	Logger *Logger

	entities   *entity.Manager
	components *component.Manager
	resources  *resource.Manager
	snapshots  *snapshot.Storage
}

// NewWorld creates a World configured from the environment and the given options.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := GetWorldConfig()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	w := &World{
		config: cfg,
		Logger: &Logger{&logger},
	}
	if cfg.LogPretty {
		WithPrettyLog()(w)
	}
	for _, opt := range opts {
		opt(w)
	}

	// The snapshot store doubles as the schema store for component
	// registration; without one, schemas live only in memory.
	var schemaStorage component.SchemaStorage
	if w.snapshots != nil {
		schemaStorage = w.snapshots
	}
	w.entities = entity.NewManager()
	w.components = component.NewManager(schemaStorage)
	w.resources = resource.NewManager()

	w.Logger.Debug().Msg("world created")
	return w, nil
}

// Config returns the world's configuration.
func (w *World) Config() WorldConfig {
	return w.config
}

// IsAlive reports whether the handle refers to a live entity.
func (w *World) IsAlive(e types.Entity) bool {
	return w.entities.IsAlive(e)
}

// Destroy removes an entity, eagerly purging its component storage entries so
// a later reuse of the index can never expose stale data. Destroying a dead
// or stale entity logs an error and mutates nothing.
func (w *World) Destroy(e types.Entity) error {
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return err
	}
	w.components.RemoveAll(mask, e.Index)
	if err := w.entities.Destroy(e); err != nil {
		return err
	}
	w.Logger.Debug().Str("entity_id", e.String()).Msg("entity destroyed")
	return nil
}

// EntityMask returns the entity's live component mask.
func (w *World) EntityMask(e types.Entity) (types.Mask, error) {
	return w.entities.Mask(e)
}

// Entities returns a snapshot of all live entities in index order.
func (w *World) Entities() []types.Entity {
	return w.entities.Entities()
}

// Each calls fn for every live entity in index order, stopping early when fn
// returns false.
func (w *World) Each(fn func(types.Entity) bool) {
	w.entities.Each(fn)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.Len()
}

// ComponentsFor returns the component types currently attached to the entity,
// derived from its live mask.
func (w *World) ComponentsFor(e types.Entity) ([]types.Component, error) {
	mask, err := w.entities.Mask(e)
	if err != nil {
		return nil, err
	}
	ids := mask.IDs()
	metas := make([]types.ComponentMetadata, 0, len(ids))
	for _, id := range ids {
		meta, err := w.components.GetComponentByID(id)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	return types.ConvertComponentMetadatasToComponents(metas), nil
}

// ComponentID returns the registered ID for a component name; ok is false for
// unregistered names.
func (w *World) ComponentID(name string) (types.ComponentID, bool) {
	meta, err := w.components.GetComponentByName(name)
	if err != nil {
		return 0, false
	}
	return meta.ID(), true
}

// RegisteredComponents returns the metadata of every registered component type.
func (w *World) RegisteredComponents() []types.ComponentMetadata {
	return w.components.GetComponents()
}

// GetComponentByName returns the metadata registered under the given name.
func (w *World) GetComponentByName(name string) (types.ComponentMetadata, error) {
	return w.components.GetComponentByName(name)
}

// SaveEntity packs the entity and stores the package in the snapshot store
// under the given name.
func (w *World) SaveEntity(ctx context.Context, name string, e types.Entity) error {
	if w.snapshots == nil {
		return eris.Wrap(ErrNoSnapshotStorage, "cannot save entity")
	}
	pkg, err := w.Pack(e)
	if err != nil {
		return err
	}
	if err := w.snapshots.SavePackage(ctx, name, pkg); err != nil {
		return err
	}
	w.Logger.Debug().
		Str("entity_id", e.String()).
		Str("snapshot", name).
		Msg("entity saved")
	return nil
}

// LoadEntity loads the named package from the snapshot store and unpacks it
// onto the entity.
func (w *World) LoadEntity(ctx context.Context, name string, e types.Entity) error {
	if w.snapshots == nil {
		return eris.Wrap(ErrNoSnapshotStorage, "cannot load entity")
	}
	pkg, err := w.snapshots.LoadPackage(ctx, name)
	if err != nil {
		return err
	}
	return w.Unpack(e, pkg)
}
