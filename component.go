package quartz

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/quartz-engine/quartz/component"
	"github.com/quartz-engine/quartz/types"
)

// RegisterComponent registers the component type T with the world, assigning
// it the next component ID in first-registration order. Registration is
// unsafe during any concurrent reads or writes and should happen at startup.
func RegisterComponent[T types.Component](w *World, opts ...component.Option[T]) error {
	compMetadata, err := component.NewComponentMetadata[T](opts...)
	if err != nil {
		return err
	}
	if err := w.components.RegisterComponent(compMetadata); err != nil {
		return err
	}
	w.Logger.Debug().
		Str("component_name", compMetadata.Name()).
		Int("component_id", int(compMetadata.ID())).
		Msg("component registered")
	return nil
}

// Create creates a single entity with the given components attached.
// If any component type is unregistered the whole call fails before any
// mutation occurs.
func Create(w *World, components ...types.Component) (types.Entity, error) {
	entities, err := CreateMany(w, 1, components...)
	if err != nil {
		return types.Nil, err
	}
	return entities[0], nil
}

// CreateMany creates num entities, each with the given components attached.
func CreateMany(w *World, num int, components ...types.Component) ([]types.Entity, error) {
	metas, encoded, mask, err := w.resolveAndEncode(components)
	if err != nil {
		w.Logger.Error().Err(err).Msg("failed to create entity")
		return nil, err
	}

	entities := make([]types.Entity, 0, num)
	for i := 0; i < num; i++ {
		e := w.entities.Create(mask)
		for j, meta := range metas {
			if err := w.components.SetRawComponent(meta, e.Index, encoded[j]); err != nil {
				return nil, err
			}
		}
		w.Logger.Debug().
			Str("entity_id", e.String()).
			Int("total_components", len(metas)).
			Msg("entity created")
		entities = append(entities, e)
	}
	return entities, nil
}

// AddComponents attaches the given component values to the entity. The mask
// and the storages are updated together; if anything fails the call returns
// before either is mutated. Adding to a dead entity logs and returns an error.
func AddComponents(w *World, e types.Entity, components ...types.Component) error {
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return err
	}
	metas, encoded, _, err := w.resolveAndEncode(components)
	if err != nil {
		w.Logger.Error().Err(err).Str("entity_id", e.String()).Msg("failed to add components")
		return err
	}

	for i, meta := range metas {
		if err := w.components.SetRawComponent(meta, e.Index, encoded[i]); err != nil {
			return err
		}
		mask.Set(meta.ID())
	}
	return w.entities.SetMask(e, mask)
}

// AddComponentTo attaches the default value of component type T to the entity.
func AddComponentTo[T types.Component](w *World, e types.Entity) error {
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return err
	}
	var t T
	meta, err := w.components.GetComponentByName(t.Name())
	if err != nil {
		return err
	}
	bz, err := meta.New()
	if err != nil {
		return err
	}
	if err := w.components.SetRawComponent(meta, e.Index, bz); err != nil {
		return err
	}
	mask.Set(meta.ID())
	return w.entities.SetMask(e, mask)
}

// RemoveComponents detaches the given component types from the entity; the
// values are only used as type tokens. Removing an absent component is a
// no-op. If any type is unregistered the call fails without mutating the mask.
func RemoveComponents(w *World, e types.Entity, components ...types.Component) error {
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return err
	}
	metas := make([]types.ComponentMetadata, 0, len(components))
	for _, comp := range components {
		meta, err := w.components.GetComponentByName(comp.Name())
		if err != nil {
			w.Logger.Error().Err(err).Str("entity_id", e.String()).Msg("failed to remove components")
			return err
		}
		metas = append(metas, meta)
	}

	for _, meta := range metas {
		w.components.RemoveComponent(meta, e.Index)
		mask.Unset(meta.ID())
	}
	return w.entities.SetMask(e, mask)
}

// RemoveComponentFrom detaches component type T from the entity.
func RemoveComponentFrom[T types.Component](w *World, e types.Entity) error {
	var t T
	return RemoveComponents(w, e, t)
}

// GetComponent returns the component data of type T attached to the entity.
func GetComponent[T types.Component](w *World, e types.Entity) (comp *T, err error) {
	var t T
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return nil, err
	}
	meta, err := w.components.GetComponentByName(t.Name())
	if err != nil {
		return nil, err
	}
	if !mask.Test(meta.ID()) {
		return nil, eris.Wrapf(component.ErrComponentNotOnEntity,
			"entity %s has no %q component", e, meta.Name())
	}
	value, err := w.components.GetComponent(meta, e.Index)
	if err != nil {
		return nil, err
	}
	t, ok := value.(T)
	if !ok {
		comp, ok = any(value).(*T)
		if !ok {
			return nil, eris.New(fmt.Sprintf("type assertion for component failed: %v to %v", value, meta))
		}
	} else {
		comp = &t
	}
	return comp, nil
}

// SetComponent overwrites the component data of type T already attached to
// the entity.
func SetComponent[T types.Component](w *World, e types.Entity, comp *T) error {
	var t T
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return err
	}
	meta, err := w.components.GetComponentByName(t.Name())
	if err != nil {
		return eris.Wrapf(err, "%s is not registered, please register it before updating", t.Name())
	}
	if !mask.Test(meta.ID()) {
		return eris.Wrapf(component.ErrComponentNotOnEntity,
			"entity %s has no %q component", e, meta.Name())
	}
	if err := w.components.SetComponent(meta, e.Index, comp); err != nil {
		return err
	}
	w.Logger.Debug().
		Str("entity_id", e.String()).
		Str("component_name", meta.Name()).
		Int("component_id", int(meta.ID())).
		Msg("entity updated")
	return nil
}

// UpdateComponent reads the component of type T, applies fn and writes the
// result back.
func UpdateComponent[T types.Component](w *World, e types.Entity, fn func(*T) *T) error {
	val, err := GetComponent[T](w, e)
	if err != nil {
		return err
	}
	updatedVal := fn(val)
	return SetComponent[T](w, e, updatedVal)
}

// HasComponent reports whether the entity has component type T attached.
// A dead entity or an unregistered type logs and returns false, never panics.
func HasComponent[T types.Component](w *World, e types.Entity) bool {
	var t T
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return false
	}
	meta, err := w.components.GetComponentByName(t.Name())
	if err != nil {
		w.Logger.Error().Err(err).Msg("component not registered")
		return false
	}
	return mask.Test(meta.ID())
}

// resolveAndEncode looks up the metadata of every component value and encodes
// the values. Resolution and encoding both happen before any storage or mask
// is touched, so a failure here cannot leave partial mutation behind.
func (w *World) resolveAndEncode(
	components []types.Component,
) ([]types.ComponentMetadata, [][]byte, types.Mask, error) {
	metas := make([]types.ComponentMetadata, 0, len(components))
	encoded := make([][]byte, 0, len(components))
	var mask types.Mask
	for _, comp := range components {
		meta, err := w.components.GetComponentByName(comp.Name())
		if err != nil {
			return nil, nil, types.Mask{}, err
		}
		bz, err := meta.Encode(comp)
		if err != nil {
			return nil, nil, types.Mask{}, err
		}
		metas = append(metas, meta)
		encoded = append(encoded, bz)
		mask.Set(meta.ID())
	}
	return metas, encoded, mask, nil
}
