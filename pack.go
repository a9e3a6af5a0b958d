package quartz

import (
	"encoding/json"

	"github.com/quartz-engine/quartz/types"
)

// Pack walks the entity's live mask and serializes each attached component
// into a Package keyed by component name. Packing a dead entity logs and
// returns an error.
func (w *World) Pack(e types.Entity) (types.Package, error) {
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return nil, err
	}

	pkg := make(types.Package, mask.Count())
	for _, id := range mask.IDs() {
		meta, err := w.components.GetComponentByID(id)
		if err != nil {
			return nil, err
		}
		bz, err := w.components.GetRawComponent(meta, e.Index)
		if err != nil {
			return nil, err
		}
		raw := make(json.RawMessage, len(bz))
		copy(raw, bz)
		pkg[meta.Name()] = raw
	}
	return pkg, nil
}

// Unpack first removes every component currently on the entity, then
// reconstructs the components named in the package. Every name is resolved
// and every value decoded before anything is attached, so a failure returns
// with the entity intentionally left component-less rather than partially
// restored.
func (w *World) Unpack(e types.Entity, pkg types.Package) error {
	mask, err := w.entities.Mask(e)
	if err != nil {
		w.Logger.Error().Str("entity_id", e.String()).Msg("entity does not exist")
		return err
	}

	// Clear current components; the entity is tag-only from here on.
	w.components.RemoveAll(mask, e.Index)
	if err := w.entities.SetMask(e, types.Mask{}); err != nil {
		return err
	}

	metas := make([]types.ComponentMetadata, 0, len(pkg))
	raws := make([][]byte, 0, len(pkg))
	var newMask types.Mask
	for name, raw := range pkg {
		meta, err := w.components.GetComponentByName(name)
		if err != nil {
			w.Logger.Error().Err(err).Str("entity_id", e.String()).Msg("failed to unpack entity")
			return err
		}
		// Decode validates the payload against the concrete type before
		// anything is attached.
		if _, err := meta.Decode(raw); err != nil {
			w.Logger.Error().Err(err).
				Str("entity_id", e.String()).
				Str("component_name", name).
				Msg("failed to unpack entity")
			return err
		}
		// Copy the payload so later mutation of the package cannot reach
		// the stored bytes.
		bz := make([]byte, len(raw))
		copy(bz, raw)
		metas = append(metas, meta)
		raws = append(raws, bz)
		newMask.Set(meta.ID())
	}

	for i, meta := range metas {
		if err := w.components.SetRawComponent(meta, e.Index, raws[i]); err != nil {
			return err
		}
	}
	return w.entities.SetMask(e, newMask)
}
