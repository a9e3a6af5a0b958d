package quartz

import (
	"github.com/rs/zerolog"

	"github.com/quartz-engine/quartz/types"
)

// Logger emits structured dumps of world state. Logging is purely
// observational; no world operation depends on it.
type Logger struct {
	*zerolog.Logger
}

func (*Logger) loadComponentIntoArrayLogger(
	comp types.ComponentMetadata, arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(comp.ID()))
	dictLogger = dictLogger.Str("component_name", comp.Name())
	return arrayLogger.Dict(dictLogger)
}

func (l *Logger) loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, world *World) *zerolog.Event {
	comps := world.RegisteredComponents()
	zeroLoggerEvent.Int("total_components", len(comps))
	arrayLogger := zerolog.Arr()
	for _, comp := range comps {
		arrayLogger = l.loadComponentIntoArrayLogger(comp, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func (l *Logger) loadEntityIntoEvent(
	zeroLoggerEvent *zerolog.Event, world *World, e types.Entity,
) (*zerolog.Event, error) {
	comps, err := world.ComponentsFor(e)
	if err != nil {
		return nil, err
	}
	arrayLogger := zerolog.Arr()
	for _, comp := range comps {
		meta, err := world.GetComponentByName(comp.Name())
		if err != nil {
			return nil, err
		}
		arrayLogger = l.loadComponentIntoArrayLogger(meta, arrayLogger)
	}
	zeroLoggerEvent.Array("components", arrayLogger)
	return zeroLoggerEvent.Str("entity_id", e.String()), nil
}

// LogComponents logs all component info related to the world.
func (l *Logger) LogComponents(world *World, level zerolog.Level) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadComponentsToEvent(zeroLoggerEvent, world)
	zeroLoggerEvent.Send()
}

// LogEntity logs entity info given an entity handle.
func (l *Logger) LogEntity(world *World, level zerolog.Level, e types.Entity) error {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent, err := l.loadEntityIntoEvent(zeroLoggerEvent, world, e)
	if err != nil {
		l.Err(err).Msgf("error in Logger when retrieving entity %s", e)
		return err
	}
	zeroLoggerEvent.Send()
	return nil
}

// LogWorld logs everything about the world: components and live entity count.
func (l *Logger) LogWorld(world *World, level zerolog.Level) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadComponentsToEvent(zeroLoggerEvent, world)
	zeroLoggerEvent.Int("total_entities", world.Len())
	zeroLoggerEvent.Send()
}
