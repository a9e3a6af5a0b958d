package quartz

import (
	"reflect"
)

// RegisterResource registers value as the world's singleton instance of type
// T. Exactly one instance may exist per type; a duplicate registration is an
// error. Like component registration, this should happen at startup.
func RegisterResource[T any](w *World, value *T) error {
	if err := w.resources.Register(value); err != nil {
		w.Logger.Error().Err(err).Msg("failed to register resource")
		return err
	}
	w.Logger.Debug().
		Str("resource_type", reflect.TypeOf(value).Elem().String()).
		Msg("resource registered")
	return nil
}

// ReadResource acquires a shared lock on the resource of type T and returns
// it together with a release function. Any number of readers may hold the
// lock simultaneously; the call blocks while a writer holds it. The release
// function must be called on every exit path and is safe to call more than
// once. Requesting an unregistered type logs and returns an error; the
// returned release function is then a no-op, so `defer release()` stays safe.
func ReadResource[T any](w *World) (*T, func(), error) {
	guard, err := w.resources.Read(reflect.TypeOf((*T)(nil)))
	if err != nil {
		w.Logger.Error().Err(err).Msg("failed to read resource")
		return nil, func() {}, err
	}
	return guard.Value().(*T), guard.Close, nil
}

// WriteResource acquires an exclusive lock on the resource of type T and
// returns it together with a release function. The call blocks until all
// readers have released. Semantics otherwise match ReadResource.
func WriteResource[T any](w *World) (*T, func(), error) {
	guard, err := w.resources.Write(reflect.TypeOf((*T)(nil)))
	if err != nil {
		w.Logger.Error().Err(err).Msg("failed to write resource")
		return nil, func() {}, err
	}
	return guard.Value().(*T), guard.Close, nil
}
