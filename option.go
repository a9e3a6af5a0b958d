package quartz

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/quartz-engine/quartz/snapshot"
)

// WorldOption represents an option that can be used to augment how a World is created.
type WorldOption func(*World)

// WithCustomLogger replaces the world's logger. Useful in tests that assert on
// log output.
func WithCustomLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.Logger = &Logger{&logger}
	}
}

// WithPrettyLog writes human-readable console output instead of JSON.
func WithPrettyLog() WorldOption {
	return func(w *World) {
		prettyLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		w.Logger = &Logger{&prettyLogger}
	}
}

// WithSnapshotStorage attaches a snapshot store to the world. Component
// schemas are then validated against previously stored schemas at
// registration time, and SaveEntity/LoadEntity become available.
func WithSnapshotStorage(store *snapshot.Storage) WorldOption {
	return func(w *World) {
		w.snapshots = store
	}
}
