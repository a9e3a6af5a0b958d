// Package resource owns singleton values shared by all systems of a world,
// brokered through per-resource read/write locks.
package resource

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
)

var (
	ErrResourceNotRegistered     = eris.New("resource not registered")
	ErrResourceAlreadyRegistered = eris.New("resource already registered")
)

// Manager holds exactly one instance per registered resource type. Access is
// brokered through a read/write lock per resource: any number of readers may
// hold a shared lock at the same time, a writer blocks until it has exclusive
// access. Registration itself is a structural mutation and must be serialized
// by the caller, like all other registration calls.
type Manager struct {
	resources map[reflect.Type]*slot
}

type slot struct {
	mu    sync.RWMutex
	value any
}

func NewManager() *Manager {
	return &Manager{
		resources: make(map[reflect.Type]*slot),
	}
}

// Register stores value as the singleton instance of its dynamic type. value
// must be a non-nil pointer so that writes through a write guard are visible
// to later readers. Registering the same type twice is an error.
func (m *Manager) Register(value any) error {
	t := reflect.TypeOf(value)
	if t == nil || t.Kind() != reflect.Ptr || reflect.ValueOf(value).IsNil() {
		return eris.Errorf("resource must be a non-nil pointer, got %T", value)
	}
	if _, ok := m.resources[t]; ok {
		return eris.Wrap(ErrResourceAlreadyRegistered, fmt.Sprintf("resource %s", t))
	}
	m.resources[t] = &slot{value: value}
	return nil
}

// Read acquires a shared lock on the resource of the given type and returns a
// guard holding it. The call blocks until the lock is available; there is no
// timeout. The guard must be closed on every exit path.
func (m *Manager) Read(t reflect.Type) (*ReadGuard, error) {
	s, ok := m.resources[t]
	if !ok {
		return nil, eris.Wrap(ErrResourceNotRegistered, fmt.Sprintf("resource %s", t))
	}
	s.mu.RLock()
	return &ReadGuard{slot: s}, nil
}

// Write acquires an exclusive lock on the resource of the given type and
// returns a guard holding it. The call blocks until every reader has released.
func (m *Manager) Write(t reflect.Type) (*WriteGuard, error) {
	s, ok := m.resources[t]
	if !ok {
		return nil, eris.Wrap(ErrResourceNotRegistered, fmt.Sprintf("resource %s", t))
	}
	s.mu.Lock()
	return &WriteGuard{slot: s}, nil
}

// ReadGuard is a scoped shared lock over one resource. Close is idempotent.
type ReadGuard struct {
	slot *slot
	once sync.Once
}

// Value returns the guarded resource instance.
func (g *ReadGuard) Value() any {
	return g.slot.value
}

// Close releases the shared lock.
func (g *ReadGuard) Close() {
	g.once.Do(g.slot.mu.RUnlock)
}

// WriteGuard is a scoped exclusive lock over one resource. Close is idempotent.
type WriteGuard struct {
	slot *slot
	once sync.Once
}

// Value returns the guarded resource instance.
func (g *WriteGuard) Value() any {
	return g.slot.value
}

// Close releases the exclusive lock.
func (g *WriteGuard) Close() {
	g.once.Do(g.slot.mu.Unlock)
}
