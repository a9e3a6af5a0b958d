// Package snapshot persists entity Packages and component schemas in Redis.
// The world itself is an in-memory store; this is the seam through which its
// state crosses a process boundary.
package snapshot

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/quartz-engine/quartz/codec"
	"github.com/quartz-engine/quartz/types"
)

var (
	ErrNoSchemaFound  = eris.New("no schema found")
	ErrNoPackageFound = eris.New("no package found")
)

// Storage is a redis-backed store for Packages and component schemas.
type Storage struct {
	client redis.Cmdable
}

// NewRedisStorage wraps an existing redis client.
func NewRedisStorage(client redis.Cmdable) *Storage {
	return &Storage{client: client}
}

// Open dials a redis server and returns a storage over it.
func Open(addr, password string) *Storage {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Storage{client: client}
}

// SavePackage stores the serialized package under the given snapshot name,
// overwriting any previous snapshot with that name.
func (s *Storage) SavePackage(ctx context.Context, name string, pkg types.Package) error {
	bz, err := codec.Encode(pkg)
	if err != nil {
		return err
	}
	return eris.Wrap(s.client.Set(ctx, redisPackageKey(name), bz, 0).Err(), "")
}

// LoadPackage returns the package stored under the given snapshot name.
func (s *Storage) LoadPackage(ctx context.Context, name string) (types.Package, error) {
	bz, err := s.client.Get(ctx, redisPackageKey(name)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrapf(ErrNoPackageFound, "no package stored under %q", name)
	}
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return codec.Decode[types.Package](bz)
}

// SetSchema stores the schema of a component under the component's name.
func (s *Storage) SetSchema(name string, schema []byte) error {
	ctx := context.Background()
	return eris.Wrap(s.client.Set(ctx, redisSchemaKey(name), schema, 0).Err(), "")
}

// GetSchema returns the stored schema for the given component name.
func (s *Storage) GetSchema(name string) ([]byte, error) {
	ctx := context.Background()
	bz, err := s.client.Get(ctx, redisSchemaKey(name)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrapf(ErrNoSchemaFound, "no schema stored for component %q", name)
	}
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

// Close releases the underlying redis connection if the storage owns one.
func (s *Storage) Close() error {
	if closer, ok := s.client.(interface{ Close() error }); ok {
		return eris.Wrap(closer.Close(), "")
	}
	return nil
}
