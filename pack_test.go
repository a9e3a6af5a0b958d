package quartz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/quartz-engine/quartz/assert"
	"github.com/quartz-engine/quartz/component"
	"github.com/quartz-engine/quartz/entity"
	"github.com/quartz-engine/quartz/snapshot"
	"github.com/quartz-engine/quartz/types"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	world := newMovementWorld(t)

	src, err := Create(world, Position{X: 1.5, Y: -2, Z: 3}, Velocity{X: 0.25})
	assert.NilError(t, err)
	pkg, err := world.Pack(src)
	assert.NilError(t, err)
	assert.Len(t, pkg, 2)

	dst, err := Create(world)
	assert.NilError(t, err)
	assert.NilError(t, world.Unpack(dst, pkg))

	srcPos, err := GetComponent[Position](world, src)
	assert.NilError(t, err)
	dstPos, err := GetComponent[Position](world, dst)
	assert.NilError(t, err)
	assert.Equal(t, *srcPos, *dstPos)

	srcVel, err := GetComponent[Velocity](world, src)
	assert.NilError(t, err)
	dstVel, err := GetComponent[Velocity](world, dst)
	assert.NilError(t, err)
	assert.Equal(t, *srcVel, *dstVel)

	// the raw bytes survive the round trip too
	rePkg, err := world.Pack(dst)
	assert.NilError(t, err)
	assert.DeepEqual(t, pkg, rePkg)
}

func TestUnpackReplacesExistingComponents(t *testing.T) {
	world := newMovementWorld(t)

	src, err := Create(world, Position{X: 9})
	assert.NilError(t, err)
	pkg, err := world.Pack(src)
	assert.NilError(t, err)

	dst, err := Create(world, Velocity{X: 4})
	assert.NilError(t, err)
	assert.NilError(t, world.Unpack(dst, pkg))

	// the previous components are gone, the packed ones are present
	assert.False(t, HasComponent[Velocity](world, dst))
	pos, err := GetComponent[Position](world, dst)
	assert.NilError(t, err)
	assert.Equal(t, 9.0, pos.X)
}

func TestUnpackCopiesPayloadBytes(t *testing.T) {
	world := newMovementWorld(t)

	e, err := Create(world)
	assert.NilError(t, err)

	raw := json.RawMessage(`{"x":5,"y":0,"z":0}`)
	assert.NilError(t, world.Unpack(e, types.Package{"position": raw}))

	// Scribbling over the package after the unpack must not reach the
	// stored component.
	for i := range raw {
		raw[i] = '!'
	}
	pos, err := GetComponent[Position](world, e)
	assert.NilError(t, err)
	assert.Equal(t, 5.0, pos.X)
}

func TestUnpackWithUnregisteredNameLeavesEntityComponentless(t *testing.T) {
	world := newMovementWorld(t)

	e, err := Create(world, Position{X: 1})
	assert.NilError(t, err)

	pkg := types.Package{
		"position": json.RawMessage(`{"x":2,"y":0,"z":0}`),
		"mystery":  json.RawMessage(`{}`),
	}
	err = world.Unpack(e, pkg)
	assert.ErrorIs(t, err, component.ErrComponentNotRegistered)

	// the failed unpack intentionally leaves the entity component-less
	assert.True(t, world.IsAlive(e))
	mask, err := world.EntityMask(e)
	assert.NilError(t, err)
	assert.True(t, mask.IsZero())
}

func TestUnpackWithMalformedPayloadLeavesEntityComponentless(t *testing.T) {
	world := newMovementWorld(t)

	e, err := Create(world, Position{X: 1})
	assert.NilError(t, err)

	pkg := types.Package{
		"position": json.RawMessage(`{"x": not-json`),
	}
	assert.IsError(t, world.Unpack(e, pkg))

	mask, err := world.EntityMask(e)
	assert.NilError(t, err)
	assert.True(t, mask.IsZero())
}

func TestPackDeadEntityFails(t *testing.T) {
	world := newMovementWorld(t)
	e, err := Create(world, Position{})
	assert.NilError(t, err)
	assert.NilError(t, world.Destroy(e))

	_, err = world.Pack(e)
	assert.ErrorIs(t, err, entity.ErrEntityNotAlive)
	assert.ErrorIs(t, world.Unpack(e, types.Package{}), entity.ErrEntityNotAlive)
}

func TestSaveAndLoadEntityThroughSnapshotStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	store := snapshot.NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	world := newMovementWorld(t, WithSnapshotStorage(store))
	ctx := context.Background()

	src, err := Create(world, Position{X: 1, Y: 2, Z: 3}, Velocity{Z: -1})
	assert.NilError(t, err)
	assert.NilError(t, world.SaveEntity(ctx, "player", src))

	dst, err := Create(world)
	assert.NilError(t, err)
	assert.NilError(t, world.LoadEntity(ctx, "player", dst))

	pos, err := GetComponent[Position](world, dst)
	assert.NilError(t, err)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, *pos)
	vel, err := GetComponent[Velocity](world, dst)
	assert.NilError(t, err)
	assert.Equal(t, Velocity{Z: -1}, *vel)
}

func TestSaveEntityWithoutStorageFails(t *testing.T) {
	world := newMovementWorld(t)
	e, err := Create(world, Position{})
	assert.NilError(t, err)

	assert.ErrorIs(t, world.SaveEntity(context.Background(), "x", e), ErrNoSnapshotStorage)
	assert.ErrorIs(t, world.LoadEntity(context.Background(), "x", e), ErrNoSnapshotStorage)
}

func TestSchemasAreSharedThroughSnapshotStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	worldA := newTestWorld(t, WithSnapshotStorage(snapshot.NewRedisStorage(client)))
	assert.NilError(t, RegisterComponent[Position](worldA))

	// a second world over the same storage accepts the same component shape
	worldB := newTestWorld(t, WithSnapshotStorage(snapshot.NewRedisStorage(client)))
	assert.NilError(t, RegisterComponent[Position](worldB))
}
