package types

import (
	"testing"

	"github.com/quartz-engine/quartz/assert"
)

func TestMaskSetUnsetTest(t *testing.T) {
	var m Mask
	assert.True(t, m.IsZero())

	m.Set(1)
	m.Set(64)
	m.Set(65)
	m.Set(MaxComponentTypes)

	assert.True(t, m.Test(1))
	assert.True(t, m.Test(64))
	assert.True(t, m.Test(65))
	assert.True(t, m.Test(MaxComponentTypes))
	assert.False(t, m.Test(2))
	assert.Equal(t, 4, m.Count())

	m.Unset(64)
	assert.False(t, m.Test(64))
	assert.Equal(t, 3, m.Count())
}

func TestMaskIgnoresOutOfRangeIDs(t *testing.T) {
	var m Mask
	m.Set(0)
	m.Set(-1)
	m.Set(MaxComponentTypes + 1)
	assert.True(t, m.IsZero())

	m.Set(7)
	m.Unset(0)
	m.Unset(MaxComponentTypes + 1)
	assert.True(t, m.Test(7))
	assert.Equal(t, 1, m.Count())

	assert.False(t, m.Test(0))
	assert.False(t, m.Test(-1))
	assert.False(t, m.Test(MaxComponentTypes+1))
}

func TestMaskContainsAll(t *testing.T) {
	var m, sub Mask
	m.Set(3)
	m.Set(70)
	m.Set(200)
	sub.Set(3)
	sub.Set(200)

	assert.True(t, m.ContainsAll(sub))
	assert.True(t, m.ContainsAll(Mask{}), "the empty mask is a subset of any mask")
	assert.False(t, sub.ContainsAll(m))

	sub.Set(71)
	assert.False(t, m.ContainsAll(sub))
}

func TestMaskIDsAreAscending(t *testing.T) {
	var m Mask
	for _, id := range []ComponentID{130, 2, 64, 65, 1} {
		m.Set(id)
	}
	assert.DeepEqual(t, []ComponentID{1, 2, 64, 65, 130}, m.IDs())
}
