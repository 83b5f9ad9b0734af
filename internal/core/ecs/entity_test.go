package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPool_NeverHandsOutNull(t *testing.T) {
	p := NewEntityPool()
	id := p.Create()
	assert.False(t, id.IsZero())
	assert.Equal(t, uint32(1), id.Index())
	assert.False(t, p.Alive(EntityID(0)))
}

func TestEntityPool_RecycledSlotGetsNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Generation()+1, b.Generation())
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a), "stale id must not alias the new entity")
}

func TestEntityPool_DestroyStaleIsNoop(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Destroy(a))
	assert.False(t, p.Destroy(a))
	assert.Equal(t, 0, p.Count())
}

func TestEntityID_String(t *testing.T) {
	assert.Equal(t, "7:3", NewEntityID(7, 3).String())
}

func TestWorld_DestroyNowStale(t *testing.T) {
	w := NewWorld()
	s := Register[int](w)
	id := w.CreateEntity()
	s.Set(id, 5)

	require.NoError(t, w.DestroyNow(id))
	assert.False(t, s.Has(id))
	assert.ErrorIs(t, w.DestroyNow(id), ErrStaleEntity)
}
