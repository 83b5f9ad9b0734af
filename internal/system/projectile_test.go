package system

import (
	"math"
	"testing"

	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func spawnProjectile(t *testing.T, ws *world.State, pos vmath.Vec3, heading float64) ecs.EntityID {
	t.Helper()
	ws.RegisterProjectile("bolt", bolt)
	var id ecs.EntityID
	require.True(t, ws.SpawnProjectile("bolt", pos, heading, func(got ecs.EntityID) { id = got }))
	ws.ECS.Playback()
	require.False(t, id.IsZero())
	return id
}

func triggers(ws *world.State, pairs ...world.Pair) {
	ws.Frame.Value.Triggers = append(ws.Frame.Value.Triggers[:0], pairs...)
}

func TestProjectileMove_FliesAlongHeading(t *testing.T) {
	ws := newTestState(world.Context{})
	p := spawnProjectile(t, ws, vmath.Vec3{}, math.Pi/2)
	sys := NewProjectileMoveSystem(ws)

	step(ws, sys)

	pos, ok := ws.Position(p)
	require.True(t, ok)
	assert.InDelta(t, 0, pos.X, 1e-9)
	assert.InDelta(t, 1.2, pos.Y, 1e-9)
	assert.False(t, ws.Pending(p))
}

func TestProjectileMove_ExpiresAfterDuration(t *testing.T) {
	ws := newTestState(world.Context{})
	p := spawnProjectile(t, ws, vmath.Vec3{}, 0)
	proj, _ := ws.Projectiles.Get(p)
	proj.Remaining = 0.25
	sys := NewProjectileMoveSystem(ws)

	step(ws, sys)
	step(ws, sys)
	assert.False(t, ws.Pending(p))
	step(ws, sys)
	assert.True(t, ws.Pending(p))

	// A pending projectile no longer moves.
	before, _ := ws.Position(p)
	step(ws, sys)
	after, _ := ws.Position(p)
	assert.Equal(t, before, after)
}

func TestProjectileHit_SingleUse(t *testing.T) {
	ws := newTestState(world.Context{})
	a := spawnEnemy(t, ws, testEnemy(vmath.Vec3{X: 1}))
	b := spawnEnemy(t, ws, testEnemy(vmath.Vec3{X: 1.2}))
	p := spawnProjectile(t, ws, vmath.Vec3{X: 1.1}, 0)
	hits := NewProjectileHitSystem(ws, 0, zap.NewNop())
	dmg := NewDamageSystem(ws, nil, zap.NewNop())

	triggers(ws, world.Pair{A: a, B: p}, world.Pair{A: p, B: b})
	step(ws, hits, dmg)

	assert.True(t, ws.Pending(p))
	assert.Equal(t, 10.0, health(t, ws, a))
	assert.Equal(t, 20.0, health(t, ws, b))
}

func TestProjectileHit_SkipsPendingEnemy(t *testing.T) {
	ws := newTestState(world.Context{})
	dead := spawnEnemy(t, ws, testEnemy(vmath.Vec3{X: 1}))
	live := spawnEnemy(t, ws, testEnemy(vmath.Vec3{X: 1.2}))
	p := spawnProjectile(t, ws, vmath.Vec3{X: 1.1}, 0)
	ws.Flag(dead)
	hits := NewProjectileHitSystem(ws, 0, zap.NewNop())
	dmg := NewDamageSystem(ws, nil, zap.NewNop())

	triggers(ws, world.Pair{A: p, B: dead}, world.Pair{A: p, B: live})
	step(ws, hits, dmg)

	assert.True(t, ws.Pending(p))
	assert.Equal(t, 10.0, health(t, ws, live))
}

func TestProjectileHit_IgnoresPendingProjectileAndOtherPairs(t *testing.T) {
	ws := newTestState(world.Context{})
	e := spawnEnemy(t, ws, testEnemy(vmath.Vec3{X: 1}))
	player := spawnPlayer(t, ws, testPlayer(vmath.Vec3{}))
	p := spawnProjectile(t, ws, vmath.Vec3{X: 1}, 0)
	ws.Flag(p)
	hits := NewProjectileHitSystem(ws, 0, zap.NewNop())
	dmg := NewDamageSystem(ws, nil, zap.NewNop())

	triggers(ws, world.Pair{A: p, B: e}, world.Pair{A: player, B: e})
	step(ws, hits, dmg)

	assert.Equal(t, 20.0, health(t, ws, e))
	assert.Equal(t, 100.0, health(t, ws, player))
}

func TestProjectileHit_ManyProjectilesOneEnemy(t *testing.T) {
	ws := newTestState(world.Context{})
	e := spawnEnemy(t, ws, testEnemy(vmath.Vec3{}))
	const n = 64
	var pairs []world.Pair
	projectiles := make([]ecs.EntityID, n)
	for i := range projectiles {
		projectiles[i] = spawnProjectile(t, ws, vmath.Vec3{}, 0)
		pairs = append(pairs, world.Pair{A: e, B: projectiles[i]})
	}
	hits := NewProjectileHitSystem(ws, 8, zap.NewNop())

	triggers(ws, pairs...)
	step(ws, hits)

	buf, ok := ws.DamageBuffers.Get(e)
	require.True(t, ok)
	assert.Len(t, buf.Entries, n)
	for _, p := range projectiles {
		assert.True(t, ws.Pending(p))
	}
}
