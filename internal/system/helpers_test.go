package system

import (
	"testing"
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testTick = 100 * time.Millisecond

func newTestState(ctx world.Context) *world.State {
	return world.NewState(ctx, zap.NewNop())
}

func testPlayer(pos vmath.Vec3) world.PlayerSpec {
	return world.PlayerSpec{
		ActorSpec: world.ActorSpec{Position: pos, MoveSpeed: 4, MaxHealth: 100, Radius: 0.5},
		Attack: component.PlayerAttack{
			Template:    "bolt",
			Cooldown:    0.5,
			HalfExtents: vmath.Vec3{X: 8, Y: 8, Z: 1},
			Filter:      component.Filter{BelongsTo: component.LayerPlayer, CollidesWith: component.LayerEnemy},
		},
	}
}

func testEnemy(pos vmath.Vec3) world.EnemySpec {
	return world.EnemySpec{
		ActorSpec:      world.ActorSpec{Position: pos, MoveSpeed: 1.5, MaxHealth: 20, Radius: 0.5},
		AttackPower:    10,
		AttackCooldown: 1.0,
	}
}

func spawnPlayer(t *testing.T, ws *world.State, spec world.PlayerSpec) ecs.EntityID {
	t.Helper()
	var id ecs.EntityID
	ws.SpawnPlayer(spec, func(got ecs.EntityID) { id = got })
	ws.ECS.Playback()
	require.False(t, id.IsZero())
	return id
}

func spawnEnemy(t *testing.T, ws *world.State, spec world.EnemySpec) ecs.EntityID {
	t.Helper()
	var id ecs.EntityID
	ws.SpawnEnemy(spec, func(got ecs.EntityID) { id = got })
	ws.ECS.Playback()
	require.False(t, id.IsZero())
	return id
}

// step runs systems in the given order as one tick of testTick.
func step(ws *world.State, systems ...coresys.System) {
	ws.Clock.Begin(testTick)
	for _, s := range systems {
		s.Update(testTick)
	}
	ws.Clock.Advance()
}

// advance moves the clock forward without running anything.
func advance(ws *world.State, d time.Duration) {
	ws.Clock.Begin(d)
	ws.Clock.Advance()
}

func health(t *testing.T, ws *world.State, id ecs.EntityID) float64 {
	t.Helper()
	h, ok := ws.HealthOf(id)
	require.True(t, ok)
	return h.Current
}
