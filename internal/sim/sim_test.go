package sim

import (
	"context"
	"testing"
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/core/event"
	"github.com/l1jgo/survivors/internal/physics"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tick = 100 * time.Millisecond

// touching reports the same contact every step and never finds targets.
type touching struct {
	pair world.Pair
}

func (p *touching) Step(time.Duration) (contacts, triggers []world.Pair) {
	if p.pair.A.IsZero() {
		return nil, nil
	}
	return []world.Pair{p.pair}, nil
}

func (p *touching) OverlapAABB(world.AABB, component.Filter) []world.Hit { return nil }

func hero(pos vmath.Vec3) world.PlayerSpec {
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

func ghoul(pos vmath.Vec3) world.EnemySpec {
	return world.EnemySpec{
		ActorSpec:      world.ActorSpec{Position: pos, MoveSpeed: 1.5, MaxHealth: 20, Radius: 0.5},
		AttackPower:    10,
		AttackCooldown: 1.0,
	}
}

func spawn(t *testing.T, s *Simulation, p world.PlayerSpec, enemies ...world.EnemySpec) (ecs.EntityID, []ecs.EntityID) {
	t.Helper()
	var player ecs.EntityID
	s.State.SpawnPlayer(p, func(id ecs.EntityID) { player = id })
	ids := make([]ecs.EntityID, len(enemies))
	for i, e := range enemies {
		s.State.SpawnEnemy(e, func(id ecs.EntityID) { ids[i] = id })
	}
	s.Flush()
	require.False(t, player.IsZero())
	return player, ids
}

func TestSimulation_ContactDamageCadence(t *testing.T) {
	phys := &touching{}
	s := New(world.Context{Physics: phys}, Options{Workers: 4}, zap.NewNop())
	player, enemies := spawn(t, s, hero(vmath.Vec3{}), ghoul(vmath.Vec3{X: 1}))
	phys.pair = world.Pair{A: enemies[0], B: player}

	var hits []float64
	event.Subscribe(s.Bus, func(ev event.DamageResolved) {
		if ev.Player {
			hits = append(hits, ev.At)
		}
	})

	for range 30 {
		s.Step(tick)
		require.False(t, s.State.Pending(player))
	}
	require.NoError(t, s.Finish(context.Background()))

	hp, ok := s.State.HealthOf(player)
	require.True(t, ok)
	assert.Equal(t, 70.0, hp.Current)
	assert.Equal(t, []float64{0, 1, 2}, hits)
	assert.False(t, s.GameOver())
	assert.Equal(t, 30.0, s.Stats().DamageTaken)
}

func TestSimulation_PlayerDeathEndsRun(t *testing.T) {
	phys := &touching{}
	s := New(world.Context{Physics: phys}, Options{}, zap.NewNop())
	p := hero(vmath.Vec3{})
	p.MaxHealth = 15
	player, enemies := spawn(t, s, p, ghoul(vmath.Vec3{X: 1}))
	phys.pair = world.Pair{A: player, B: enemies[0]}

	// Hits at 0 and 1.0 take 20 of 15.
	for range 11 {
		s.Step(tick)
	}
	assert.True(t, s.GameOver())
	assert.False(t, s.State.ECS.Alive(player))
	_, ok := s.State.Player()
	assert.False(t, ok)

	// The enemy keeps running without a player to chase.
	s.Step(tick)
	assert.True(t, s.State.ECS.Alive(enemies[0]))

	require.NoError(t, s.Finish(context.Background()))
	assert.False(t, s.Stats().Survived)
}

func TestSimulation_BoltsKillApproachingEnemy(t *testing.T) {
	phys := physics.New(physics.DefaultCellSize, nil, zap.NewNop())
	s := New(world.Context{Physics: phys}, Options{Workers: 2}, zap.NewNop())
	phys.Bind(s.State)
	s.State.RegisterProjectile("bolt", world.ProjectileSpec{Speed: 12, Damage: 10, Duration: 1.5, Radius: 0.25})
	player, enemies := spawn(t, s, hero(vmath.Vec3{}), ghoul(vmath.Vec3{X: 5}))

	for range 20 {
		s.Step(tick)
	}
	require.NoError(t, s.Finish(context.Background()))

	assert.False(t, s.State.ECS.Alive(enemies[0]))
	hp, _ := s.State.HealthOf(player)
	assert.Equal(t, 100.0, hp.Current)
	sum := s.Stats()
	assert.Equal(t, 1, sum.Kills)
	assert.GreaterOrEqual(t, sum.Shots, 2)
	assert.Equal(t, 20.0, sum.DamageDealt)
	enemiesLeft, projectiles := s.State.Counts()
	assert.Zero(t, enemiesLeft)
	assert.Zero(t, projectiles)
}

func TestSimulation_WavesArriveOnSchedule(t *testing.T) {
	s := New(world.Context{}, Options{Waves: []world.Wave{
		{At: 0.5, Enemies: []world.EnemySpec{ghoul(vmath.Vec3{X: 10}), ghoul(vmath.Vec3{X: -10})}},
	}}, zap.NewNop())
	spawn(t, s, hero(vmath.Vec3{}))

	for range 5 {
		s.Step(tick)
	}
	n, _ := s.State.Counts()
	assert.Zero(t, n)
	assert.Equal(t, 1, s.WavesRemaining())

	s.Step(tick)
	n, _ = s.State.Counts()
	assert.Equal(t, 2, n)
	assert.Zero(t, s.WavesRemaining())
}

func TestSimulation_Schedule(t *testing.T) {
	s := New(world.Context{}, Options{}, zap.NewNop())
	sched := s.Schedule()
	require.NotEmpty(t, sched)
}
