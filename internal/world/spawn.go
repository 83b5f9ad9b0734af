package world

import (
	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/vmath"
	"go.uber.org/zap"
)

// ActorSpec holds the stats every character shares.
type ActorSpec struct {
	Position  vmath.Vec3
	MoveSpeed float64
	MaxHealth float64
	Radius    float64
}

type PlayerSpec struct {
	ActorSpec
	Attack component.PlayerAttack
}

type EnemySpec struct {
	ActorSpec
	AttackPower    float64
	AttackCooldown float64
}

// ProjectileSpec is a projectile template. Duration is the lifetime in seconds.
type ProjectileSpec struct {
	Speed    float64
	Damage   float64
	Duration float64
	Radius   float64
}

// Wave is a batch of enemies queued together once the clock reaches At.
type Wave struct {
	At      float64
	Enemies []EnemySpec
}

// RegisterProjectile makes a template available to the targeter by name.
// Call during setup only.
func (s *State) RegisterProjectile(name string, spec ProjectileSpec) {
	s.templates[name] = spec
}

func (s *State) ProjectileTemplate(name string) (ProjectileSpec, bool) {
	spec, ok := s.templates[name]
	return spec, ok
}

// SpawnPlayer queues the player. done receives the id at playback and may be nil.
func (s *State) SpawnPlayer(spec PlayerSpec, done func(ecs.EntityID)) {
	s.Commands().Spawn(func(_ *ecs.World, id ecs.EntityID) {
		s.buildActor(id, spec.ActorSpec, component.LayerPlayer)
		s.Players.Set(id, component.PlayerTag{})
		s.CameraTargets.Set(id, component.CameraTarget{})
		s.Animations.Set(id, component.AnimationIndex{Value: component.AnimIdle})
		s.PlayerAttacks.Set(id, spec.Attack)
		s.AttackReady.Set(id, component.AttackReady{At: 0})
		s.log.Debug("player spawned", zap.Stringer("entity", id))
	}, done)
}

// SpawnEnemy queues one hostile.
func (s *State) SpawnEnemy(spec EnemySpec, done func(ecs.EntityID)) {
	s.Commands().Spawn(func(_ *ecs.World, id ecs.EntityID) {
		s.buildActor(id, spec.ActorSpec, component.LayerEnemy)
		s.Enemies.Set(id, component.EnemyTag{})
		s.EnemyAttacks.Set(id, component.EnemyAttack{
			Power:    spec.AttackPower,
			Cooldown: spec.AttackCooldown,
		})
		s.Cooldowns.Set(id, component.EnemyCooldown{})
		s.Cooldowns.SetEnabled(id, false)
	}, done)
}

// SpawnProjectile queues a projectile from a registered template at pos,
// pointing along heading. Reports false for an unknown template.
func (s *State) SpawnProjectile(template string, pos vmath.Vec3, heading float64, done func(ecs.EntityID)) bool {
	spec, ok := s.templates[template]
	if !ok {
		return false
	}
	s.Commands().Spawn(func(_ *ecs.World, id ecs.EntityID) {
		s.Transforms.Set(id, component.Transform{Position: pos, Heading: heading})
		s.Projectiles.Set(id, component.Projectile{
			Speed:     spec.Speed,
			Damage:    spec.Damage,
			Remaining: spec.Duration,
		})
		s.Bodies.Set(id, component.Body{Radius: spec.Radius, Layer: component.LayerProjectile, Trigger: true})
		s.Destroy.Set(id, component.DestroyFlag{})
		s.Destroy.SetEnabled(id, false)
	}, done)
	return true
}

func (s *State) buildActor(id ecs.EntityID, spec ActorSpec, layer uint32) {
	s.Transforms.Set(id, component.Transform{Position: spec.Position})
	s.MoveDirs.Set(id, component.MoveDirection{})
	s.MoveSpeeds.Set(id, component.MoveSpeed{Value: spec.MoveSpeed})
	s.Velocities.Set(id, component.Velocity{})
	s.Facings.Set(id, component.Facing{Sign: 1})
	s.Healths.Set(id, component.Health{Max: spec.MaxHealth, Current: spec.MaxHealth})
	s.DamageBuffers.Set(id, component.DamageBuffer{Entries: make([]float64, 0, 4)})
	s.Bodies.Set(id, component.Body{Radius: spec.Radius, Layer: layer})
	s.Destroy.Set(id, component.DestroyFlag{})
	s.Destroy.SetEnabled(id, false)
	s.Initialized.Set(id, component.InitializedFlag{})
}
