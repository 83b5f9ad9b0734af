package world

import (
	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/vmath"
	"go.uber.org/zap"
)

// Frame holds the per-tick physics event stream. Written by the physics
// system, read by the react phase, overwritten next tick.
type Frame struct {
	Contacts []Pair
	Triggers []Pair
}

// State owns the ECS world and a typed handle to every store, built once so
// systems never look stores up at runtime.
type State struct {
	ECS *ecs.World

	Transforms    *ecs.Store[component.Transform]
	MoveDirs      *ecs.Store[component.MoveDirection]
	MoveSpeeds    *ecs.Store[component.MoveSpeed]
	Velocities    *ecs.Store[component.Velocity]
	Facings       *ecs.Store[component.Facing]
	Healths       *ecs.Store[component.Health]
	DamageBuffers *ecs.Store[component.DamageBuffer]
	Destroy       *ecs.Store[component.DestroyFlag]
	Initialized   *ecs.Store[component.InitializedFlag]
	Animations    *ecs.Store[component.AnimationIndex]
	Players       *ecs.Store[component.PlayerTag]
	CameraTargets *ecs.Store[component.CameraTarget]
	Enemies       *ecs.Store[component.EnemyTag]
	PlayerAttacks *ecs.Store[component.PlayerAttack]
	AttackReady   *ecs.Store[component.AttackReady]
	EnemyAttacks  *ecs.Store[component.EnemyAttack]
	Cooldowns     *ecs.Store[component.EnemyCooldown]
	Projectiles   *ecs.Store[component.Projectile]
	Bodies        *ecs.Store[component.Body]

	Frame  *ecs.Resource[Frame]
	Damage *DamageSink
	Clock  *Clock
	Ctx    Context

	templates map[string]ProjectileSpec
	log       *zap.Logger
}

func NewState(ctx Context, log *zap.Logger) *State {
	w := ecs.NewWorld()
	s := &State{
		ECS: w,

		Transforms:    ecs.Register[component.Transform](w),
		MoveDirs:      ecs.Register[component.MoveDirection](w),
		MoveSpeeds:    ecs.Register[component.MoveSpeed](w),
		Velocities:    ecs.Register[component.Velocity](w),
		Facings:       ecs.Register[component.Facing](w),
		Healths:       ecs.Register[component.Health](w),
		DamageBuffers: ecs.Register[component.DamageBuffer](w),
		Destroy:       ecs.Register[component.DestroyFlag](w),
		Initialized:   ecs.Register[component.InitializedFlag](w),
		Animations:    ecs.Register[component.AnimationIndex](w),
		Players:       ecs.Register[component.PlayerTag](w),
		CameraTargets: ecs.Register[component.CameraTarget](w),
		Enemies:       ecs.Register[component.EnemyTag](w),
		PlayerAttacks: ecs.Register[component.PlayerAttack](w),
		AttackReady:   ecs.Register[component.AttackReady](w),
		EnemyAttacks:  ecs.Register[component.EnemyAttack](w),
		Cooldowns:     ecs.Register[component.EnemyCooldown](w),
		Projectiles:   ecs.Register[component.Projectile](w),
		Bodies:        ecs.Register[component.Body](w),

		Frame:     ecs.NewResource[Frame](),
		Clock:     &Clock{},
		Ctx:       ctx,
		templates: make(map[string]ProjectileSpec),
		log:       log,
	}
	s.Damage = NewDamageSink(s.DamageBuffers)
	return s
}

func (s *State) Log() *zap.Logger { return s.log }

// Commands is the deferred mutation queue replayed at the cleanup phase.
func (s *State) Commands() *ecs.CommandBuffer { return s.ECS.Commands() }

// Pending reports whether id is flagged for removal at the next sweep.
func (s *State) Pending(id ecs.EntityID) bool {
	return s.Destroy.Enabled(id)
}

// Flag enables id's destroy flag. Returns false if it was already set or id
// has no flag. The caller must hold write access to the Destroy store and be
// the only goroutine touching id.
func (s *State) Flag(id ecs.EntityID) bool {
	if !s.Destroy.Has(id) || s.Destroy.Enabled(id) {
		return false
	}
	return s.Destroy.SetEnabled(id, true)
}

// Player returns the player entity. ok is false when no player exists yet
// or it has already been removed.
func (s *State) Player() (ecs.EntityID, bool) {
	id, _, ok := s.Players.First()
	return id, ok
}

// ---------- Presentation read-only accessors ----------

// Elapsed returns simulation seconds, for global visual effects.
func (s *State) Elapsed() float64 { return s.Clock.Now() }

func (s *State) Facing(id ecs.EntityID) (float64, bool) {
	f, ok := s.Facings.Get(id)
	if !ok {
		return 0, false
	}
	return f.Sign, true
}

func (s *State) Animation(id ecs.EntityID) component.Animation {
	a, ok := s.Animations.Get(id)
	if !ok {
		return component.AnimNone
	}
	return a.Value
}

func (s *State) Position(id ecs.EntityID) (vmath.Vec3, bool) {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return vmath.Vec3{}, false
	}
	return t.Position, true
}

func (s *State) HealthOf(id ecs.EntityID) (component.Health, bool) {
	h, ok := s.Healths.Get(id)
	if !ok {
		return component.Health{}, false
	}
	return *h, true
}

// Counts reports live actors for diagnostics.
func (s *State) Counts() (enemies, projectiles int) {
	return s.Enemies.Len(), s.Projectiles.Len()
}
