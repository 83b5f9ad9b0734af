package event

import "github.com/l1jgo/survivors/internal/core/ecs"

// EntityDestroyed is emitted by the sweeper for every entity it removes.
type EntityDestroyed struct {
	Entity     ecs.EntityID
	Player     bool
	Enemy      bool
	Projectile bool
	At         float64 // simulation seconds
}

// ProjectileFired is emitted by the targeter when it queues a spawn.
type ProjectileFired struct {
	Shooter  ecs.EntityID
	Target   ecs.EntityID
	Template string
	At       float64
}

// DamageResolved is emitted when an actor's damage buffer is drained.
type DamageResolved struct {
	Entity ecs.EntityID
	Amount float64
	Health float64
	Player bool
	At     float64
}

// WaveSpawned is emitted when the wave director queues a wave.
type WaveSpawned struct {
	Wave    int
	Enemies int
	At      float64
}
