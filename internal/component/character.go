package component

import "github.com/l1jgo/survivors/internal/vmath"

// Components are pure data with no methods. Systems do all the mutating.

// Transform is the shared spatial record read by physics, camera and combat.
type Transform struct {
	Position vmath.Vec3
	Heading  float64 // rotation about z, radians
}

// MoveDirection is the desired planar direction, unit length or zero.
type MoveDirection struct {
	Value vmath.Vec2
}

type MoveSpeed struct {
	Value float64
}

// Velocity is the linear velocity handed to physics. Z stays 0.
type Velocity struct {
	Linear vmath.Vec3
}

// Facing drives sprite mirroring: -1 left, +1 right.
type Facing struct {
	Sign float64
}

type Health struct {
	Max     float64
	Current float64
}

// DamageBuffer collects damage appended during a tick. Drained exactly once
// per tick by the damage system; appends go through world.DamageSink.
type DamageBuffer struct {
	Entries []float64
}

// DestroyFlag is present on every actor and projectile and starts disabled.
// Enabling it means "remove at next sweep"; it is never disabled again.
type DestroyFlag struct{}

// InitializedFlag starts enabled; the init pass consumes it once.
type InitializedFlag struct{}

// AnimationIndex selects the player sprite row.
type AnimationIndex struct {
	Value Animation
}

type Animation uint8

const (
	AnimMovement Animation = 0
	AnimIdle     Animation = 1
	AnimNone     Animation = 255
)

func (a Animation) String() string {
	switch a {
	case AnimMovement:
		return "movement"
	case AnimIdle:
		return "idle"
	}
	return "none"
}

// PlayerTag marks the single controlled actor.
type PlayerTag struct{}

// CameraTarget marks the entity the camera follows.
type CameraTarget struct{}

// EnemyTag marks autonomous hostiles.
type EnemyTag struct{}
