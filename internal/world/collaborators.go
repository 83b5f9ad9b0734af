package world

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/vmath"
)

//go:generate go tool mockgen -destination=./mocks/collaborators_mock.go -package=mocks . Physics,Input,Presenter,Camera

// Pair is an unordered pair of bodies reported by physics. Which entity is A
// and which is B carries no meaning.
type Pair struct {
	A, B ecs.EntityID
}

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max vmath.Vec3
}

// BoxAround returns the box centred on c extended by half in each axis.
func BoxAround(c, half vmath.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Hit is one body returned by an overlap query.
type Hit struct {
	Entity   ecs.EntityID
	Position vmath.Vec3
}

// Physics detects collisions. The simulation only consumes its event stream
// and issues overlap queries; it never detects collisions itself.
type Physics interface {
	// Step integrates velocities over dt and reports the contact (solid) and
	// trigger (overlap only) pairs observed this tick.
	Step(dt time.Duration) (contacts, triggers []Pair)
	// OverlapAABB returns every body inside box whose layer passes filter.
	OverlapAABB(box AABB, filter component.Filter) []Hit
}

// Input supplies the player's move intent, sampled once per tick.
type Input interface {
	MoveIntent(now float64) vmath.Vec2
}

// Presenter receives outbound notifications for UI.
type Presenter interface {
	// GameOver is called exactly once, synchronously, when the player is removed.
	GameOver()
}

// Camera follows the player's world position once per tick.
type Camera interface {
	Follow(pos vmath.Vec3)
}

// Context carries the external collaborators, owned by the driver and
// injected at construction. Any field may be nil; systems that need a missing
// collaborator no-op for the tick.
type Context struct {
	Physics   Physics
	Input     Input
	Presenter Presenter
	Camera    Camera
}
