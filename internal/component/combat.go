package component

import "github.com/l1jgo/survivors/internal/vmath"

// Layer bits for Body.Layer and Filter masks.
const (
	LayerPlayer     uint32 = 1 << 0
	LayerEnemy      uint32 = 1 << 1
	LayerProjectile uint32 = 1 << 2
)

// Filter restricts overlap queries: a body matches when its layer intersects
// CollidesWith.
type Filter struct {
	BelongsTo    uint32
	CollidesWith uint32
}

// PlayerAttack is the player's ranged attack definition.
type PlayerAttack struct {
	Template    string     // projectile template name
	Cooldown    float64    // seconds
	HalfExtents vmath.Vec3 // detection box half size
	Filter      Filter
}

// AttackReady is the absolute simulation time the next ranged attack may fire.
type AttackReady struct {
	At float64
}

// EnemyAttack is a hostile's melee stats.
type EnemyAttack struct {
	Power    float64
	Cooldown float64 // seconds
}

// EnemyCooldown's enabled column is the cooldown-active flag. ExpiresAt is
// only meaningful while enabled.
type EnemyCooldown struct {
	ExpiresAt float64
}

// Projectile is a single-use homing blast.
type Projectile struct {
	Speed     float64
	Damage    float64
	Remaining float64 // seconds of life left
}

// Body is what the physics collaborator needs to know about an entity.
type Body struct {
	Radius        float64
	Layer         uint32
	Trigger       bool // overlaps report trigger events, no contact response
	FixedRotation bool
}
