package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTemplate is returned when a name has no loaded template.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrUnknownLayer is returned for a collision layer name not in layerBits.
	ErrUnknownLayer = errors.New("unknown layer")
)

var layerBits = map[string]uint32{
	"player":     component.LayerPlayer,
	"enemy":      component.LayerEnemy,
	"projectile": component.LayerProjectile,
}

// layerMask ORs the named layers together.
func layerMask(names []string) (uint32, error) {
	var mask uint32
	for _, n := range names {
		bit, ok := layerBits[n]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, n)
		}
		mask |= bit
	}
	return mask, nil
}

// ActorStats is the part of a template every character shares.
type ActorStats struct {
	Name      string  `yaml:"name"`
	MoveSpeed float64 `yaml:"move_speed"`
	MaxHealth float64 `yaml:"max_health"`
	Radius    float64 `yaml:"radius"`
}

func (a ActorStats) spec(pos vmath.Vec3) world.ActorSpec {
	return world.ActorSpec{
		Position:  pos,
		MoveSpeed: a.MoveSpeed,
		MaxHealth: a.MaxHealth,
		Radius:    a.Radius,
	}
}

// AttackTemplate is a player's ranged attack as written in YAML.
type AttackTemplate struct {
	Projectile  string     `yaml:"projectile"`
	Cooldown    float64    `yaml:"cooldown"` // seconds
	HalfExtents [3]float64 `yaml:"half_extents"`
	Targets     []string   `yaml:"targets"` // layer names the attack may hit

	mask uint32
}

type PlayerTemplate struct {
	ActorStats `yaml:",inline"`
	Attack     AttackTemplate `yaml:"attack"`
}

type EnemyTemplate struct {
	ActorStats     `yaml:",inline"`
	AttackPower    float64 `yaml:"attack_power"`
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds
}

type actorListFile struct {
	Players []PlayerTemplate `yaml:"players"`
	Enemies []EnemyTemplate  `yaml:"enemies"`
}

// ActorTable holds player and enemy templates indexed by name.
type ActorTable struct {
	players map[string]*PlayerTemplate
	enemies map[string]*EnemyTemplate
}

// LoadActorTable loads player and enemy templates from a YAML file.
func LoadActorTable(path string) (*ActorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read actors: %w", err)
	}
	var f actorListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse actors: %w", err)
	}
	t := &ActorTable{
		players: make(map[string]*PlayerTemplate, len(f.Players)),
		enemies: make(map[string]*EnemyTemplate, len(f.Enemies)),
	}
	for i := range f.Players {
		p := &f.Players[i]
		mask, err := layerMask(p.Attack.Targets)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		p.Attack.mask = mask
		t.players[p.Name] = p
	}
	for i := range f.Enemies {
		e := &f.Enemies[i]
		t.enemies[e.Name] = e
	}
	return t, nil
}

// Player returns a player template by name, or nil if not found.
func (t *ActorTable) Player(name string) *PlayerTemplate {
	return t.players[name]
}

// Enemy returns an enemy template by name, or nil if not found.
func (t *ActorTable) Enemy(name string) *EnemyTemplate {
	return t.enemies[name]
}

// Count returns the number of loaded templates.
func (t *ActorTable) Count() int {
	return len(t.players) + len(t.enemies)
}

// Check verifies every player attack names a loaded projectile.
func (t *ActorTable) Check(projectiles *ProjectileTable) error {
	for name, p := range t.players {
		if projectiles.Get(p.Attack.Projectile) == nil {
			return fmt.Errorf("player %s projectile %q: %w", name, p.Attack.Projectile, ErrUnknownTemplate)
		}
	}
	return nil
}

// PlayerSpec builds a spawn spec for the named player template at pos.
func (t *ActorTable) PlayerSpec(name string, pos vmath.Vec3) (world.PlayerSpec, error) {
	p := t.players[name]
	if p == nil {
		return world.PlayerSpec{}, fmt.Errorf("player %q: %w", name, ErrUnknownTemplate)
	}
	h := p.Attack.HalfExtents
	return world.PlayerSpec{
		ActorSpec: p.spec(pos),
		Attack: component.PlayerAttack{
			Template:    p.Attack.Projectile,
			Cooldown:    p.Attack.Cooldown,
			HalfExtents: vmath.Vec3{X: h[0], Y: h[1], Z: h[2]},
			Filter: component.Filter{
				BelongsTo:    component.LayerPlayer,
				CollidesWith: p.Attack.mask,
			},
		},
	}, nil
}

// EnemySpec builds a spawn spec for the named enemy template at pos.
func (t *ActorTable) EnemySpec(name string, pos vmath.Vec3) (world.EnemySpec, error) {
	e := t.enemies[name]
	if e == nil {
		return world.EnemySpec{}, fmt.Errorf("enemy %q: %w", name, ErrUnknownTemplate)
	}
	return world.EnemySpec{
		ActorSpec:      e.spec(pos),
		AttackPower:    e.AttackPower,
		AttackCooldown: e.AttackCooldown,
	}, nil
}
