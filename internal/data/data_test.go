package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const actorsYAML = `
players:
  - name: hero
    move_speed: 4.0
    max_health: 100
    radius: 0.5
    attack:
      projectile: bolt
      cooldown: 0.5
      half_extents: [8, 8, 1]
      targets: [enemy]
enemies:
  - name: ghoul
    move_speed: 1.5
    max_health: 20
    radius: 0.5
    attack_power: 10
    attack_cooldown: 1.0
`

const projectilesYAML = `
projectiles:
  - name: bolt
    speed: 12.0
    damage: 10
    duration: 1.5
    radius: 0.25
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadActorTable(t *testing.T) {
	actors, err := LoadActorTable(writeFile(t, "actors.yaml", actorsYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, actors.Count())

	hero, err := actors.PlayerSpec("hero", vmath.Vec3{X: 1})
	require.NoError(t, err)
	assert.Equal(t, vmath.Vec3{X: 1}, hero.Position)
	assert.Equal(t, 100.0, hero.MaxHealth)
	assert.Equal(t, "bolt", hero.Attack.Template)
	assert.Equal(t, vmath.Vec3{X: 8, Y: 8, Z: 1}, hero.Attack.HalfExtents)
	assert.Equal(t, component.Filter{BelongsTo: component.LayerPlayer, CollidesWith: component.LayerEnemy}, hero.Attack.Filter)

	ghoul, err := actors.EnemySpec("ghoul", vmath.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, ghoul.AttackPower)
	assert.Equal(t, 1.0, ghoul.AttackCooldown)
	assert.Equal(t, 1.5, ghoul.MoveSpeed)
}

func TestActorTable_UnknownTemplate(t *testing.T) {
	actors, err := LoadActorTable(writeFile(t, "actors.yaml", actorsYAML))
	require.NoError(t, err)

	_, err = actors.EnemySpec("lich", vmath.Vec3{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	_, err = actors.PlayerSpec("ghoul", vmath.Vec3{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Nil(t, actors.Enemy("hero"))
}

func TestLoadActorTable_UnknownLayer(t *testing.T) {
	body := `
players:
  - name: hero
    attack:
      projectile: bolt
      targets: [enemy, ghost]
`
	_, err := LoadActorTable(writeFile(t, "actors.yaml", body))
	assert.ErrorIs(t, err, ErrUnknownLayer)
}

func TestLoadActorTable_Errors(t *testing.T) {
	_, err := LoadActorTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadActorTable(writeFile(t, "bad.yaml", "players: [:"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	actors, err := LoadActorTable(writeFile(t, "actors.yaml", actorsYAML))
	require.NoError(t, err)
	projectiles, err := LoadProjectileTable(writeFile(t, "projectiles.yaml", projectilesYAML))
	require.NoError(t, err)
	assert.NoError(t, actors.Check(projectiles))

	empty, err := LoadProjectileTable(writeFile(t, "none.yaml", "projectiles: []"))
	require.NoError(t, err)
	assert.ErrorIs(t, actors.Check(empty), ErrUnknownTemplate)
}

func TestProjectileTable_RegisterAll(t *testing.T) {
	projectiles, err := LoadProjectileTable(writeFile(t, "projectiles.yaml", projectilesYAML))
	require.NoError(t, err)
	require.Equal(t, 1, projectiles.Count())

	ws := world.NewState(world.Context{}, zap.NewNop())
	projectiles.RegisterAll(ws)

	spec, ok := ws.ProjectileTemplate("bolt")
	require.True(t, ok)
	assert.Equal(t, world.ProjectileSpec{Speed: 12, Damage: 10, Duration: 1.5, Radius: 0.25}, spec)
}

// The shipped tables must load and agree with each other.
func TestShippedTables(t *testing.T) {
	actors, err := LoadActorTable("../../data/yaml/actors.yaml")
	require.NoError(t, err)
	projectiles, err := LoadProjectileTable("../../data/yaml/projectiles.yaml")
	require.NoError(t, err)
	assert.NoError(t, actors.Check(projectiles))
	assert.NotNil(t, actors.Player("hero"))
	assert.NotNil(t, actors.Enemy("brute"))
}
