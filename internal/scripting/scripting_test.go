package scripting

import (
	"math"
	"testing"

	"github.com/l1jgo/survivors/internal/data"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func shippedActors(t *testing.T) *data.ActorTable {
	t.Helper()
	actors, err := data.LoadActorTable("../../data/yaml/actors.yaml")
	require.NoError(t, err)
	return actors
}

func TestLoadSceneString(t *testing.T) {
	e := newEngine(t)
	sc, err := e.LoadSceneString(`
scene = {
  name = "duel",
  player = { template = "hero", x = 1, y = 2 },
  enemies = {
    { template = "ghoul", x = 5, y = 0 },
    { template = "ghoul", count = 4, spread = 2 },
  },
  waves = {
    { at = 3.5, spawns = { { template = "brute", x = -5 } } },
  },
}`)
	require.NoError(t, err)

	assert.Equal(t, "duel", sc.Name)
	assert.Equal(t, Spawn{Template: "hero", X: 1, Y: 2, Count: 1}, sc.Player)
	require.Len(t, sc.Enemies, 2)
	assert.Equal(t, 1, sc.Enemies[0].Count)
	assert.Equal(t, 4, sc.Enemies[1].Count)
	require.Len(t, sc.Waves, 1)
	assert.Equal(t, 3.5, sc.Waves[0].At)

	st, err := sc.Resolve(shippedActors(t))
	require.NoError(t, err)
	assert.Equal(t, vmath.Vec3{X: 1, Y: 2}, st.Player.Position)
	require.Len(t, st.Enemies, 5)
	assert.Equal(t, vmath.Vec3{X: 5}, st.Enemies[0].Position)
	// The ring of four starts on +X at the spread radius.
	assert.InDelta(t, 2, st.Enemies[1].Position.X, 1e-9)
	assert.InDelta(t, 2, st.Enemies[2].Position.Y, 1e-9)
	require.Len(t, st.Waves, 1)
	assert.Equal(t, 25.0, st.Waves[0].Enemies[0].AttackPower)
}

func TestSceneDigest(t *testing.T) {
	const src = `scene = { name = "a", player = { template = "hero" } }`
	a, err := newEngine(t).LoadSceneString(src)
	require.NoError(t, err)
	b, err := newEngine(t).LoadSceneString(src)
	require.NoError(t, err)
	c, err := newEngine(t).LoadSceneString(src + "\n-- edited")
	require.NoError(t, err)

	assert.Len(t, a.Digest, 16)
	assert.Equal(t, a.Digest, b.Digest)
	assert.NotEqual(t, a.Digest, c.Digest)
}

func TestLoadSceneString_NoScene(t *testing.T) {
	e := newEngine(t)
	_, err := e.LoadSceneString(`x = 1`)
	assert.ErrorIs(t, err, ErrNoScene)

	_, err = e.LoadSceneString(`scene = (`)
	assert.Error(t, err)
}

func TestResolve_UnknownTemplate(t *testing.T) {
	e := newEngine(t)
	sc, err := e.LoadSceneString(`
scene = {
  player = { template = "hero" },
  waves = { { at = 1, spawns = { { template = "dragon" } } } },
}`)
	require.NoError(t, err)

	_, err = sc.Resolve(shippedActors(t))
	assert.ErrorIs(t, err, data.ErrUnknownTemplate)
}

func TestAutopilot(t *testing.T) {
	e := newEngine(t)
	assert.Nil(t, e.Autopilot())

	_, err := e.LoadSceneString(`
scene = { player = { template = "hero" } }
function autopilot(t)
  if t < 1 then return 3, 4 end
  return 0, 0
end`)
	require.NoError(t, err)
	ap := e.Autopilot()
	require.NotNil(t, ap)

	v := ap.MoveIntent(0)
	assert.InDelta(t, 0.6, v.X, 1e-9)
	assert.InDelta(t, 0.8, v.Y, 1e-9)
	assert.Equal(t, vmath.Vec2{}, ap.MoveIntent(2))
}

func TestAutopilot_ScriptErrorStandsStill(t *testing.T) {
	e := newEngine(t)
	_, err := e.LoadSceneString(`
scene = {}
function autopilot(t) error("broken") end`)
	require.NoError(t, err)

	assert.Equal(t, vmath.Vec2{}, e.Autopilot().MoveIntent(0))
}

func TestShippedScene(t *testing.T) {
	e, err := NewEngine("../../scripts", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	sc, err := e.LoadScene("../../scripts/scene.lua")
	require.NoError(t, err)
	st, err := sc.Resolve(shippedActors(t))
	require.NoError(t, err)

	assert.Len(t, st.Enemies, 6)
	require.Len(t, st.Waves, 3)
	assert.Len(t, st.Waves[1].Enemies, 11)
	for _, en := range st.Enemies {
		assert.InDelta(t, 10, math.Hypot(en.Position.X, en.Position.Y), 1e-9)
	}
	assert.NotNil(t, e.Autopilot())
}
