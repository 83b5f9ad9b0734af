package scripting

import (
	"fmt"
	"math"

	"github.com/l1jgo/survivors/internal/data"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
)

// Spawn places Count actors of one template. With Count > 1 they sit
// evenly on a circle of radius Spread around (X, Y).
type Spawn struct {
	Template string
	X, Y     float64
	Count    int
	Spread   float64
}

// WaveEntry is a timed batch of enemy spawns.
type WaveEntry struct {
	At     float64
	Spawns []Spawn
}

// Scene is what a scene script declares. Digest fingerprints the script
// source so recorded runs can tell scene revisions apart.
type Scene struct {
	Name    string
	Digest  string
	Player  Spawn
	Enemies []Spawn
	Waves   []WaveEntry
}

// positions lays the spawn out.
func (s Spawn) positions() []vmath.Vec3 {
	if s.Count <= 1 {
		return []vmath.Vec3{{X: s.X, Y: s.Y}}
	}
	out := make([]vmath.Vec3, s.Count)
	for i := range out {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(s.Count))
		out[i] = vmath.Vec3{X: s.X + cos*s.Spread, Y: s.Y + sin*s.Spread}
	}
	return out
}

// Setup is a scene resolved against the loaded templates.
type Setup struct {
	Player  world.PlayerSpec
	Enemies []world.EnemySpec
	Waves   []world.Wave
}

// Resolve turns template names into spawn specs.
func (sc *Scene) Resolve(actors *data.ActorTable) (*Setup, error) {
	player, err := actors.PlayerSpec(sc.Player.Template, vmath.Vec3{X: sc.Player.X, Y: sc.Player.Y})
	if err != nil {
		return nil, fmt.Errorf("scene player: %w", err)
	}
	st := &Setup{Player: player}
	if st.Enemies, err = enemySpecs(actors, sc.Enemies); err != nil {
		return nil, fmt.Errorf("scene enemies: %w", err)
	}
	for i, w := range sc.Waves {
		enemies, err := enemySpecs(actors, w.Spawns)
		if err != nil {
			return nil, fmt.Errorf("scene wave %d: %w", i+1, err)
		}
		st.Waves = append(st.Waves, world.Wave{At: w.At, Enemies: enemies})
	}
	return st, nil
}

func enemySpecs(actors *data.ActorTable, spawns []Spawn) ([]world.EnemySpec, error) {
	var out []world.EnemySpec
	for _, s := range spawns {
		for _, pos := range s.positions() {
			spec, err := actors.EnemySpec(s.Template, pos)
			if err != nil {
				return nil, err
			}
			out = append(out, spec)
		}
	}
	return out, nil
}
