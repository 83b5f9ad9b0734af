package scripting

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// ErrNoScene is returned when a scene script does not define a scene table.
var ErrNoScene = errors.New("script defines no scene table")

// Engine wraps a single gopher-lua VM. Scripts only describe scenes and
// produce autopilot input; they never run simulation behaviour.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads the helper scripts under
// scriptsDir/lib. A missing lib directory is fine.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(filepath.Join(scriptsDir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadScene runs a scene script and reads back its global scene table.
func (e *Engine) LoadScene(path string) (*Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	if err := e.vm.DoString(string(src)); err != nil {
		return nil, fmt.Errorf("run scene %s: %w", path, err)
	}
	return e.scene(path, src)
}

// LoadSceneString is LoadScene for an in-memory script.
func (e *Engine) LoadSceneString(src string) (*Scene, error) {
	if err := e.vm.DoString(src); err != nil {
		return nil, fmt.Errorf("run scene: %w", err)
	}
	return e.scene("<string>", []byte(src))
}

func (e *Engine) scene(name string, src []byte) (*Scene, error) {
	t, ok := e.vm.GetGlobal("scene").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoScene)
	}
	sum := blake2b.Sum256(src)
	sc := &Scene{Name: lStr(t, "name"), Digest: hex.EncodeToString(sum[:8])}
	if p, ok := t.RawGetString("player").(*lua.LTable); ok {
		sc.Player = readSpawn(p)
	}
	sc.Enemies = readSpawns(t.RawGetString("enemies"))
	if waves, ok := t.RawGetString("waves").(*lua.LTable); ok {
		waves.ForEach(func(_, v lua.LValue) {
			w, ok := v.(*lua.LTable)
			if !ok {
				return
			}
			sc.Waves = append(sc.Waves, WaveEntry{
				At:     lNum(w, "at"),
				Spawns: readSpawns(w.RawGetString("spawns")),
			})
		})
	}
	e.log.Debug("scene loaded",
		zap.String("scene", name),
		zap.Int("enemies", len(sc.Enemies)),
		zap.Int("waves", len(sc.Waves)))
	return sc, nil
}

// --- Lua helpers ---

func readSpawns(v lua.LValue) []Spawn {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	var out []Spawn
	t.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(*lua.LTable); ok {
			out = append(out, readSpawn(s))
		}
	})
	return out
}

func readSpawn(t *lua.LTable) Spawn {
	s := Spawn{
		Template: lStr(t, "template"),
		X:        lNum(t, "x"),
		Y:        lNum(t, "y"),
		Count:    lInt(t, "count"),
		Spread:   lNum(t, "spread"),
	}
	if s.Count <= 0 {
		s.Count = 1
	}
	return s
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lNum reads a number field from a Lua table.
func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
