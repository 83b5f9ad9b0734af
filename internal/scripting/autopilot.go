package scripting

import (
	"github.com/l1jgo/survivors/internal/vmath"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Autopilot feeds the player's move intent from a Lua function
// autopilot(t) returning (x, y). It stands in for an input device when
// the simulation runs headless.
type Autopilot struct {
	engine *Engine
	fn     lua.LValue
}

// Autopilot returns the script's input source, or nil when no autopilot
// function is defined.
func (e *Engine) Autopilot() *Autopilot {
	fn := e.vm.GetGlobal("autopilot")
	if fn.Type() != lua.LTFunction {
		return nil
	}
	return &Autopilot{engine: e, fn: fn}
}

// MoveIntent calls autopilot(now). A script error yields no movement.
func (a *Autopilot) MoveIntent(now float64) vmath.Vec2 {
	vm := a.engine.vm
	if err := vm.CallByParam(lua.P{
		Fn:      a.fn,
		NRet:    2,
		Protect: true,
	}, lua.LNumber(now)); err != nil {
		a.engine.log.Error("lua autopilot error", zap.Error(err))
		return vmath.Vec2{}
	}
	x := lua.LVAsNumber(vm.Get(-2))
	y := lua.LVAsNumber(vm.Get(-1))
	vm.Pop(2)
	return vmath.Vec2{X: float64(x), Y: float64(y)}.Normalize()
}
