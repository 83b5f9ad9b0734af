package system

import (
	"testing"

	"github.com/l1jgo/survivors/internal/core/event"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/l1jgo/survivors/internal/world/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestInput_CopiesIntentToPlayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	in := mocks.NewMockInput(ctrl)
	in.EXPECT().MoveIntent(0.0).Return(vmath.Vec2{X: 1})
	in.EXPECT().MoveIntent(0.1).Return(vmath.Vec2{Y: -1})

	ws := newTestState(world.Context{Input: in})
	player := spawnPlayer(t, ws, testPlayer(vmath.Vec3{}))
	sys := NewInputSystem(ws)

	step(ws, sys)
	dir, _ := ws.MoveDirs.Get(player)
	assert.Equal(t, vmath.Vec2{X: 1}, dir.Value)

	step(ws, sys)
	assert.Equal(t, vmath.Vec2{Y: -1}, dir.Value)
}

func TestInput_NoPlayerNoSample(t *testing.T) {
	ctrl := gomock.NewController(t)
	in := mocks.NewMockInput(ctrl)
	ws := newTestState(world.Context{Input: in})

	step(ws, NewInputSystem(ws))
}

func TestInput_PendingPlayerIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	in := mocks.NewMockInput(ctrl)
	ws := newTestState(world.Context{Input: in})
	player := spawnPlayer(t, ws, testPlayer(vmath.Vec3{}))
	ws.Flag(player)

	step(ws, NewInputSystem(ws))
}

func TestEventDispatch_DeliversPreviousTick(t *testing.T) {
	bus := event.NewBus()
	sys := NewEventDispatchSystem(bus)
	var got []int
	event.Subscribe(bus, func(ev event.WaveSpawned) { got = append(got, ev.Wave) })

	event.Emit(bus, event.WaveSpawned{Wave: 1})
	assert.Empty(t, got)
	sys.Update(testTick)
	assert.Equal(t, []int{1}, got)
	sys.Update(testTick)
	assert.Equal(t, []int{1}, got)
}

func TestCamera_FollowsPlayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	cam := mocks.NewMockCamera(ctrl)
	cam.EXPECT().Follow(vmath.Vec3{X: 3, Y: -2})

	ws := newTestState(world.Context{Camera: cam})
	spawnPlayer(t, ws, testPlayer(vmath.Vec3{X: 3, Y: -2}))
	spawnEnemy(t, ws, testEnemy(vmath.Vec3{}))

	step(ws, NewCameraSystem(ws))
}
