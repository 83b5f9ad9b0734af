package system

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// probe records its run order and, while running, how many probes overlap.
type probe struct {
	name   string
	phase  Phase
	access ecs.Access
	log    *[]string
	mu     *sync.Mutex
	live   *atomic.Int32
	peak   *atomic.Int32
	hold   time.Duration
}

func (p *probe) Name() string       { return p.name }
func (p *probe) Phase() Phase       { return p.phase }
func (p *probe) Access() ecs.Access { return p.access }

func (p *probe) Update(time.Duration) {
	n := p.live.Add(1)
	for {
		old := p.peak.Load()
		if n <= old || p.peak.CompareAndSwap(old, n) {
			break
		}
	}
	time.Sleep(p.hold)
	p.mu.Lock()
	*p.log = append(*p.log, p.name)
	p.mu.Unlock()
	p.live.Add(-1)
}

type harness struct {
	log  []string
	mu   sync.Mutex
	live atomic.Int32
	peak atomic.Int32
}

func (h *harness) probe(name string, phase Phase, acc ecs.Access) *probe {
	return &probe{name: name, phase: phase, access: acc, log: &h.log, mu: &h.mu, live: &h.live, peak: &h.peak, hold: 20 * time.Millisecond}
}

func TestRunner_PhaseOrder(t *testing.T) {
	var h harness
	a := ecs.NewStore[int]()
	r := NewRunner(0, zap.NewNop())
	r.Register(h.probe("cleanup", PhaseCleanup, ecs.Writes(a)))
	r.Register(h.probe("react", PhaseReact, ecs.Writes(a)))
	r.Register(h.probe("input", PhaseInput, ecs.Writes(a)))

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"input", "react", "cleanup"}, h.log)
}

func TestRunner_DisjointSystemsShareABatch(t *testing.T) {
	var h harness
	a, b := ecs.NewStore[int](), ecs.NewStore[float64]()
	r := NewRunner(0, zap.NewNop())
	r.Register(h.probe("x", PhaseMove, ecs.Writes(a)))
	r.Register(h.probe("y", PhaseMove, ecs.Writes(b)))

	assert.Equal(t, []string{"move: x y"}, r.Schedule())
	r.Tick(time.Millisecond)
	assert.Equal(t, int32(2), h.peak.Load())
}

func TestRunner_ConflictsKeepRegistrationOrder(t *testing.T) {
	var h harness
	a := ecs.NewStore[int]()
	r := NewRunner(0, zap.NewNop())
	r.Register(h.probe("first", PhaseReact, ecs.Writes(a)))
	r.Register(h.probe("second", PhaseReact, ecs.Reads(a)))
	r.Register(h.probe("third", PhaseReact, ecs.Writes(a)))

	require.Equal(t, []string{"react: first", "react: second", "react: third"}, r.Schedule())
	for range 5 {
		h.log = h.log[:0]
		r.Tick(time.Millisecond)
		assert.Equal(t, []string{"first", "second", "third"}, h.log)
	}
	assert.Equal(t, int32(1), h.peak.Load())
}

func TestRunner_EmptyAccessRunsAlone(t *testing.T) {
	var h harness
	a := ecs.NewStore[int]()
	r := NewRunner(0, zap.NewNop())
	r.Register(h.probe("reader", PhaseInput, ecs.Reads(a)))
	r.Register(h.probe("opaque", PhaseInput, ecs.Access{}))
	r.Register(h.probe("reader2", PhaseInput, ecs.Reads(a)))

	assert.Len(t, r.Schedule(), 3)
	r.Tick(time.Millisecond)
	assert.Equal(t, int32(1), h.peak.Load())
}

func TestRunner_TickPhase(t *testing.T) {
	var h harness
	a := ecs.NewStore[int]()
	r := NewRunner(1, nil)
	r.Register(h.probe("move", PhaseMove, ecs.Writes(a)))
	r.Register(h.probe("attack", PhaseAttack, ecs.Writes(a)))

	r.TickPhase(PhaseAttack, time.Millisecond)
	assert.Equal(t, []string{"attack"}, h.log)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "post_update", PhasePostUpdate.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
