package system

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// batch is a run of same-phase systems with pairwise disjoint access.
type batch struct {
	phase   Phase
	systems []System
}

// Runner executes systems in phase order each tick. Within a phase,
// consecutive non-conflicting systems form a batch that runs in parallel;
// a conflicting system starts a new batch, so registration order between
// conflicting systems is preserved.
type Runner struct {
	systems []System
	batches []batch
	sorted  bool
	workers int
	log     *zap.Logger
}

// NewRunner creates a runner. workers caps goroutines per batch; 0 means no cap.
func NewRunner(workers int, log *zap.Logger) *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		workers: workers,
		log:     log,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every phase and returns only after all of them, including the
// cleanup phase's command playback, have completed.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for i := range r.batches {
		r.runBatch(&r.batches[i], dt)
	}
}

// TickPhase runs only the systems of the given phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for i := range r.batches {
		if r.batches[i].phase == phase {
			r.runBatch(&r.batches[i], dt)
		}
	}
}

// Schedule returns the batch layout, one line per batch. For diagnostics.
func (r *Runner) Schedule() []string {
	r.ensureSorted()
	out := make([]string, 0, len(r.batches))
	for _, b := range r.batches {
		line := b.phase.String() + ":"
		for _, s := range b.systems {
			line += " " + systemName(s)
		}
		out = append(out, line)
	}
	return out
}

func (r *Runner) runBatch(b *batch, dt time.Duration) {
	if len(b.systems) == 1 {
		b.systems[0].Update(dt)
		return
	}
	var g errgroup.Group
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for _, s := range b.systems {
		g.Go(func() error {
			s.Update(dt)
			return nil
		})
	}
	_ = g.Wait() // systems never fail; Wait is the barrier
}

func (r *Runner) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].Phase() < r.systems[j].Phase()
	})
	r.batches = r.batches[:0]
	for _, s := range r.systems {
		if n := len(r.batches); n > 0 && r.batches[n-1].phase == s.Phase() && fits(r.batches[n-1].systems, s) {
			r.batches[n-1].systems = append(r.batches[n-1].systems, s)
			continue
		}
		r.batches = append(r.batches, batch{phase: s.Phase(), systems: []System{s}})
	}
	r.sorted = true
	if r.log != nil {
		for _, line := range r.Schedule() {
			r.log.Debug("schedule batch", zap.String("batch", line))
		}
	}
}

func fits(members []System, s System) bool {
	acc := s.Access()
	if acc.Empty() {
		return false
	}
	for _, m := range members {
		ma := m.Access()
		if ma.Empty() || ma.Conflicts(acc) {
			return false
		}
	}
	return true
}

func systemName(s System) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
