// Package physics is a small reference implementation of the simulation's
// physics collaborator: circle bodies on the XY plane, a uniform grid
// broadphase, positional separation for solid contacts, and trigger
// reporting for trigger bodies.
package physics

import (
	"math"
	"sort"
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// DefaultCellSize is the broadphase cell edge used when none is configured.
const DefaultCellSize = 4.0

// skin widens the contact test so bodies resting against each other after
// separation keep reporting a contact every step.
const skin = 1e-3

// Matrix maps a layer bit to the layers it interacts with. A pair is tested
// only when each side accepts the other.
type Matrix map[uint32]uint32

// DefaultMatrix: players touch enemies, enemies touch everything,
// projectiles only enemies.
func DefaultMatrix() Matrix {
	return Matrix{
		component.LayerPlayer:     component.LayerEnemy,
		component.LayerEnemy:      component.LayerPlayer | component.LayerEnemy | component.LayerProjectile,
		component.LayerProjectile: component.LayerEnemy,
	}
}

func (m Matrix) accepts(a, b uint32) bool {
	return m[a]&b != 0 && m[b]&a != 0
}

// World reads bodies from the simulation state it is bound to. Step and
// OverlapAABB must not be called concurrently with each other.
type World struct {
	state    *world.State
	matrix   Matrix
	cellSize float64
	grid     *grid
	bodies   []entry
	log      *zap.Logger
}

func New(cellSize float64, matrix Matrix, log *zap.Logger) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if matrix == nil {
		matrix = DefaultMatrix()
	}
	return &World{
		matrix:   matrix,
		cellSize: cellSize,
		grid:     newGrid(cellSize),
		log:      log,
	}
}

// Bind attaches the simulation state. Must be called before the first Step.
func (w *World) Bind(ws *world.State) { w.state = ws }

// Step integrates velocities over dt, rebuilds the broadphase, separates
// overlapping solid bodies and reports contact and trigger pairs. Pairs are
// ordered by entity id.
func (w *World) Step(dt time.Duration) (contacts, triggers []world.Pair) {
	ws := w.state
	if ws == nil {
		return nil, nil
	}
	sec := dt.Seconds()
	ecs.Each2(ws.Velocities, ws.Transforms, func(_ ecs.EntityID, v *component.Velocity, tr *component.Transform) {
		tr.Position = tr.Position.Add(v.Linear.Scale(sec))
	})

	w.snapshot()

	for i := range w.bodies {
		a := &w.bodies[i]
		w.grid.nearby(a.pos, func(j int) {
			if j <= i {
				return
			}
			b := &w.bodies[j]
			if a.trigger && b.trigger || !w.matrix.accepts(a.layer, b.layer) {
				return
			}
			reach := a.radius + b.radius
			if a.pos.DistSq(b.pos) > (reach+skin)*(reach+skin) {
				return
			}
			p := world.Pair{A: a.id, B: b.id}
			if a.trigger || b.trigger {
				triggers = append(triggers, p)
				return
			}
			contacts = append(contacts, p)
			w.separate(a, b, reach)
		})
	}
	sortPairs(contacts)
	sortPairs(triggers)
	return contacts, triggers
}

// snapshot copies every body with a transform, in id order, into the grid.
func (w *World) snapshot() {
	ws := w.state
	w.bodies = w.bodies[:0]
	maxRadius := 0.0
	ecs.Each2(ws.Bodies, ws.Transforms, func(id ecs.EntityID, b *component.Body, tr *component.Transform) {
		w.bodies = append(w.bodies, entry{
			id:      id,
			pos:     tr.Position,
			radius:  b.Radius,
			layer:   b.Layer,
			trigger: b.Trigger,
		})
		maxRadius = max(maxRadius, b.Radius)
	})
	sort.Slice(w.bodies, func(i, j int) bool { return w.bodies[i].id < w.bodies[j].id })

	w.grid.reset(max(w.cellSize, 2*maxRadius))
	for i := range w.bodies {
		w.grid.add(i, w.bodies[i].pos)
	}
}

// separate pushes two penetrating solid bodies apart along the line between
// their centres, half each, and writes the result back to their transforms.
func (w *World) separate(a, b *entry, reach float64) {
	d := b.pos.Sub(a.pos)
	dist := math.Sqrt(d.LenSq())
	depth := reach - dist
	if depth <= 0 {
		return
	}
	n := vmath.Vec3{X: 1}
	if dist > 0 {
		n = d.Scale(1 / dist)
	}
	push := n.Scale(depth / 2)
	a.pos = a.pos.Sub(push)
	b.pos = b.pos.Add(push)
	if tr, ok := w.state.Transforms.Get(a.id); ok {
		tr.Position = a.pos
	}
	if tr, ok := w.state.Transforms.Get(b.id); ok {
		tr.Position = b.pos
	}
}

// OverlapAABB returns the bodies from the last step that intersect box and
// whose layer is in filter.CollidesWith, ordered by entity id.
func (w *World) OverlapAABB(box world.AABB, filter component.Filter) []world.Hit {
	var hits []world.Hit
	test := func(i int) {
		e := &w.bodies[i]
		if e.layer&filter.CollidesWith == 0 || !circleInBox(e.pos, e.radius, box) {
			return
		}
		hits = append(hits, world.Hit{Entity: e.id, Position: e.pos})
	}
	if w.cellsIn(box) > len(w.bodies) {
		for i := range w.bodies {
			test(i)
		}
	} else {
		w.grid.within(box.Min, box.Max, test)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Entity < hits[j].Entity })
	return hits
}

func (w *World) cellsIn(box world.AABB) int {
	nx := int(w.grid.coord(box.Max.X)-w.grid.coord(box.Min.X)) + 3
	ny := int(w.grid.coord(box.Max.Y)-w.grid.coord(box.Min.Y)) + 3
	return nx * ny
}

// circleInBox tests the XY circle against the box's XY extent.
func circleInBox(c vmath.Vec3, r float64, box world.AABB) bool {
	dx := c.X - min(max(c.X, box.Min.X), box.Max.X)
	dy := c.Y - min(max(c.Y, box.Min.Y), box.Max.Y)
	return dx*dx+dy*dy <= r*r
}

func sortPairs(ps []world.Pair) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].A != ps[j].A {
			return ps[i].A < ps[j].A
		}
		return ps[i].B < ps[j].B
	})
}
