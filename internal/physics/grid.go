package physics

import (
	"math"

	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/vmath"
)

// grid is a uniform broadphase over the XY plane. A body is filed under the
// cell holding its centre; cell size is at least the largest body diameter,
// so any two overlapping bodies sit in the same or adjacent cells.
// Rebuilt every step from the game loop goroutine; no locks.
type grid struct {
	size  float64
	cells map[cellKey][]int // indices into the body slice
}

type cellKey struct {
	cx, cy int32
}

func newGrid(size float64) *grid {
	return &grid{size: size, cells: make(map[cellKey][]int)}
}

func (g *grid) coord(v float64) int32 {
	return int32(math.Floor(v / g.size))
}

func (g *grid) key(p vmath.Vec3) cellKey {
	return cellKey{cx: g.coord(p.X), cy: g.coord(p.Y)}
}

// reset empties the grid and sets a new cell size, keeping cell slices.
func (g *grid) reset(size float64) {
	if size != g.size {
		g.size = size
		clear(g.cells)
		return
	}
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

func (g *grid) add(i int, p vmath.Vec3) {
	k := g.key(p)
	g.cells[k] = append(g.cells[k], i)
}

// nearby calls fn for every index in the 3x3 neighbourhood of p's cell.
// Caller does fine-grained distance filtering.
func (g *grid) nearby(p vmath.Vec3, fn func(i int)) {
	c := g.key(p)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for _, i := range g.cells[cellKey{cx: c.cx + dx, cy: c.cy + dy}] {
				fn(i)
			}
		}
	}
}

// within calls fn for every index whose cell touches the box [lo, hi],
// widened by one cell so bodies centred just outside are still seen.
func (g *grid) within(lo, hi vmath.Vec3, fn func(i int)) {
	x0, x1 := g.coord(lo.X)-1, g.coord(hi.X)+1
	y0, y1 := g.coord(lo.Y)-1, g.coord(hi.Y)+1
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			for _, i := range g.cells[cellKey{cx: cx, cy: cy}] {
				fn(i)
			}
		}
	}
}

// entry is a body snapshot taken after integration.
type entry struct {
	id      ecs.EntityID
	pos     vmath.Vec3
	radius  float64
	layer   uint32
	trigger bool
}
