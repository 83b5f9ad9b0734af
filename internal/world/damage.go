package world

import (
	"sync"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
)

const damageStripes = 64

// DamageSink is the only writer path into damage buffers during the react
// phase. Appends for the same actor are serialized by a striped mutex; the
// order between writers does not matter because draining sums the entries.
type DamageSink struct {
	buffers *ecs.Store[component.DamageBuffer]
	stripes [damageStripes]sync.Mutex
}

func NewDamageSink(buffers *ecs.Store[component.DamageBuffer]) *DamageSink {
	return &DamageSink{buffers: buffers}
}

// Append adds amount to id's pending damage. Reports false when id has no
// damage buffer (not an actor, or already removed).
func (d *DamageSink) Append(id ecs.EntityID, amount float64) bool {
	buf, ok := d.buffers.Get(id)
	if !ok {
		return false
	}
	mu := &d.stripes[id.Index()%damageStripes]
	mu.Lock()
	buf.Entries = append(buf.Entries, amount)
	mu.Unlock()
	return true
}

// Drain sums and clears buf. The caller owns the damage buffer store
// exclusively (resolve phase), so no lock is taken.
func Drain(buf *component.DamageBuffer) (total float64, ok bool) {
	if len(buf.Entries) == 0 {
		return 0, false
	}
	for _, v := range buf.Entries {
		total += v
	}
	buf.Entries = buf.Entries[:0]
	return total, true
}
