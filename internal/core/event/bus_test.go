package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ n int }
type pong struct{ s string }

func TestBus_DeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.n) })

	Emit(b, ping{1})
	b.DispatchAll()
	assert.Empty(t, got, "events are not visible in the tick they are emitted")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1}, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1}, got, "an event is delivered once")
}

func TestBus_OrderBySubscriptionThenEmit(t *testing.T) {
	b := NewBus()
	var trace []string
	Subscribe(b, func(p pong) { trace = append(trace, "pong:"+p.s) })
	Subscribe(b, func(p ping) { trace = append(trace, "ping") })

	Emit(b, ping{1})
	Emit(b, pong{"a"})
	Emit(b, pong{"b"})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"pong:a", "pong:b", "ping"}, trace)
}

func TestBus_ConcurrentEmit(t *testing.T) {
	b := NewBus()
	total := 0
	Subscribe(b, func(p ping) { total += p.n })

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Emit(b, ping{1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 100, total)
	assert.Equal(t, 0, b.Pending())
}
