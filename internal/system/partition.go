package system

import (
	"github.com/l1jgo/survivors/internal/core/ecs"
	"golang.org/x/sync/errgroup"
)

// parallelGroupMin is the group count under which event groups are handled
// inline; spinning up goroutines for a handful of events costs more than it saves.
const parallelGroupMin = 32

// group is every event that touches one owning entity, in stream order.
type group[T any] struct {
	owner ecs.EntityID
	items []T
}

// partition buckets events by owner. Owners appear in first-seen order and
// each bucket keeps the stream order. Events for which owner reports false
// are dropped.
func partition[T any](events []T, owner func(T) (ecs.EntityID, bool)) []group[T] {
	if len(events) == 0 {
		return nil
	}
	index := make(map[ecs.EntityID]int, len(events))
	groups := make([]group[T], 0, len(events))
	for _, ev := range events {
		id, ok := owner(ev)
		if !ok {
			continue
		}
		i, seen := index[id]
		if !seen {
			i = len(groups)
			index[id] = i
			groups = append(groups, group[T]{owner: id})
		}
		groups[i].items = append(groups[i].items, ev)
	}
	return groups
}

// eachGroup handles groups concurrently, each one sequentially.
func eachGroup[T any](groups []group[T], workers int, fn func(group[T])) {
	if len(groups) < parallelGroupMin || workers == 1 {
		for _, g := range groups {
			fn(g)
		}
		return
	}
	var eg errgroup.Group
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for _, g := range groups {
		eg.Go(func() error {
			fn(g)
			return nil
		})
	}
	_ = eg.Wait()
}
