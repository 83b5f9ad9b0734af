package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller store's dense column and probes the other.
// Enabled state is ignored; callers filter on their own flags.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i := range sa.rows {
			id := sa.ids[i]
			if j, ok := sb.index[id]; ok {
				fn(id, &sa.rows[i], &sb.rows[j])
			}
		}
		return
	}
	for j := range sb.rows {
		id := sb.ids[j]
		if i, ok := sa.index[id]; ok {
			fn(id, &sa.rows[i], &sb.rows[j])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C, driven by A.
// Put the most selective store first.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i := range sa.rows {
		id := sa.ids[i]
		j, ok := sb.index[id]
		if !ok {
			continue
		}
		k, ok := sc.index[id]
		if !ok {
			continue
		}
		fn(id, &sa.rows[i], &sb.rows[j], &sc.rows[k])
	}
}

// Without reports a filter that rejects entities whose flag in s is enabled.
// Typical use: skip entities pending destruction.
func Without[T any](s *Store[T]) func(EntityID) bool {
	return func(id EntityID) bool { return !s.Enabled(id) }
}
