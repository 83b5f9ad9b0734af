package ecs

import "sync"

// CommandKind tags a deferred structural edit.
type CommandKind uint8

const (
	CmdSpawn CommandKind = iota
	CmdDestroy
	CmdAdd
	CmdRemove
	CmdEnable
	CmdDisable
)

func (k CommandKind) String() string {
	switch k {
	case CmdSpawn:
		return "spawn"
	case CmdDestroy:
		return "destroy"
	case CmdAdd:
		return "add"
	case CmdRemove:
		return "remove"
	case CmdEnable:
		return "enable"
	case CmdDisable:
		return "disable"
	}
	return "unknown"
}

// command is one typed edit record. For CmdSpawn, entity is zero until
// playback allocates it.
type command struct {
	kind   CommandKind
	entity EntityID
	apply  func(w *World, id EntityID)
	done   func(id EntityID)
}

// CommandBuffer records structural edits from systems and replays them in
// enqueue order at the tick's sync point. Recording is safe from concurrent
// systems; playback is not and runs only from the cleanup phase.
type CommandBuffer struct {
	mu   sync.Mutex
	cmds []command
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{cmds: make([]command, 0, 128)}
}

func (b *CommandBuffer) push(c command) {
	b.mu.Lock()
	b.cmds = append(b.cmds, c)
	b.mu.Unlock()
}

// Spawn queues creation of an entity. build receives the new id and must
// attach every component so the entity is never visible half-built. done,
// if non-nil, is called after build with the same id.
func (b *CommandBuffer) Spawn(build func(w *World, id EntityID), done func(id EntityID)) {
	b.push(command{kind: CmdSpawn, apply: build, done: done})
}

// Destroy queues removal of id from every registered store.
func (b *CommandBuffer) Destroy(id EntityID) {
	b.push(command{kind: CmdDestroy, entity: id})
}

// Len returns the number of pending commands.
func (b *CommandBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cmds)
}

// Add queues attaching c to id in store s.
func Add[T any](b *CommandBuffer, s *Store[T], id EntityID, c T) {
	b.push(command{kind: CmdAdd, entity: id, apply: func(_ *World, id EntityID) {
		s.Set(id, c)
	}})
}

// Remove queues detaching the component in s from id.
func Remove[T any](b *CommandBuffer, s *Store[T], id EntityID) {
	b.push(command{kind: CmdRemove, entity: id, apply: func(_ *World, id EntityID) {
		s.Remove(id)
	}})
}

// SetEnabled queues a toggle of the enabled column for id in s. Systems that
// already hold write access to s may toggle in place instead; this form is for
// changes that alter another system's iteration membership mid-tick.
func SetEnabled[T any](b *CommandBuffer, s *Store[T], id EntityID, on bool) {
	kind := CmdDisable
	if on {
		kind = CmdEnable
	}
	b.push(command{kind: kind, entity: id, apply: func(_ *World, id EntityID) {
		s.SetEnabled(id, on)
	}})
}

// PlaybackStats summarises one playback pass.
type PlaybackStats struct {
	Spawned   int
	Destroyed int
	Edited    int
	Skipped   int
}

// playback applies and clears all queued commands. Commands that name an
// entity that is no longer alive (destroyed earlier in the same pass, or a
// stale id) are skipped.
func (b *CommandBuffer) playback(w *World) PlaybackStats {
	b.mu.Lock()
	cmds := b.cmds
	b.cmds = make([]command, 0, cap(cmds))
	b.mu.Unlock()

	var st PlaybackStats
	for _, c := range cmds {
		switch c.kind {
		case CmdSpawn:
			id := w.pool.Create()
			if c.apply != nil {
				c.apply(w, id)
			}
			if c.done != nil {
				c.done(id)
			}
			st.Spawned++
		case CmdDestroy:
			if err := w.destroy(c.entity); err != nil {
				st.Skipped++
				continue
			}
			st.Destroyed++
		default:
			if !w.pool.Alive(c.entity) {
				st.Skipped++
				continue
			}
			c.apply(w, c.entity)
			st.Edited++
		}
	}
	return st
}
