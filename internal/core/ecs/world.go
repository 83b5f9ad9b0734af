package ecs

import "fmt"

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and the deferred command buffer replayed by CleanupSystem each tick.
type World struct {
	pool     *EntityPool
	registry *Registry
	commands *CommandBuffer
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		commands: NewCommandBuffer(),
	}
}

func (w *World) Pool() *EntityPool        { return w.pool }
func (w *World) Registry() *Registry      { return w.registry }
func (w *World) Commands() *CommandBuffer { return w.commands }
func (w *World) Alive(id EntityID) bool   { return w.pool.Alive(id) }
func (w *World) EntityCount() int         { return w.pool.Count() }

// CreateEntity allocates an id immediately. Only for scene setup before the
// first tick; systems go through Commands().Spawn.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// MarkForDestruction queues an entity for removal at the next playback.
func (w *World) MarkForDestruction(id EntityID) {
	w.commands.Destroy(id)
}

// DestroyNow removes id from every store immediately. Setup and tests only;
// systems queue destruction through Commands.
func (w *World) DestroyNow(id EntityID) error {
	return w.destroy(id)
}

func (w *World) destroy(id EntityID) error {
	if !w.pool.Alive(id) {
		return fmt.Errorf("destroy %s: %w", id, ErrStaleEntity)
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
	return nil
}

// Playback applies every queued command in enqueue order.
// Called by CleanupSystem at the end of each tick.
func (w *World) Playback() PlaybackStats {
	return w.commands.playback(w)
}
