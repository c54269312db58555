package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by the cleanup system at
// the end of each step.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	onDespawn    []func(EntityID)
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 32),
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) Spawn() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.pool.Len() }

// OnDespawn registers a hook run before an entity's components are removed.
// Hooks implement ownership cascades (a parent despawning its children).
func (w *World) OnDespawn(fn func(EntityID)) {
	w.onDespawn = append(w.onDespawn, fn)
}

// Despawn destroys id immediately. The ID is invalid as soon as this returns.
// Despawning a stale ID is a no-op.
func (w *World) Despawn(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	for _, fn := range w.onDespawn {
		fn(id)
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-step cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue despawns all queued entities.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.pool.Alive(id) {
			w.Despawn(id)
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
