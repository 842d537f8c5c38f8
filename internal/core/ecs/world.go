package ecs

// World is the generic entity/component container backing the item
// instance registry (internal/world.World.ItemsRegistry). It owns the entity pool,
// the component registry, and a deferred destruction queue flushed by the
// tick scheduler's cleanup phase — mirroring the teacher's ECS World, scoped
// here to item instances rather than every game object, since Characters,
// Mobs, and Rooms are addressed through the World's own id-keyed maps
// instead (spec.md section 3: "the World owns... the active character
// index" directly, not via components).
type World struct {
	pool         *Pool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *Pool         { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID { return w.pool.Create() }
func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their
// components. Called once per tick by the cleanup system.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
