package ecs

// World owns the entity pool, the component registry and a queue of ids
// waiting to be released. Destroyed entities leave their stores at once but
// keep their slot until FlushDestroyQueue, so ids stay unique for the rest
// of the current pass.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Destroy removes id from every registered store and queues the slot for
// release.
func (w *World) Destroy(id EntityID) {
	w.registry.RemoveAll(id)
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns how many destroyed ids still hold their slot.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue releases every queued slot. Called by the session's
// cleanup system at the end of each tick.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Release(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
