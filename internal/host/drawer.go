package host

import (
	"time"

	"github.com/l1jgo/groundzero/internal/core/event"
	coresys "github.com/l1jgo/groundzero/internal/core/system"
)

// MapDrawer stands in for the renderer of the visible map. It needs a few
// ticks to build its sections before it reports ready, and afterwards
// counts the redraws that map change events ask for.
// Phase 1 (Update).
type MapDrawer struct {
	warmup  int
	ticks   int
	dirty   int
	redrawn int
}

// NewMapDrawer returns a drawer that becomes ready after warmupTicks
// updates and subscribes it to the map change events on bus.
func NewMapDrawer(bus *event.Bus, warmupTicks int) *MapDrawer {
	if warmupTicks < 0 {
		warmupTicks = 0
	}
	d := &MapDrawer{warmup: warmupTicks}
	event.Subscribe(bus, func(event.TerrainChanged) { d.dirty++ })
	event.Subscribe(bus, func(event.ThingSpawned) { d.dirty++ })
	event.Subscribe(bus, func(event.ThingDestroyed) { d.dirty++ })
	return d
}

func (d *MapDrawer) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (d *MapDrawer) Update(_ time.Duration) {
	if d.ticks < d.warmup {
		d.ticks++
		return
	}
	d.redrawn += d.dirty
	d.dirty = 0
}

// Ready reports whether the drawer has finished its warmup.
func (d *MapDrawer) Ready() bool { return d.ticks >= d.warmup }

// Redrawn returns how many map changes have been drawn so far.
func (d *MapDrawer) Redrawn() int { return d.redrawn }
