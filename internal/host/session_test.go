package host

import (
	"context"
	"testing"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/core/event"
	"github.com/l1jgo/groundzero/internal/data"
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

func newTestMap(t *testing.T) (*world.Map, *event.Bus, *data.ThingDef) {
	t.Helper()
	things := []*data.ThingDef{{Name: "steel", Category: data.CategoryItem, StackLimit: 75}}
	defs, err := data.NewDefs(things, []*data.TerrainDef{{Name: "soil"}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("defs: %v", err)
	}
	bus := event.NewBus()
	steel, _ := defs.Thing("steel")
	return world.NewMap(4, 4, 0, defs, bus, zap.NewNop()), bus, steel
}

func TestLongEventWaitsForDrawer(t *testing.T) {
	m, bus, _ := newTestMap(t)
	s := NewSession(m, bus, config.SessionConfig{DrawerWarmupTicks: 3}, zap.NewNop())

	runs := 0
	s.QueueLongEvent("count", func() { runs++ })

	for i := 1; i <= 2; i++ {
		s.Tick(0)
		if runs != 0 {
			t.Fatalf("ran at tick %d before drawer ready", i)
		}
	}
	s.Tick(0)
	if runs != 1 || !s.Idle() {
		t.Fatalf("runs = %d idle = %v after warmup", runs, s.Idle())
	}
	s.Tick(0)
	if runs != 1 {
		t.Fatalf("task ran %d times", runs)
	}
}

func TestLongEventPanicIsContained(t *testing.T) {
	q := NewLongEventQueue(nil, zap.NewNop())
	var order []string
	q.QueueLongEvent("bad", func() { panic("boom") })
	q.QueueLongEvent("good", func() { order = append(order, "good") })
	q.QueueLongEvent("nested", func() {
		q.QueueLongEvent("later", func() { order = append(order, "later") })
	})

	q.Update(0)
	if len(order) != 1 || q.Done() != 3 || q.Len() != 1 {
		t.Fatalf("order = %v done = %d pending = %d", order, q.Done(), q.Len())
	}
	q.Update(0)
	if len(order) != 2 || order[1] != "later" {
		t.Fatalf("order = %v", order)
	}
}

func TestCleanupReleasesDestroyedThings(t *testing.T) {
	m, bus, steel := newTestMap(t)
	s := NewSession(m, bus, config.SessionConfig{}, zap.NewNop())
	if err := m.Spawn(steel, world.Cell{X: 1, Y: 1}, 10); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	th := m.Things(nil)[0]
	if err := m.Destroy(th, world.DestroyVanish); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if m.Entities().Pending() != 1 {
		t.Fatalf("pending = %d before tick", m.Entities().Pending())
	}
	s.Tick(0)
	if m.Entities().Pending() != 0 || m.Entities().Alive(th.ID) {
		t.Fatalf("id not released")
	}
}

func TestDrawerCountsMapChanges(t *testing.T) {
	m, bus, steel := newTestMap(t)
	s := NewSession(m, bus, config.SessionConfig{DrawerWarmupTicks: 0}, zap.NewNop())
	if err := m.Spawn(steel, world.Cell{X: 0, Y: 0}, 100); err != nil { // two stacks
		t.Fatalf("spawn: %v", err)
	}
	s.Tick(0) // dispatch, then draw
	if got := s.Drawer().Redrawn(); got != 2 {
		t.Fatalf("redrawn = %d, want 2", got)
	}
}

func TestRunUntilIdle(t *testing.T) {
	m, bus, _ := newTestMap(t)
	s := NewSession(m, bus, config.SessionConfig{DrawerWarmupTicks: 2, MaxTicks: 50}, zap.NewNop())
	ran := false
	s.QueueLongEvent("once", func() { ran = true })

	if err := s.RunUntilIdle(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ran || s.Ticks() != 2 {
		t.Fatalf("ran = %v ticks = %d", ran, s.Ticks())
	}
	if s.VisibleMap() != m {
		t.Fatalf("visible map changed")
	}
}

func TestRunUntilIdleStopsAtLimit(t *testing.T) {
	m, bus, _ := newTestMap(t)
	s := NewSession(m, bus, config.SessionConfig{DrawerWarmupTicks: 100, MaxTicks: 5}, zap.NewNop())
	s.QueueLongEvent("never", func() {})

	if err := s.RunUntilIdle(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Ticks() != 5 || s.Idle() {
		t.Fatalf("ticks = %d idle = %v", s.Ticks(), s.Idle())
	}
}

func TestRunUntilIdleCancelled(t *testing.T) {
	m, bus, _ := newTestMap(t)
	s := NewSession(m, bus, config.SessionConfig{DrawerWarmupTicks: 100}, zap.NewNop())
	s.QueueLongEvent("never", func() {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.RunUntilIdle(ctx); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
