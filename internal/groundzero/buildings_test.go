package groundzero

import (
	"errors"
	"testing"

	"github.com/l1jgo/groundzero/internal/core/ecs"
	"github.com/l1jgo/groundzero/internal/world"
)

// brokenMap fails or panics when deconstructing chosen things.
type brokenMap struct {
	*world.Map
	fail  map[ecs.EntityID]bool
	panic map[ecs.EntityID]bool
}

func (b brokenMap) Destroy(t *world.Thing, mode world.DestroyMode) error {
	if mode == world.DestroyDeconstruct {
		if b.fail[t.ID] {
			return errors.New("frame is welded to the bedrock")
		}
		if b.panic[t.ID] {
			panic("deconstruct job missing")
		}
	}
	return b.Map.Destroy(t, mode)
}

func TestBuildingFailureDoesNotStopOthers(t *testing.T) {
	f := newFixture(t)
	a := f.place("wall", 2, 0)
	b := f.place("wall", 3, 0)
	c := f.place("wall", 4, 0)
	m := brokenMap{Map: f.m, fail: map[ecs.EntityID]bool{b.ID: true}}
	d := newDevastator(scenario(100), fixedRand{})

	d.PostMapGenerate(m)

	if !a.Destroyed() || !c.Destroyed() {
		t.Fatalf("healthy buildings not deconstructed: a=%v c=%v", a.Destroyed(), c.Destroyed())
	}
	if b.Destroyed() {
		t.Fatalf("failing building should be left in place")
	}
	if _, steel := f.units("steel"); steel != 40 {
		t.Fatalf("steel refunded = %d, want 40", steel)
	}
	r := d.Report()
	if r.BuildingsDeconstructed != 2 || r.BuildingFailures != 1 || r.Aborted {
		t.Fatalf("report = %+v", r)
	}
}

func TestBuildingPanicIsIsolated(t *testing.T) {
	f := newFixture(t)
	a := f.place("wall", 2, 0)
	b := f.place("wall", 3, 0)
	c := f.place("wall", 4, 0)
	m := brokenMap{Map: f.m, panic: map[ecs.EntityID]bool{a.ID: true}}
	d := newDevastator(scenario(100), fixedRand{})

	d.PostMapGenerate(m)

	if !b.Destroyed() || !c.Destroyed() {
		t.Fatalf("buildings after the panicking one were skipped")
	}
	if d.Report().BuildingFailures != 1 || d.Report().Aborted {
		t.Fatalf("report = %+v", d.Report())
	}
}

func TestBuildingRefundFollowsResourceReturn(t *testing.T) {
	f := newFixture(t)
	f.place("wall", 2, 0)
	d := newDevastator(scenario(25), fixedRand{})

	d.PostMapGenerate(f.m)

	// 225 damage leaves 75/300 hp: 20 * 0.25
	if _, steel := f.units("steel"); steel != 5 {
		t.Fatalf("steel refunded = %d, want 5", steel)
	}
}

func TestBuildingKilledByDamageIsNotDeconstructed(t *testing.T) {
	f := newFixture(t)
	wall := f.place("wall", 2, 0)
	d := newDevastator(scenario(0), fixedRand{})

	d.PostMapGenerate(f.m)

	if !wall.Destroyed() {
		t.Fatalf("wall survived")
	}
	if stacks, _ := f.units("steel"); stacks != 0 {
		t.Fatalf("killed wall refunded its cost")
	}
	if r := d.Report(); r.BuildingsKilled != 1 || r.BuildingsDeconstructed != 0 {
		t.Fatalf("report = %+v", r)
	}
}
