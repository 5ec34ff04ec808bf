package ecs

import "testing"

func TestPoolReleaseInvalidatesStaleIDs(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatalf("first id must not be zero")
	}
	p.Release(a)
	if p.Alive(a) {
		t.Fatalf("released id %d still alive", a)
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("slot not recycled: a=%d b=%d", a.Index(), b.Index())
	}
	if b.Generation() == a.Generation() {
		t.Fatalf("generation not bumped on reuse")
	}
	p.Release(a) // stale, ignored
	if !p.Alive(b) {
		t.Fatalf("stale release killed live id")
	}
	if p.Live() != 1 {
		t.Fatalf("live = %d, want 1", p.Live())
	}
}

func TestWorldDestroyDefersRelease(t *testing.T) {
	w := NewWorld()
	store := NewStore[int]()
	w.Registry().Register(store)

	id := w.CreateEntity()
	v := 7
	store.Set(id, &v)

	w.Destroy(id)
	if store.Has(id) {
		t.Fatalf("component should be removed immediately")
	}
	if !w.Alive(id) {
		t.Fatalf("slot should stay reserved until flush")
	}
	if w.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", w.Pending())
	}
	w.FlushDestroyQueue()
	if w.Alive(id) {
		t.Fatalf("id alive after flush")
	}
}

func TestSnapshotIsOrderedAndDetached(t *testing.T) {
	w := NewWorld()
	store := NewStore[int]()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		v := i
		store.Set(id, &v)
		ids = append(ids, id)
	}

	even := store.Snapshot(func(v *int) bool { return *v%2 == 0 })
	if len(even) != 3 {
		t.Fatalf("len = %d, want 3", len(even))
	}
	for i, want := range []int{0, 2, 4} {
		if *even[i] != want {
			t.Fatalf("even[%d] = %d, want %d", i, *even[i], want)
		}
	}

	all := store.Snapshot(nil)
	for _, id := range ids {
		store.Remove(id)
	}
	if len(all) != 5 || store.Len() != 0 {
		t.Fatalf("snapshot should survive store mutation: len=%d store=%d", len(all), store.Len())
	}
}
