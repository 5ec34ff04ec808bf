package event

import "testing"

func TestEventsDeliveredAfterSwap(t *testing.T) {
	b := NewBus()
	var got []ForbiddenChanged
	Subscribe(b, func(ev ForbiddenChanged) { got = append(got, ev) })

	Emit(b, ForbiddenChanged{ID: 3, Forbidden: true})
	if Queued[ForbiddenChanged](b) != 1 {
		t.Fatalf("queued = %d, want 1", Queued[ForbiddenChanged](b))
	}
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event delivered before swap")
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0].ID != 3 || !got[0].Forbidden {
		t.Fatalf("got %+v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("event redelivered: %+v", got)
	}
}

func TestEmitOnNilBusIsNoop(t *testing.T) {
	var b *Bus
	Emit(b, ThingSpawned{Def: "wood"})
}
