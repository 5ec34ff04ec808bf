package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during one tick are
// delivered on the next one, after SwapBuffers. Emit never calls handlers
// directly, so listeners cannot re-enter the code that raised the event.
type Bus struct {
	mu       sync.Mutex // guards handler registration only
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, ev T) {
	if b == nil {
		return
	}
	t := typeKey[T]()
	b.back[t] = append(b.back[t], ev)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeKey[T]()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Queued returns the number of events of type T waiting in the back buffer.
func Queued[T any](b *Bus) int {
	return len(b.back[typeKey[T]()])
}

// SwapBuffers moves the back buffer to the front and empties the new back.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers every front-buffer event to its handlers.
func (b *Bus) DispatchAll() {
	for t, events := range b.front {
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				// Subscribe and Emit key on the same type, so the call is safe.
				reflect.ValueOf(h).Call([]reflect.Value{reflect.ValueOf(ev)})
			}
		}
	}
}
