package host

import (
	"time"

	coresys "github.com/l1jgo/groundzero/internal/core/system"
	"go.uber.org/zap"
)

type longEvent struct {
	name string
	fn   func()
}

// LongEventQueue runs queued tasks once the ready gate opens. Each task
// runs exactly once; a panicking task is logged and dropped. Tasks queued
// by a running task wait for the next tick.
// Phase 2 (PostUpdate).
type LongEventQueue struct {
	ready   func() bool
	pending []longEvent
	done    int
	log     *zap.Logger
}

// NewLongEventQueue returns a queue gated by ready. A nil gate is always
// open.
func NewLongEventQueue(ready func() bool, log *zap.Logger) *LongEventQueue {
	if ready == nil {
		ready = func() bool { return true }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LongEventQueue{ready: ready, log: log}
}

// QueueLongEvent adds a task. It does not run before the next Update.
func (q *LongEventQueue) QueueLongEvent(name string, fn func()) {
	q.pending = append(q.pending, longEvent{name: name, fn: fn})
}

// Len returns the number of tasks still waiting.
func (q *LongEventQueue) Len() int { return len(q.pending) }

// Done returns the number of tasks that have run, failed ones included.
func (q *LongEventQueue) Done() int { return q.done }

func (q *LongEventQueue) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (q *LongEventQueue) Update(_ time.Duration) {
	if len(q.pending) == 0 || !q.ready() {
		return
	}
	batch := q.pending
	q.pending = nil
	for _, ev := range batch {
		q.run(ev)
	}
}

func (q *LongEventQueue) run(ev longEvent) {
	defer func() {
		q.done++
		if r := recover(); r != nil {
			q.log.Error("long event panic", zap.String("event", ev.name), zap.Any("panic", r))
		}
	}()
	start := time.Now()
	ev.fn()
	q.log.Debug("long event done", zap.String("event", ev.name), zap.Duration("took", time.Since(start)))
}
