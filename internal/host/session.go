// Package host drives a generated map through a minimal interactive
// session: a phase-ordered tick loop with event dispatch, a map drawer
// warmup barrier, a long-event queue and deferred entity cleanup.
package host

import (
	"context"
	"time"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/core/event"
	coresys "github.com/l1jgo/groundzero/internal/core/system"
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

// Session owns the tick loop of one visible map.
type Session struct {
	cfg     config.SessionConfig
	visible *world.Map
	runner  *coresys.Runner
	drawer  *MapDrawer
	events  *LongEventQueue
	ticks   int
	log     *zap.Logger
}

// NewSession registers the session systems for m. bus must be the bus m
// emits on.
func NewSession(m *world.Map, bus *event.Bus, cfg config.SessionConfig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("session")
	s := &Session{
		cfg:     cfg,
		visible: m,
		runner:  coresys.NewRunner(),
		drawer:  NewMapDrawer(bus, cfg.DrawerWarmupTicks),
		log:     log,
	}
	s.events = NewLongEventQueue(s.drawer.Ready, log)

	s.runner.Register(NewEventDispatchSystem(bus))
	s.runner.Register(s.drawer)
	s.runner.Register(s.events)
	s.runner.Register(NewCleanupSystem(m.Entities()))
	return s
}

// VisibleMap returns the map currently shown, nil when there is none.
func (s *Session) VisibleMap() *world.Map { return s.visible }

// QueueLongEvent defers fn until the map drawer is ready.
func (s *Session) QueueLongEvent(name string, fn func()) {
	s.log.Debug("long event queued", zap.String("event", name))
	s.events.QueueLongEvent(name, fn)
}

// Ticks returns how many ticks have run.
func (s *Session) Ticks() int { return s.ticks }

// Drawer exposes the map drawer for status output.
func (s *Session) Drawer() *MapDrawer { return s.drawer }

// Idle reports whether no long event is waiting.
func (s *Session) Idle() bool { return s.events.Len() == 0 }

// Tick runs every system once.
func (s *Session) Tick(dt time.Duration) {
	s.runner.Tick(dt)
	s.ticks++
}

// RunUntilIdle ticks on the configured tick rate until the long-event
// queue drains, MaxTicks is reached or ctx is done. A zero tick rate ticks
// without waiting. It always runs at least one tick so the destroy queue
// is flushed.
func (s *Session) RunUntilIdle(ctx context.Context) error {
	var tick <-chan time.Time
	if s.cfg.TickRate > 0 {
		ticker := time.NewTicker(s.cfg.TickRate)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		s.Tick(s.cfg.TickRate)

		if s.Idle() {
			return nil
		}
		if s.cfg.MaxTicks > 0 && s.ticks >= s.cfg.MaxTicks {
			s.log.Warn("session stopped at tick limit",
				zap.Int("ticks", s.ticks),
				zap.Int("pending", s.events.Len()),
			)
			return nil
		}
	}
}
