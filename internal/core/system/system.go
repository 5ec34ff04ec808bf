package system

import "time"

// Phase orders systems within a session tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: deliver last tick's events
	PhaseUpdate                  // 1: host state (map drawer warmup)
	PhasePostUpdate              // 2: long events queued behind readiness barriers
	PhaseCleanup                 // 3: release destroyed entity ids
)

// System is the interface every session system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
