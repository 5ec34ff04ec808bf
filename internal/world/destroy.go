package world

import (
	"errors"
	"fmt"

	"github.com/l1jgo/groundzero/internal/data"
)

// DestroyMode selects what a destroyed thing leaves behind.
type DestroyMode int

const (
	// DestroyVanish removes the thing with no leavings and no corpse.
	DestroyVanish DestroyMode = iota
	// DestroyKill leaves the def's killed leavings; pawns leave a corpse.
	DestroyKill
	// DestroyDeconstruct refunds part of the building's cost list, scaled by
	// remaining hit points.
	DestroyDeconstruct
)

func (m DestroyMode) String() string {
	switch m {
	case DestroyVanish:
		return "vanish"
	case DestroyKill:
		return "kill"
	case DestroyDeconstruct:
		return "deconstruct"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Destroy removes t from the map and spawns whatever the mode leaves. The
// thing is gone even when spawning a leaving fails; the joined spawn
// errors are returned.
func (m *Map) Destroy(t *Thing, mode DestroyMode) error {
	if t.destroyed {
		return fmt.Errorf("destroy %s: %w", t, ErrDestroyed)
	}
	var leavings []data.ThingCount
	switch mode {
	case DestroyDeconstruct:
		if !t.Def.IsDeconstructible() {
			return fmt.Errorf("deconstruct %s: %w", t, ErrNotDeconstructible)
		}
		leavings = deconstructLeavings(t)
	case DestroyKill:
		if b := t.Def.Building; b != nil {
			leavings = b.KilledLeavings
		}
	}

	m.remove(t, mode)

	var errs []error
	for _, l := range leavings {
		if l.Count <= 0 {
			continue
		}
		def, err := m.lookupLeaving(t, l.Thing)
		if err == nil {
			err = m.Spawn(def, t.Pos, l.Count)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s leaving %s: %w", mode, l.Thing, err))
		}
	}
	if mode == DestroyKill && t.IsLivingPawn() {
		if err := m.makeCorpse(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// deconstructLeavings scales each cost entry by the def's deconstruct
// return and by the remaining hit point fraction, rounding down.
func deconstructLeavings(t *Thing) []data.ThingCount {
	b := t.Def.Building
	ret := b.DeconstructReturn
	if ret <= 0 {
		ret = 1 // unset: full cost list, still scaled by hit points
	}
	hp := 1.0
	if maxHP := t.Def.MaxHitPoints; maxHP > 0 {
		hp = float64(t.HitPoints) / float64(maxHP)
	}
	out := make([]data.ThingCount, 0, len(b.CostList))
	for _, c := range b.CostList {
		out = append(out, data.ThingCount{Thing: c.Thing, Count: int(float64(c.Count) * ret * hp)})
	}
	return out
}

func (m *Map) lookupLeaving(t *Thing, name string) (*data.ThingDef, error) {
	if m.defs == nil {
		return nil, fmt.Errorf("%s: no def table", t)
	}
	return m.defs.Thing(name)
}

func (m *Map) makeCorpse(t *Thing) error {
	t.Pawn.Dead = true
	corpse := t.Def.Pawn
	if corpse == nil || corpse.CorpseDef == nil {
		return nil // no corpse def: the body is simply gone
	}
	def := corpse.CorpseDef
	m.add(&Thing{Def: def, Pos: t.Pos, HitPoints: def.MaxHitPoints, StackCount: 1, Pawn: t.Pawn})
	return nil
}
