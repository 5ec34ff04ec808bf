package groundzero

import (
	"fmt"
	"math"

	"github.com/l1jgo/groundzero/internal/world"
)

func (d *Devastator) breakMineableThings(m Map) error {
	mineables := m.Things(func(t *world.Thing) bool { return t.Def.IsMineable() })
	for _, t := range mineables {
		if err := d.damageResourceHolder(m, t, 1); err != nil {
			return err
		}
		if filth := t.Def.FilthLeavingDef; filth != nil {
			n := d.deps.Rand.RangeInclusive(1, 3)
			if err := m.MakeFilth(t.Pos, filth, n); err != nil {
				return fmt.Errorf("filth for %s: %w", t, err)
			}
			d.report.FilthMade += n
		}
		if terrain := t.Def.LeaveTerrainDef; terrain != nil {
			if err := m.SetTerrain(t.Pos, terrain); err != nil {
				return fmt.Errorf("leave terrain for %s: %w", t, err)
			}
		}
		if !t.Destroyed() {
			if err := d.tryDropResourceFromMineable(m, t); err != nil {
				return err
			}
			if err := m.Destroy(t, world.DestroyVanish); err != nil {
				return err
			}
		}
		d.report.MineablesBroken++
	}
	return nil
}

// tryDropResourceFromMineable drops ore in proportion to the hit points the
// deposit has left. It must run after the damage and before the deposit is
// destroyed; moving it changes the yield.
func (d *Devastator) tryDropResourceFromMineable(m Map, t *world.Thing) error {
	b := t.Def.Building
	if b == nil || b.MineableThingDef == nil {
		return nil
	}
	if d.deps.Rand.Value() >= b.MineableDropChance {
		return nil
	}
	n := mineableDropCount(t)
	if n <= 0 {
		return nil
	}
	if err := m.Spawn(b.MineableThingDef, t.Pos, n); err != nil {
		return fmt.Errorf("drop %s from %s: %w", b.MineableThingDef.Name, t, err)
	}
	d.report.OreStacks++
	d.report.OreUnits += n
	return nil
}

// mineableDropCount is 1 for single-unit items, else the deposit's yield
// scaled by its remaining hit points and rounded up.
func mineableDropCount(t *world.Thing) int {
	b := t.Def.Building
	if b.MineableThingDef.StackLimit == 1 {
		return 1
	}
	maxHP := t.MaxHitPoints()
	if maxHP <= 0 {
		return b.MineableYield
	}
	return int(math.Ceil(float64(b.MineableYield) * float64(t.HitPoints) / float64(maxHP)))
}
