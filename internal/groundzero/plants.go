package groundzero

import (
	"fmt"

	"github.com/l1jgo/groundzero/internal/world"
)

func (d *Devastator) breakAllTrees(m Map) error {
	trees := m.Things(func(t *world.Thing) bool { return t.Def.IsTree() })
	for _, t := range trees {
		if err := d.damageResourceHolder(m, t, woodBreakEfficiency); err != nil {
			return err
		}
		d.report.TreesBroken++
		if t.Destroyed() {
			continue
		}
		if d.cfg.TreesDropWood && m.HarvestYield(t) > 0 {
			n := m.HarvestPlant(t)
			if n > 0 {
				if err := m.Spawn(t.Def.Plant.HarvestedThingDef, t.Pos, n); err != nil {
					return fmt.Errorf("drop wood for %s: %w", t, err)
				}
				d.report.WoodStacks++
				d.report.WoodUnits += n
			}
		}
		if err := m.Destroy(t, world.DestroyKill); err != nil {
			return err
		}
	}
	return nil
}

// killAllPlants runs after breakAllTrees, so felled trees are already gone
// and never take a second, full-multiplier hit.
func (d *Devastator) killAllPlants(m Map) error {
	plants := m.Things(func(t *world.Thing) bool { return t.Def.IsPlant() })
	for _, t := range plants {
		if err := d.damageResourceHolder(m, t, 1); err != nil {
			return err
		}
		if !t.Destroyed() {
			if err := m.Destroy(t, world.DestroyKill); err != nil {
				return err
			}
		}
		d.report.PlantsKilled++
	}
	return nil
}
