package groundzero

import (
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

// deconstructMapBuildings isolates each building: one that fails to
// deconstruct is logged and skipped. Damage errors still abort the pass.
func (d *Devastator) deconstructMapBuildings(m Map) error {
	buildings := m.Things(func(t *world.Thing) bool { return t.Def.IsDeconstructible() })
	for _, t := range buildings {
		if err := d.damageResourceHolder(m, t, 1); err != nil {
			return err
		}
		if t.Destroyed() {
			d.report.BuildingsKilled++
			continue
		}
		err := safely(func() error { return m.Destroy(t, world.DestroyDeconstruct) })
		if err != nil {
			d.report.BuildingFailures++
			d.log.Warn("minor failure deconstructing building", zap.Stringer("thing", t), zap.Error(err))
			continue
		}
		d.report.BuildingsDeconstructed++
	}
	return nil
}
