package groundzero

import (
	"math"

	"github.com/l1jgo/groundzero/internal/world"
)

// woodBreakEfficiency is the yield multiplier for felled trees: breaking a
// tree salvages far less than harvesting it.
const woodBreakEfficiency = 0.1

// proportionalDamage sizes a hit so that what survives of maxHP matches the
// resource return percentage, scaled by an efficiency multiplier. The
// result is floored and never negative.
func proportionalDamage(maxHP, percent int, multiplier float64) int {
	dmg := float64(maxHP) * (1 - float64(percent)/100*multiplier)
	if dmg <= 0 {
		return 0
	}
	// the epsilon absorbs float error in products like 100*0.95
	return int(math.Floor(dmg + 1e-9))
}

func (d *Devastator) damageResourceHolder(m Map, t *world.Thing, multiplier float64) error {
	return m.TakeDamage(t, world.DamageInfo{
		Kind:   world.DamageBomb,
		Amount: proportionalDamage(t.MaxHitPoints(), d.cfg.ResourceReturn, multiplier),
	})
}
