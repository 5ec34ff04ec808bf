package groundzero

import (
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

// neutralizeDamage is large enough to kill any occupant in one hit.
const neutralizeDamage = 9999

// cleanUpBodies also removes corpses that arrived pre-placed, such as dead
// occupants of drop pods.
func (d *Devastator) cleanUpBodies(m Map) error {
	corpses := m.Things(func(t *world.Thing) bool { return t.Def.IsCorpse() })
	for _, t := range corpses {
		if err := m.Destroy(t, world.DestroyVanish); err != nil {
			return err
		}
		d.report.CorpsesCleaned++
	}
	return nil
}

func (d *Devastator) forbidEverything(m Map) error {
	for _, t := range m.Things(nil) {
		was := t.Forbidden
		m.SetForbidden(t, true, false)
		if !was && t.Forbidden {
			d.report.ThingsForbidden++
		}
	}
	return nil
}

// killNonColonistPawns walks every thing rather than a pawn list so that
// occupants packed inside other structures are found too.
func (d *Devastator) killNonColonistPawns(m Map) error {
	dinfo := world.DamageInfo{
		Kind:   world.DamageBomb,
		Amount: neutralizeDamage,
		Height: world.HeightMiddle,
		Depth:  world.DepthOutside,
	}
	for _, t := range m.Things(nil) {
		if t.Destroyed() || !t.IsLivingPawn() || t.Pawn.Faction == d.deps.PlayerFaction {
			continue
		}
		if d.cfg.KeepBodies {
			if err := m.TakeDamage(t, dinfo); err != nil {
				return err
			}
			if !t.Destroyed() {
				d.log.Warn("occupant survived neutralizing hit", zap.Stringer("thing", t), zap.Int("hit_points", t.HitPoints))
				continue
			}
			if hasCorpse(m, t) {
				d.report.CorpsesMade++
			} else {
				d.log.Warn("occupant left no corpse", zap.Stringer("thing", t))
			}
		} else if err := m.Destroy(t, world.DestroyVanish); err != nil {
			return err
		}
		d.report.PawnsNeutralized++
	}
	return nil
}

// hasCorpse reports whether a corpse carrying t's pawn lies on t's cell.
func hasCorpse(m Map, t *world.Thing) bool {
	for _, c := range m.ThingsAt(t.Pos) {
		if c.Def.IsCorpse() && c.Pawn == t.Pawn {
			return true
		}
	}
	return false
}
