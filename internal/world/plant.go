package world

import "math"

// HarvestYield returns how many units harvesting t now would give. Yield
// grows linearly from the def's minimum harvest growth to full growth and
// is scaled from 50% (1 hit point left) to 100% (undamaged).
func (m *Map) HarvestYield(t *Thing) int {
	p := t.Def.Plant
	if t.destroyed || p == nil || p.HarvestedThingDef == nil || p.HarvestYield <= 0 {
		return 0
	}
	if t.Growth < p.HarvestMinGrowth {
		return 0
	}
	growth := 1.0
	if p.HarvestMinGrowth < 1 {
		growth = (t.Growth - p.HarvestMinGrowth) / (1 - p.HarvestMinGrowth)
	}
	health := 1.0
	if maxHP := t.Def.MaxHitPoints; maxHP > 0 {
		health = 0.5 + 0.5*float64(t.HitPoints)/float64(maxHP)
	}
	return int(math.Round(p.HarvestYield * growth * health))
}

// HarvestPlant collects the current yield and strips the plant's growth.
// The plant itself stays on the map.
func (m *Map) HarvestPlant(t *Thing) int {
	n := m.HarvestYield(t)
	if t.Def.Plant != nil {
		t.Growth = 0
	}
	return n
}
