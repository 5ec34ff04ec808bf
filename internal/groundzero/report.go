package groundzero

import "go.uber.org/zap"

// Report counts what the passes did to a map.
type Report struct {
	TreesBroken            int
	WoodStacks             int
	WoodUnits              int
	PlantsKilled           int
	CellsLeveled           int
	RockTerrain            string
	MineablesBroken        int
	FilthMade              int
	OreStacks              int
	OreUnits               int
	BuildingsDeconstructed int
	BuildingsKilled        int
	BuildingFailures       int
	CorpsesCleaned         int
	ThingsForbidden        int
	PawnsNeutralized       int
	CorpsesMade            int
	Aborted                bool
	AbortReason            string
}

// Count is one named counter of a Report.
type Count struct {
	Name  string
	Value int
}

// Counts lists every counter in pipeline order.
func (r Report) Counts() []Count {
	return []Count{
		{"trees_broken", r.TreesBroken},
		{"wood_stacks", r.WoodStacks},
		{"wood_units", r.WoodUnits},
		{"plants_killed", r.PlantsKilled},
		{"cells_leveled", r.CellsLeveled},
		{"mineables_broken", r.MineablesBroken},
		{"filth_made", r.FilthMade},
		{"ore_stacks", r.OreStacks},
		{"ore_units", r.OreUnits},
		{"buildings_deconstructed", r.BuildingsDeconstructed},
		{"buildings_killed", r.BuildingsKilled},
		{"building_failures", r.BuildingFailures},
		{"corpses_cleaned", r.CorpsesCleaned},
		{"things_forbidden", r.ThingsForbidden},
		{"pawns_neutralized", r.PawnsNeutralized},
		{"corpses_made", r.CorpsesMade},
	}
}

func (r Report) fields() []zap.Field {
	counts := r.Counts()
	fields := make([]zap.Field, 0, len(counts)+1)
	for _, c := range counts {
		if c.Value != 0 {
			fields = append(fields, zap.Int(c.Name, c.Value))
		}
	}
	if r.RockTerrain != "" {
		fields = append(fields, zap.String("rock_terrain", r.RockTerrain))
	}
	return fields
}
