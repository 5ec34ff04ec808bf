package groundzero

import (
	"testing"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/core/event"
	"github.com/l1jgo/groundzero/internal/data"
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

type fixedRand struct {
	value float64
	pick  int
}

func (r fixedRand) Value() float64 { return r.value }

func (r fixedRand) RangeInclusive(min, max int) int {
	if r.pick < min {
		return min
	}
	if r.pick > max {
		return max
	}
	return r.pick
}

type rockTable map[int][]*data.RockType

func (r rockTable) NaturalRockTypesIn(tile int) []*data.RockType { return r[tile] }

type longEvents struct {
	names []string
	tasks []func()
}

func (q *longEvents) QueueLongEvent(name string, fn func()) {
	q.names = append(q.names, name)
	q.tasks = append(q.tasks, fn)
}

func (q *longEvents) runAll() {
	tasks := q.tasks
	q.tasks = nil
	for _, fn := range tasks {
		fn()
	}
}

type fixture struct {
	t    *testing.T
	defs *data.Defs
	bus  *event.Bus
	m    *world.Map
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	terrains := []*data.TerrainDef{
		{Name: "soil"},
		{Name: "marsh", Water: true},
		{Name: "gravel"},
		{Name: "rough_granite"},
	}
	things := []*data.ThingDef{
		{Name: "wood_log", Category: data.CategoryItem, StackLimit: 75, Forbiddable: true},
		{Name: "steel", Category: data.CategoryItem, StackLimit: 75, Forbiddable: true},
		{Name: "jade", Category: data.CategoryItem, StackLimit: 75, Forbiddable: true},
		{Name: "ai_core", Category: data.CategoryItem, StackLimit: 1, Forbiddable: true},
		{Name: "rubble", Category: data.CategoryFilth, StackLimit: 5},
		{Name: "corpse_human", Category: data.CategoryCorpse, MaxHitPoints: 100, Forbiddable: true},
		{Name: "human", Category: data.CategoryPawn, MaxHitPoints: 100, Pawn: &data.PawnProps{Corpse: "corpse_human"}},
		{Name: "oak", Category: data.CategoryPlant, MaxHitPoints: 100,
			Plant: &data.PlantProps{Tree: true, HarvestedThing: "wood_log", HarvestYield: 25}},
		{Name: "grass", Category: data.CategoryPlant, MaxHitPoints: 85, Plant: &data.PlantProps{}},
		{Name: "steel_ore", Category: data.CategoryBuilding, MaxHitPoints: 200,
			FilthLeaving: "rubble", LeaveTerrain: "gravel",
			Building: &data.BuildingProps{Mineable: true, MineableThing: "steel", MineableDropChance: 1, MineableYield: 10}},
		{Name: "jade_ore", Category: data.CategoryBuilding, MaxHitPoints: 200,
			Building: &data.BuildingProps{Mineable: true, MineableThing: "jade", MineableDropChance: 0.5, MineableYield: 10}},
		{Name: "ancient_core", Category: data.CategoryBuilding, MaxHitPoints: 200,
			Building: &data.BuildingProps{Mineable: true, MineableThing: "ai_core", MineableDropChance: 1, MineableYield: 10}},
		{Name: "wall", Category: data.CategoryBuilding, MaxHitPoints: 300, Forbiddable: true,
			Building: &data.BuildingProps{
				Deconstructible:   true,
				DeconstructReturn: 1,
				CostList:          []data.ThingCount{{Thing: "steel", Count: 20}},
			}},
	}
	rocks := []*data.RockType{{Name: "granite", NaturalTerrain: "rough_granite"}}
	defs, err := data.NewDefs(things, terrains, rocks, []string{"granite"}, nil)
	if err != nil {
		t.Fatalf("defs: %v", err)
	}
	bus := event.NewBus()
	m := world.NewMap(8, 6, 1, defs, bus, zap.NewNop())
	soil, _ := defs.Terrain("soil")
	marsh, _ := defs.Terrain("marsh")
	for y := int32(0); y < 6; y++ {
		for x := int32(0); x < 8; x++ {
			def := soil
			if x < 2 {
				def = marsh
			}
			if err := m.SetTerrain(world.Cell{X: x, Y: y}, def); err != nil {
				t.Fatalf("terrain: %v", err)
			}
		}
	}
	return &fixture{t: t, defs: defs, bus: bus, m: m}
}

func (f *fixture) def(name string) *data.ThingDef {
	f.t.Helper()
	def, err := f.defs.Thing(name)
	if err != nil {
		f.t.Fatalf("def %s: %v", name, err)
	}
	return def
}

func (f *fixture) place(name string, x, y int32) *world.Thing {
	f.t.Helper()
	th, err := f.m.PlaceThing(f.def(name), world.Cell{X: x, Y: y}, 0)
	if err != nil {
		f.t.Fatalf("place %s: %v", name, err)
	}
	return th
}

func (f *fixture) pawn(name string, x, y int32, faction world.Faction) *world.Thing {
	f.t.Helper()
	th, err := f.m.PlacePawn(f.def("human"), world.Cell{X: x, Y: y}, name, faction)
	if err != nil {
		f.t.Fatalf("place pawn: %v", err)
	}
	return th
}

func (f *fixture) units(name string) (stacks, units int) {
	for _, th := range f.m.Things(func(th *world.Thing) bool { return th.Def.Name == name }) {
		stacks++
		units += th.StackCount
	}
	return stacks, units
}

func (f *fixture) count(keep func(*world.Thing) bool) int {
	return len(f.m.Things(keep))
}

// scenario returns a config with every optional stage off.
func scenario(percent int) config.ScenarioConfig {
	return config.ScenarioConfig{ResourceReturn: percent, KeepBodies: true}
}

func newDevastator(cfg config.ScenarioConfig, rnd world.Rand) *Devastator {
	return New(cfg, Deps{
		WorldGen: rockTable{1: {
			{Name: "sandstone"},
			{Name: "granite", NaturalTerrainDef: &data.TerrainDef{Name: "rough_granite"}},
		}},
		Rand:          rnd,
		Log:           zap.NewNop(),
		PlayerFaction: "player",
	})
}
