package data

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrUnknownDef is returned when a def name does not resolve.
var ErrUnknownDef = errors.New("unknown def")

// Category classifies a thing def.
type Category string

const (
	CategoryItem     Category = "item"
	CategoryPlant    Category = "plant"
	CategoryBuilding Category = "building"
	CategoryPawn     Category = "pawn"
	CategoryCorpse   Category = "corpse"
	CategoryFilth    Category = "filth"
)

// PlantProps is present on every plant def.
type PlantProps struct {
	Tree             bool    `yaml:"tree"`
	HarvestedThing   string  `yaml:"harvested_thing"`
	HarvestYield     float64 `yaml:"harvest_yield"`
	HarvestMinGrowth float64 `yaml:"harvest_min_growth"`

	HarvestedThingDef *ThingDef `yaml:"-"`
}

// ThingCount is one entry of a cost or leavings list.
type ThingCount struct {
	Thing string `yaml:"thing"`
	Count int    `yaml:"count"`
}

// BuildingProps is present on every building def, mineable rock included.
type BuildingProps struct {
	Deconstructible    bool         `yaml:"deconstructible"`
	Mineable           bool         `yaml:"mineable"`
	MineableThing      string       `yaml:"mineable_thing"`
	MineableDropChance float64      `yaml:"mineable_drop_chance"` // 0.0-1.0
	MineableYield      int          `yaml:"mineable_yield"`
	CostList           []ThingCount `yaml:"cost_list"`
	DeconstructReturn  float64      `yaml:"deconstruct_return"` // share of cost refunded at full hit points
	KilledLeavings     []ThingCount `yaml:"killed_leavings"`

	MineableThingDef *ThingDef `yaml:"-"`
}

// PawnProps is present on every living occupant def.
type PawnProps struct {
	Corpse string `yaml:"corpse"`

	CorpseDef *ThingDef `yaml:"-"`
}

// ThingDef is the static template of a placeable object.
type ThingDef struct {
	Name         string         `yaml:"name"`
	Label        string         `yaml:"label"`
	Category     Category       `yaml:"category"`
	MaxHitPoints int            `yaml:"max_hit_points"`
	StackLimit   int            `yaml:"stack_limit"`
	Forbiddable  bool           `yaml:"forbiddable"`
	FilthLeaving string         `yaml:"filth_leaving"`
	LeaveTerrain string         `yaml:"leave_terrain"`
	Plant        *PlantProps    `yaml:"plant"`
	Building     *BuildingProps `yaml:"building"`
	Pawn         *PawnProps     `yaml:"pawn"`

	FilthLeavingDef *ThingDef   `yaml:"-"`
	LeaveTerrainDef *TerrainDef `yaml:"-"`
}

var labelCaser = cases.Title(language.English)

// LabelCap returns the label in title case, falling back to the def name.
func (d *ThingDef) LabelCap() string {
	if d.Label == "" {
		return d.Name
	}
	return labelCaser.String(d.Label)
}

func (d *ThingDef) IsPlant() bool  { return d.Plant != nil }
func (d *ThingDef) IsTree() bool   { return d.Plant != nil && d.Plant.Tree }
func (d *ThingDef) IsCorpse() bool { return d.Category == CategoryCorpse }
func (d *ThingDef) IsFilth() bool  { return d.Category == CategoryFilth }

func (d *ThingDef) IsMineable() bool {
	return d.Building != nil && d.Building.Mineable
}

func (d *ThingDef) IsDeconstructible() bool {
	return d.Building != nil && d.Building.Deconstructible
}

type thingDefFile struct {
	Things []*ThingDef `yaml:"things"`
}

// Defs holds every thing, terrain and rock definition plus the per-tile
// rock table used by world generation.
type Defs struct {
	things    map[string]*ThingDef
	terrains  map[string]*TerrainDef
	rocks     map[string]*RockType
	tileRocks map[int][]string
	baseRocks []string
}

// Thing looks up a thing def by name.
func (d *Defs) Thing(name string) (*ThingDef, error) {
	def, ok := d.things[name]
	if !ok {
		return nil, fmt.Errorf("thing %q: %w", name, ErrUnknownDef)
	}
	return def, nil
}

// Terrain looks up a terrain def by name.
func (d *Defs) Terrain(name string) (*TerrainDef, error) {
	def, ok := d.terrains[name]
	if !ok {
		return nil, fmt.Errorf("terrain %q: %w", name, ErrUnknownDef)
	}
	return def, nil
}

// ThingCount returns the number of thing defs.
func (d *Defs) ThingCount() int { return len(d.things) }

// TerrainCount returns the number of terrain defs.
func (d *Defs) TerrainCount() int { return len(d.terrains) }

// LoadDefs loads thing defs and terrain defs from YAML and resolves every
// cross reference. An unresolved reference fails the load.
func LoadDefs(thingPath, terrainPath string) (*Defs, error) {
	tf, err := readTerrainFile(terrainPath)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(thingPath)
	if err != nil {
		return nil, fmt.Errorf("read thing defs %s: %w", thingPath, err)
	}
	var f thingDefFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse thing defs %s: %w", thingPath, err)
	}
	tiles := make(map[int][]string, len(tf.TileRocks))
	for _, e := range tf.TileRocks {
		tiles[e.Tile] = e.Rocks
	}
	defs, err := NewDefs(f.Things, tf.Terrains, tf.RockTypes, tf.BaseRocks, tiles)
	if err != nil {
		return nil, fmt.Errorf("defs %s, %s: %w", thingPath, terrainPath, err)
	}
	return defs, nil
}

// NewDefs builds a def set from already decoded definitions. baseRocks
// applies to every tile missing from tileRocks.
func NewDefs(things []*ThingDef, terrains []*TerrainDef, rocks []*RockType, baseRocks []string, tileRocks map[int][]string) (*Defs, error) {
	d := &Defs{
		things:    make(map[string]*ThingDef, len(things)),
		terrains:  make(map[string]*TerrainDef, len(terrains)),
		rocks:     make(map[string]*RockType, len(rocks)),
		tileRocks: make(map[int][]string, len(tileRocks)),
	}
	for _, t := range terrains {
		d.terrains[t.Name] = t
	}
	if err := d.addRocks(rocks, baseRocks, tileRocks); err != nil {
		return nil, err
	}
	for _, def := range things {
		if def.Name == "" {
			return nil, fmt.Errorf("thing def without name")
		}
		if _, dup := d.things[def.Name]; dup {
			return nil, fmt.Errorf("duplicate thing def %q", def.Name)
		}
		if def.StackLimit <= 0 {
			def.StackLimit = 1
		}
		if def.Pawn != nil {
			if def.MaxHitPoints <= 0 {
				return nil, fmt.Errorf("pawn def %q: max_hit_points must be positive", def.Name)
			}
			if def.Pawn.Corpse == "" {
				return nil, fmt.Errorf("pawn def %q: no corpse", def.Name)
			}
		}
		d.things[def.Name] = def
	}
	if err := d.resolve(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Defs) resolve() error {
	for _, def := range d.things {
		var err error
		if def.FilthLeaving != "" {
			if def.FilthLeavingDef, err = d.Thing(def.FilthLeaving); err != nil {
				return fmt.Errorf("%s filth_leaving: %w", def.Name, err)
			}
		}
		if def.LeaveTerrain != "" {
			if def.LeaveTerrainDef, err = d.Terrain(def.LeaveTerrain); err != nil {
				return fmt.Errorf("%s leave_terrain: %w", def.Name, err)
			}
		}
		if p := def.Plant; p != nil && p.HarvestedThing != "" {
			if p.HarvestedThingDef, err = d.Thing(p.HarvestedThing); err != nil {
				return fmt.Errorf("%s harvested_thing: %w", def.Name, err)
			}
		}
		if b := def.Building; b != nil {
			if b.MineableThing != "" {
				if b.MineableThingDef, err = d.Thing(b.MineableThing); err != nil {
					return fmt.Errorf("%s mineable_thing: %w", def.Name, err)
				}
			}
			for _, list := range [][]ThingCount{b.CostList, b.KilledLeavings} {
				for _, tc := range list {
					if _, err := d.Thing(tc.Thing); err != nil {
						return fmt.Errorf("%s cost/leavings: %w", def.Name, err)
					}
				}
			}
		}
		if p := def.Pawn; p != nil && p.Corpse != "" {
			if p.CorpseDef, err = d.Thing(p.Corpse); err != nil {
				return fmt.Errorf("%s corpse: %w", def.Name, err)
			}
		}
	}
	return nil
}
