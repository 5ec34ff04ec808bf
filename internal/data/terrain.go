package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TerrainDef is one kind of ground cell.
type TerrainDef struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Water bool   `yaml:"water"`
	Floor bool   `yaml:"floor"` // laid over the existing terrain, which moves to the under layer
}

// RockType is a stone kind a world tile can be made of.
type RockType struct {
	Name           string `yaml:"name"`
	NaturalTerrain string `yaml:"natural_terrain"`

	NaturalTerrainDef *TerrainDef `yaml:"-"`
}

type tileRockEntry struct {
	Tile  int      `yaml:"tile"`
	Rocks []string `yaml:"rocks"`
}

type terrainFile struct {
	Terrains  []*TerrainDef   `yaml:"terrains"`
	RockTypes []*RockType     `yaml:"rock_types"`
	BaseRocks []string        `yaml:"base_rocks"` // tiles missing from tile_rocks use these
	TileRocks []tileRockEntry `yaml:"tile_rocks"`
}

func readTerrainFile(path string) (*terrainFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terrain defs %s: %w", path, err)
	}
	var f terrainFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse terrain defs %s: %w", path, err)
	}
	return &f, nil
}

func (d *Defs) addRocks(rocks []*RockType, baseRocks []string, tileRocks map[int][]string) error {
	for _, r := range rocks {
		if r.NaturalTerrain != "" {
			def, err := d.Terrain(r.NaturalTerrain)
			if err != nil {
				return fmt.Errorf("rock %s: %w", r.Name, err)
			}
			r.NaturalTerrainDef = def
		}
		d.rocks[r.Name] = r
	}
	check := func(names []string) error {
		for _, n := range names {
			if _, ok := d.rocks[n]; !ok {
				return fmt.Errorf("rock %q: %w", n, ErrUnknownDef)
			}
		}
		return nil
	}
	if err := check(baseRocks); err != nil {
		return err
	}
	d.baseRocks = baseRocks
	for tile, names := range tileRocks {
		if err := check(names); err != nil {
			return fmt.Errorf("tile %d: %w", tile, err)
		}
		d.tileRocks[tile] = names
	}
	return nil
}

// Rock looks up a rock type by name.
func (d *Defs) Rock(name string) (*RockType, error) {
	r, ok := d.rocks[name]
	if !ok {
		return nil, fmt.Errorf("rock %q: %w", name, ErrUnknownDef)
	}
	return r, nil
}

// NaturalRockTypesIn returns the rock types of a world tile in table order.
// Tiles without an entry fall back to the base rock list.
func (d *Defs) NaturalRockTypesIn(tile int) []*RockType {
	names, ok := d.tileRocks[tile]
	if !ok {
		names = d.baseRocks
	}
	out := make([]*RockType, 0, len(names))
	for _, n := range names {
		out = append(out, d.rocks[n])
	}
	return out
}
