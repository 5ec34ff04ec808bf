package data

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Rect is a block of cells, inclusive on both corners.
type Rect struct {
	X1 int32 `yaml:"x1"`
	Y1 int32 `yaml:"y1"`
	X2 int32 `yaml:"x2"`
	Y2 int32 `yaml:"y2"`
}

// TerrainPatch paints a rectangle with one terrain.
type TerrainPatch struct {
	Terrain string `yaml:"terrain"`
	Rect    `yaml:",inline"`
}

// RoofPatch covers a rectangle with one roof kind.
type RoofPatch struct {
	Roof string `yaml:"roof"`
	Rect `yaml:",inline"`
}

// ThingPlacement is one pre-generated object on a map.
type ThingPlacement struct {
	Def       string  `yaml:"def"`
	X         int32   `yaml:"x"`
	Y         int32   `yaml:"y"`
	HitPoints int     `yaml:"hit_points"` // 0 = max
	Stack     int     `yaml:"stack"`
	Growth    float64 `yaml:"growth"` // plants: 0 = fully grown
	Faction   string  `yaml:"faction"`
	Name      string  `yaml:"name"`
	Inner     string  `yaml:"inner"` // corpses: def of the dead pawn inside
}

// MapLayout describes a generated map before devastation.
type MapLayout struct {
	Width          int32            `yaml:"width"`
	Height         int32            `yaml:"height"`
	Tile           int              `yaml:"tile"`
	DefaultTerrain string           `yaml:"default_terrain"`
	Terrain        []TerrainPatch   `yaml:"terrain"`
	Roofs          []RoofPatch      `yaml:"roofs"`
	Things         []ThingPlacement `yaml:"things"`

	Digest string `yaml:"-"` // blake2b-256 of the source file, hex
}

// LoadMapLayout reads a map layout YAML file.
func LoadMapLayout(path string) (*MapLayout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map layout %s: %w", path, err)
	}
	var l MapLayout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse map layout %s: %w", path, err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("map layout %s: invalid size %dx%d", path, l.Width, l.Height)
	}
	sum := blake2b.Sum256(raw)
	l.Digest = hex.EncodeToString(sum[:])
	return &l, nil
}
