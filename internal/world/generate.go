package world

import (
	"fmt"

	"github.com/l1jgo/groundzero/internal/core/event"
	"github.com/l1jgo/groundzero/internal/data"
	"go.uber.org/zap"
)

// Generate builds a map from a layout: default terrain, terrain patches,
// roofs, then every placed thing. The result is fully fogged.
func Generate(layout *data.MapLayout, defs *data.Defs, bus *event.Bus, log *zap.Logger) (*Map, error) {
	m := NewMap(layout.Width, layout.Height, layout.Tile, defs, bus, log)

	if layout.DefaultTerrain != "" {
		def, err := defs.Terrain(layout.DefaultTerrain)
		if err != nil {
			return nil, fmt.Errorf("default terrain: %w", err)
		}
		if err := m.paintTerrain(def, data.Rect{X2: m.width - 1, Y2: m.height - 1}); err != nil {
			return nil, err
		}
	}
	for _, p := range layout.Terrain {
		def, err := defs.Terrain(p.Terrain)
		if err != nil {
			return nil, fmt.Errorf("terrain patch: %w", err)
		}
		if err := m.paintTerrain(def, p.Rect); err != nil {
			return nil, err
		}
	}
	for _, r := range layout.Roofs {
		for y := r.Y1; y <= r.Y2; y++ {
			for x := r.X1; x <= r.X2; x++ {
				if err := m.SetRoof(Cell{x, y}, r.Roof); err != nil {
					return nil, err
				}
			}
		}
	}

	for i, p := range layout.Things {
		if err := m.place(defs, p); err != nil {
			return nil, fmt.Errorf("thing %d (%s): %w", i, p.Def, err)
		}
	}
	m.log.Debug("map generated",
		zap.Int32("map_id", m.ID),
		zap.Int32("width", m.width),
		zap.Int32("height", m.height),
		zap.Int("things", m.ThingCount()),
	)
	return m, nil
}

func (m *Map) paintTerrain(def *data.TerrainDef, r data.Rect) error {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if err := m.SetTerrain(Cell{x, y}, def); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Map) place(defs *data.Defs, p data.ThingPlacement) error {
	def, err := defs.Thing(p.Def)
	if err != nil {
		return err
	}
	c := Cell{p.X, p.Y}

	switch {
	case def.Pawn != nil:
		t, err := m.PlacePawn(def, c, p.Name, Faction(p.Faction))
		if err != nil {
			return err
		}
		if p.HitPoints > 0 && p.HitPoints < def.MaxHitPoints {
			t.HitPoints = p.HitPoints
		}
		return nil

	case def.IsCorpse():
		t, err := m.PlaceThing(def, c, p.HitPoints)
		if err != nil {
			return err
		}
		if p.Inner != "" {
			inner, err := defs.Thing(p.Inner)
			if err != nil {
				return fmt.Errorf("corpse inner: %w", err)
			}
			t.Pawn = &Pawn{Def: inner, Name: p.Name, Faction: Faction(p.Faction), Dead: true}
		}
		return nil

	case def.IsFilth():
		n := p.Stack
		if n <= 0 {
			n = 1
		}
		return m.MakeFilth(c, def, n)

	case def.Category == data.CategoryItem:
		n := p.Stack
		if n <= 0 {
			n = 1
		}
		return m.Spawn(def, c, n)
	}

	t, err := m.PlaceThing(def, c, p.HitPoints)
	if err != nil {
		return err
	}
	if def.IsPlant() && p.Growth > 0 {
		t.Growth = p.Growth
	}
	return nil
}
