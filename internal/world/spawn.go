package world

import (
	"fmt"

	"github.com/l1jgo/groundzero/internal/data"
)

// Spawn places count units of def on a cell, split into stacks no larger
// than the def's stack limit.
func (m *Map) Spawn(def *data.ThingDef, c Cell, count int) error {
	if !m.InBounds(c) {
		return fmt.Errorf("spawn %s at (%d,%d): %w", def.Name, c.X, c.Y, ErrOutOfBounds)
	}
	if count <= 0 {
		return fmt.Errorf("spawn %s x%d: %w", def.Name, count, ErrInvalidCount)
	}
	limit := def.StackLimit
	if limit <= 0 {
		limit = 1
	}
	for count > 0 {
		n := count
		if n > limit {
			n = limit
		}
		m.add(&Thing{Def: def, Pos: c, HitPoints: def.MaxHitPoints, StackCount: n})
		count -= n
	}
	return nil
}

// MakeFilth thickens existing filth of the same def on the cell, or lays
// down new filth. Thickness is capped by the filth def's stack limit.
func (m *Map) MakeFilth(c Cell, def *data.ThingDef, count int) error {
	if !m.InBounds(c) {
		return fmt.Errorf("make filth %s at (%d,%d): %w", def.Name, c.X, c.Y, ErrOutOfBounds)
	}
	if count <= 0 {
		return fmt.Errorf("make filth %s x%d: %w", def.Name, count, ErrInvalidCount)
	}
	var existing *Thing
	for _, t := range m.ThingsAt(c) {
		if t.Def == def {
			existing = t
			break
		}
	}
	if existing == nil {
		existing = m.add(&Thing{Def: def, Pos: c, HitPoints: def.MaxHitPoints})
	}
	existing.StackCount += count
	if limit := def.StackLimit; limit > 0 && existing.StackCount > limit {
		existing.StackCount = limit
	}
	return nil
}

// PlacePawn puts a living occupant on the map.
func (m *Map) PlacePawn(def *data.ThingDef, c Cell, name string, faction Faction) (*Thing, error) {
	if !m.InBounds(c) {
		return nil, fmt.Errorf("place pawn %s at (%d,%d): %w", def.Name, c.X, c.Y, ErrOutOfBounds)
	}
	return m.add(&Thing{
		Def:        def,
		Pos:        c,
		HitPoints:  def.MaxHitPoints,
		StackCount: 1,
		Pawn:       &Pawn{Def: def, Name: name, Faction: faction},
	}), nil
}

// PlaceThing puts a single pre-built thing on the map, as the generator
// does. hitPoints <= 0 means full health.
func (m *Map) PlaceThing(def *data.ThingDef, c Cell, hitPoints int) (*Thing, error) {
	if !m.InBounds(c) {
		return nil, fmt.Errorf("place %s at (%d,%d): %w", def.Name, c.X, c.Y, ErrOutOfBounds)
	}
	if hitPoints <= 0 || hitPoints > def.MaxHitPoints {
		hitPoints = def.MaxHitPoints
	}
	t := &Thing{Def: def, Pos: c, HitPoints: hitPoints, StackCount: 1}
	if def.IsPlant() {
		t.Growth = 1
	}
	return m.add(t), nil
}
