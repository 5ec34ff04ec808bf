package world

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/l1jgo/groundzero/internal/core/ecs"
	"github.com/l1jgo/groundzero/internal/core/event"
	"github.com/l1jgo/groundzero/internal/data"
	"go.uber.org/zap"
)

var (
	ErrOutOfBounds        = errors.New("cell out of bounds")
	ErrDestroyed          = errors.New("thing already destroyed")
	ErrNotDeconstructible = errors.New("thing is not deconstructible")
	ErrInvalidCount       = errors.New("invalid stack count")
)

var mapIDCounter atomic.Int32

// NextMapID returns a unique map id.
func NextMapID() int32 {
	return mapIDCounter.Add(1)
}

// Map is one generated map: a thing index plus terrain, fog and roof
// grids. Grids are row-major, index = y*width + x. Accessed only from the
// goroutine that owns the session.
type Map struct {
	ID     int32
	tile   int
	width  int32
	height int32

	defs     *data.Defs
	entities *ecs.World
	things   *ecs.Store[Thing]
	cells    *cellIndex

	topGrid   []*data.TerrainDef
	underGrid []*data.TerrainDef
	fogGrid   []bool
	roofGrid  []string

	bus *event.Bus
	log *zap.Logger
}

// NewMap creates an empty, fully fogged map. defs resolves leavings named
// by cost lists; bus may be nil.
func NewMap(width, height int32, tile int, defs *data.Defs, bus *event.Bus, log *zap.Logger) *Map {
	if log == nil {
		log = zap.NewNop()
	}
	n := int(width * height)
	m := &Map{
		ID:        NextMapID(),
		tile:      tile,
		width:     width,
		height:    height,
		defs:      defs,
		entities:  ecs.NewWorld(),
		things:    ecs.NewStore[Thing](),
		cells:     newCellIndex(),
		topGrid:   make([]*data.TerrainDef, n),
		underGrid: make([]*data.TerrainDef, n),
		fogGrid:   make([]bool, n),
		roofGrid:  make([]string, n),
		bus:       bus,
		log:       log,
	}
	m.entities.Registry().Register(m.things)
	for i := range m.fogGrid {
		m.fogGrid[i] = true
	}
	return m
}

func (m *Map) Tile() int            { return m.tile }
func (m *Map) Width() int32         { return m.width }
func (m *Map) Height() int32        { return m.height }
func (m *Map) Entities() *ecs.World { return m.entities }

// ThingCount returns the number of indexed things.
func (m *Map) ThingCount() int { return m.things.Len() }

// OccupiedCells returns the number of cells holding at least one thing.
func (m *Map) OccupiedCells() int { return m.cells.occupied() }

func (m *Map) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < m.width && c.Y < m.height
}

func (m *Map) index(c Cell) int {
	return int(c.Y*m.width + c.X)
}

// Things returns the indexed things accepted by keep (all when keep is nil)
// in id order. The slice is a copy: destroying or spawning while walking
// it is safe.
func (m *Map) Things(keep func(*Thing) bool) []*Thing {
	return m.things.Snapshot(keep)
}

// ThingsAt returns the things on one cell in id order.
func (m *Map) ThingsAt(c Cell) []*Thing {
	ids := m.cells.at(c)
	out := make([]*Thing, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.things.Get(id); ok {
			out = append(out, t)
		}
	}
	return out
}

func (m *Map) add(t *Thing) *Thing {
	t.ID = m.entities.CreateEntity()
	m.things.Set(t.ID, t)
	m.cells.add(t.ID, t.Pos)
	event.Emit(m.bus, event.ThingSpawned{ID: t.ID, Def: t.Def.Name, X: t.Pos.X, Y: t.Pos.Y, Count: t.StackCount})
	return t
}

func (m *Map) remove(t *Thing, mode DestroyMode) {
	t.destroyed = true
	m.cells.remove(t.ID, t.Pos)
	m.entities.Destroy(t.ID)
	event.Emit(m.bus, event.ThingDestroyed{ID: t.ID, Def: t.Def.Name, Mode: mode.String()})
}

// SetForbidden toggles the forbidden flag on forbiddable things. Non-silent
// changes are announced on the event bus.
func (m *Map) SetForbidden(t *Thing, forbidden, silent bool) {
	if t.destroyed || !t.Def.Forbiddable || t.Forbidden == forbidden {
		return
	}
	t.Forbidden = forbidden
	if !silent {
		event.Emit(m.bus, event.ForbiddenChanged{ID: t.ID, Forbidden: forbidden})
	}
}

// Terrain returns the top terrain of a cell, nil when out of bounds or
// unset.
func (m *Map) Terrain(c Cell) *data.TerrainDef {
	if !m.InBounds(c) {
		return nil
	}
	return m.topGrid[m.index(c)]
}

// UnderTerrain returns the terrain below a floor, nil when there is none.
func (m *Map) UnderTerrain(c Cell) *data.TerrainDef {
	if !m.InBounds(c) {
		return nil
	}
	return m.underGrid[m.index(c)]
}

// SetTerrain replaces the top terrain of a cell. Floors keep the previous
// terrain on the under layer; anything else clears it.
func (m *Map) SetTerrain(c Cell, def *data.TerrainDef) error {
	if !m.InBounds(c) {
		return fmt.Errorf("set terrain (%d,%d): %w", c.X, c.Y, ErrOutOfBounds)
	}
	i := m.index(c)
	if def.Floor {
		if m.topGrid[i] != nil && !m.topGrid[i].Floor {
			m.underGrid[i] = m.topGrid[i]
		}
	} else {
		m.underGrid[i] = nil
	}
	m.topGrid[i] = def
	event.Emit(m.bus, event.TerrainChanged{X: c.X, Y: c.Y, Terrain: def.Name})
	return nil
}

// ResetTerrainGrids drops every terrain layer, leaving all cells unset.
func (m *Map) ResetTerrainGrids() {
	n := len(m.topGrid)
	m.topGrid = make([]*data.TerrainDef, n)
	m.underGrid = make([]*data.TerrainDef, n)
}

func (m *Map) Fogged(c Cell) bool {
	return m.InBounds(c) && m.fogGrid[m.index(c)]
}

func (m *Map) ClearAllFog() {
	for i := range m.fogGrid {
		m.fogGrid[i] = false
	}
}

// Roof returns the roof over a cell, "" for open sky.
func (m *Map) Roof(c Cell) string {
	if !m.InBounds(c) {
		return ""
	}
	return m.roofGrid[m.index(c)]
}

func (m *Map) SetRoof(c Cell, roof string) error {
	if !m.InBounds(c) {
		return fmt.Errorf("set roof (%d,%d): %w", c.X, c.Y, ErrOutOfBounds)
	}
	m.roofGrid[m.index(c)] = roof
	return nil
}

// ResetRoofGrid replaces the roof grid with an empty one.
func (m *Map) ResetRoofGrid() {
	m.roofGrid = make([]string, len(m.roofGrid))
}
