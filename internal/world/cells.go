package world

import (
	"sort"

	"github.com/l1jgo/groundzero/internal/core/ecs"
)

// cellIndex tracks which things sit on which cell. Things never move, so
// there is only add and remove. Accessed only from the map's goroutine.
type cellIndex struct {
	cells map[Cell]map[ecs.EntityID]struct{}
}

func newCellIndex() *cellIndex {
	return &cellIndex{cells: make(map[Cell]map[ecs.EntityID]struct{})}
}

func (g *cellIndex) add(id ecs.EntityID, c Cell) {
	cell := g.cells[c]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[c] = cell
	}
	cell[id] = struct{}{}
}

func (g *cellIndex) remove(id ecs.EntityID, c Cell) {
	cell := g.cells[c]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, c)
		}
	}
}

// at returns the ids on c in ascending order.
func (g *cellIndex) at(c Cell) []ecs.EntityID {
	cell := g.cells[c]
	if len(cell) == 0 {
		return nil
	}
	ids := make([]ecs.EntityID, 0, len(cell))
	for id := range cell {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// occupied returns the number of cells holding at least one thing.
func (g *cellIndex) occupied() int { return len(g.cells) }
