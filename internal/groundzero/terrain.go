package groundzero

import (
	"fmt"

	"github.com/l1jgo/groundzero/internal/data"
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

// baseRockTerrain picks the natural terrain of the first rock type at the
// map's tile that has one.
func (d *Devastator) baseRockTerrain(tile int) *data.TerrainDef {
	if d.deps.WorldGen == nil {
		return nil
	}
	for _, r := range d.deps.WorldGen.NaturalRockTypesIn(tile) {
		if r != nil && r.NaturalTerrainDef != nil {
			return r.NaturalTerrainDef
		}
	}
	return nil
}

func (d *Devastator) replaceMapTerrain(m Map) error {
	rock := d.baseRockTerrain(m.Tile())
	if rock == nil {
		d.log.Info("no natural rock terrain for tile, terrain left as is", zap.Int("tile", m.Tile()))
		return nil
	}
	m.ResetTerrainGrids()
	w, h := m.Width(), m.Height()
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			if err := m.SetTerrain(world.Cell{X: x, Y: y}, rock); err != nil {
				return fmt.Errorf("level terrain: %w", err)
			}
		}
	}
	d.report.CellsLeveled += int(w) * int(h)
	d.report.RockTerrain = rock.Name
	return nil
}
