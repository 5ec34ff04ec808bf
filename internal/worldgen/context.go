// Package worldgen answers world generation queries about the tile a map
// sits on.
package worldgen

import (
	"github.com/l1jgo/groundzero/internal/data"
	"go.uber.org/zap"
)

// RockScript is the optional scripted override for a tile's rock types.
// *scripting.Engine implements it.
type RockScript interface {
	NaturalRockTypes(tile int) ([]string, bool)
}

// Context resolves rock types from the script when one answers, else from
// the def tables.
type Context struct {
	defs   *data.Defs
	script RockScript
	log    *zap.Logger
}

// NewContext builds a context. script may be nil.
func NewContext(defs *data.Defs, script RockScript, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{defs: defs, script: script, log: log}
}

// NaturalRockTypesIn returns the rock types of tile in priority order.
// Unknown names from the script are skipped; a script answer with no known
// rock falls back to the tables.
func (c *Context) NaturalRockTypesIn(tile int) []*data.RockType {
	if c.script != nil {
		if names, ok := c.script.NaturalRockTypes(tile); ok {
			rocks := make([]*data.RockType, 0, len(names))
			for _, n := range names {
				r, err := c.defs.Rock(n)
				if err != nil {
					c.log.Warn("script named unknown rock type", zap.Int("tile", tile), zap.Error(err))
					continue
				}
				rocks = append(rocks, r)
			}
			if len(rocks) > 0 {
				return rocks
			}
		}
	}
	return c.defs.NaturalRockTypesIn(tile)
}
