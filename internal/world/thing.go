package world

import (
	"fmt"

	"github.com/l1jgo/groundzero/internal/core/ecs"
	"github.com/l1jgo/groundzero/internal/data"
)

// Cell is a map coordinate.
type Cell struct {
	X, Y int32
}

// Faction names the owner of a pawn.
type Faction string

// Pawn is the occupant state of a living creature, or of the dead creature
// inside a corpse.
type Pawn struct {
	Def     *data.ThingDef
	Name    string
	Faction Faction
	Dead    bool
}

// Thing is any object placed on a map. Pointers stay valid after the thing
// is destroyed; Destroyed reports whether it is still indexed.
type Thing struct {
	ID         ecs.EntityID
	Def        *data.ThingDef
	Pos        Cell
	HitPoints  int
	StackCount int // filth thickness for filth things
	Forbidden  bool
	Growth     float64 // plants only, 0-1
	Pawn       *Pawn

	destroyed bool
}

func (t *Thing) Destroyed() bool   { return t.destroyed }
func (t *Thing) MaxHitPoints() int { return t.Def.MaxHitPoints }

// IsLivingPawn reports whether t is an occupant that is still alive.
func (t *Thing) IsLivingPawn() bool {
	return t.Pawn != nil && !t.Pawn.Dead && !t.Def.IsCorpse()
}

func (t *Thing) String() string {
	return fmt.Sprintf("%s#%d@(%d,%d)", t.Def.Name, t.ID.Index(), t.Pos.X, t.Pos.Y)
}
