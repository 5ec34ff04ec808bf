// Package groundzero applies the one-shot devastation transform to a
// freshly generated map: trees and plants are felled, terrain is cracked to
// rock, deposits and buildings are broken for a configurable share of their
// normal yield, and hostile occupants are neutralized once the session runs.
package groundzero

import (
	"fmt"
	"time"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/data"
	"github.com/l1jgo/groundzero/internal/world"
	"go.uber.org/zap"
)

// Map is the host-owned map a pass reads and mutates. *world.Map
// implements it.
type Map interface {
	Tile() int
	Width() int32
	Height() int32
	Things(keep func(*world.Thing) bool) []*world.Thing
	ThingsAt(c world.Cell) []*world.Thing

	TakeDamage(t *world.Thing, dinfo world.DamageInfo) error
	Destroy(t *world.Thing, mode world.DestroyMode) error
	Spawn(def *data.ThingDef, c world.Cell, count int) error
	MakeFilth(c world.Cell, def *data.ThingDef, count int) error
	HarvestYield(t *world.Thing) int
	HarvestPlant(t *world.Thing) int
	SetForbidden(t *world.Thing, forbidden, silent bool)

	SetTerrain(c world.Cell, def *data.TerrainDef) error
	ResetTerrainGrids()
	ClearAllFog()
	ResetRoofGrid()
}

// WorldContext answers world generation queries about a map's location.
type WorldContext interface {
	NaturalRockTypesIn(tile int) []*data.RockType
}

// Scheduler runs a task once, after the host's own readiness barrier.
type Scheduler interface {
	QueueLongEvent(name string, fn func())
}

// Deps are the host collaborators a Devastator needs.
type Deps struct {
	WorldGen      WorldContext
	Rand          world.Rand
	Log           *zap.Logger
	PlayerFaction world.Faction
}

// Devastator runs the devastation passes for one scenario. Not safe for
// concurrent use; the host calls it from its single game goroutine.
type Devastator struct {
	cfg    config.ScenarioConfig
	deps   Deps
	log    *zap.Logger
	report Report
}

func New(cfg config.ScenarioConfig, deps Deps) *Devastator {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Rand == nil {
		deps.Rand = world.NewRand(time.Now().UnixNano())
	}
	return &Devastator{
		cfg:  cfg.Clamped(),
		deps: deps,
		log:  deps.Log.Named("groundzero"),
	}
}

// Report returns a copy of what the passes have done so far.
func (d *Devastator) Report() Report {
	return d.report
}

type stage struct {
	name    string
	enabled bool
	run     func(Map) error
}

// PostMapGenerate runs the main pass. A failing stage stops the remaining
// stages; the failure is logged and never reaches the caller, so map
// generation still succeeds with whatever was devastated.
func (d *Devastator) PostMapGenerate(m Map) {
	stages := []stage{
		{"break trees", true, d.breakAllTrees},
		{"kill plants", d.cfg.KillPlants, d.killAllPlants},
		{"replace terrain", d.cfg.StoneTerrainOnly, d.replaceMapTerrain},
		{"break mineables", true, d.breakMineableThings},
		{"deconstruct buildings", true, d.deconstructMapBuildings},
		{"clean up bodies", !d.cfg.KeepBodies, d.cleanUpBodies},
		{"forbid everything", d.cfg.ForbidEverything, d.forbidEverything},
		{"clear fog", true, func(m Map) error { m.ClearAllFog(); return nil }},
		{"reset roofs", true, func(m Map) error { m.ResetRoofGrid(); return nil }},
	}

	err := safely(func() error {
		for _, s := range stages {
			if !s.enabled {
				continue
			}
			if err := s.run(m); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			d.log.Debug("stage done", zap.String("stage", s.name))
		}
		return nil
	})
	if err != nil {
		d.report.Aborted = true
		d.report.AbortReason = err.Error()
		d.log.Warn("devastation pass aborted", zap.Error(err))
		return
	}
	d.log.Info("devastation pass complete", d.report.fields()...)
}

// PostGameStart queues the occupant pass. It runs once the host's map
// drawer is ready, against whatever map is visible at that moment.
func (d *Devastator) PostGameStart(s Scheduler, visible func() Map) {
	s.QueueLongEvent("groundzero: neutralize occupants", func() {
		m := visible()
		if m == nil {
			d.log.Warn("occupant pass skipped: no visible map")
			return
		}
		if err := safely(func() error { return d.killNonColonistPawns(m) }); err != nil {
			d.log.Warn("occupant pass aborted", zap.Error(err))
			return
		}
		d.log.Info("occupant pass complete",
			zap.Int("neutralized", d.report.PawnsNeutralized),
			zap.Int("corpses", d.report.CorpsesMade),
		)
	})
}

// safely runs fn, turning a panic into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}
