package groundzero

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/core/event"
	"github.com/l1jgo/groundzero/internal/data"
	"github.com/l1jgo/groundzero/internal/host"
	"github.com/l1jgo/groundzero/internal/scripting"
	"github.com/l1jgo/groundzero/internal/world"
	"github.com/l1jgo/groundzero/internal/worldgen"
	"go.uber.org/zap"
)

// TestShippedScenario runs the repository's own config, defs, layout and
// scripts through both passes.
func TestShippedScenario(t *testing.T) {
	root := filepath.Join("..", "..")
	cfg, err := config.Load(filepath.Join(root, "config", "groundzero.toml"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	defs, err := data.LoadDefs(
		filepath.Join(root, cfg.Data.ThingDefs),
		filepath.Join(root, cfg.Data.TerrainDefs),
	)
	if err != nil {
		t.Fatalf("defs: %v", err)
	}
	layout, err := data.LoadMapLayout(filepath.Join(root, cfg.Map.Layout))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	engine, err := scripting.NewEngine(filepath.Join(root, cfg.Scripting.Dir), zap.NewNop())
	if err != nil {
		t.Fatalf("scripts: %v", err)
	}
	defer engine.Close()

	bus := event.NewBus()
	m, err := world.Generate(layout, defs, bus, zap.NewNop())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	d := New(cfg.Scenario, Deps{
		WorldGen:      worldgen.NewContext(defs, engine, zap.NewNop()),
		Rand:          world.NewRand(42),
		Log:           zap.NewNop(),
		PlayerFaction: world.Faction(cfg.Session.PlayerFaction),
	})
	d.PostMapGenerate(m)

	sessionCfg := cfg.Session
	sessionCfg.TickRate = 0
	s := host.NewSession(m, bus, sessionCfg, zap.NewNop())
	d.PostGameStart(s, func() Map { return s.VisibleMap() })
	if err := s.RunUntilIdle(context.Background()); err != nil {
		t.Fatalf("session: %v", err)
	}
	if !s.Idle() {
		t.Fatalf("occupant pass never ran")
	}

	r := d.Report()
	if r.Aborted {
		t.Fatalf("aborted: %s", r.AbortReason)
	}
	for _, th := range m.Things(nil) {
		switch {
		case th.Def.IsPlant(), th.Def.IsMineable(), th.Def.IsDeconstructible():
			t.Fatalf("%s survived", th)
		case th.IsLivingPawn() && th.Pawn.Faction != "player":
			t.Fatalf("occupant %s survived", th.Pawn.Name)
		case th.Def.Forbiddable && !th.Forbidden && !th.Def.IsCorpse():
			// corpses made by the occupant pass appear after forbidding
			t.Fatalf("%s not forbidden", th)
		}
	}
	if r.RockTerrain != "rough_marble" {
		t.Fatalf("rock terrain = %q", r.RockTerrain)
	}
	if got := m.Terrain(world.Cell{X: 3, Y: 26}); got == nil || got.Name != "gravel" {
		t.Fatalf("steel deposit cell = %v", got)
	}
	if r.PawnsNeutralized != 3 || r.CorpsesMade != 3 {
		t.Fatalf("report = %+v", r)
	}
	if m.Entities().Pending() != 0 {
		t.Fatalf("destroyed ids not released")
	}
}
