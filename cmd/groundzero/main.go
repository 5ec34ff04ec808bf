package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/core/event"
	"github.com/l1jgo/groundzero/internal/data"
	"github.com/l1jgo/groundzero/internal/groundzero"
	"github.com/l1jgo/groundzero/internal/host"
	"github.com/l1jgo/groundzero/internal/persist"
	"github.com/l1jgo/groundzero/internal/scripting"
	"github.com/l1jgo/groundzero/internal/world"
	"github.com/l1jgo/groundzero/internal/worldgen"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Display helpers ────────────────────────────────────────────────

func printBanner(layout string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            groundzero  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       devastated start map generator      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mlayout:\033[0m %s\n\n", layout)
}

func printSection(title string) {
	lineLen := 46 - len([]rune(title)) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len([]rune(label)) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printWarn(msg string) {
	fmt.Printf("  \033[31m!\033[0m %s\n", msg)
}

// ── Run ────────────────────────────────────────────────────────────

func run() error {
	started := time.Now()

	// 1. Load config
	cfgPath := "config/groundzero.toml"
	if p := os.Getenv("GROUNDZERO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Map.Layout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Optional run ledger
	var runs *persist.RunRepo
	if cfg.Database.Enabled {
		printSection("database")
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(dbCtx, db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		fmt.Println()
		runs = persist.NewRunRepo(db)
	}

	// 4. Load data
	printSection("data")
	defs, err := data.LoadDefs(cfg.Data.ThingDefs, cfg.Data.TerrainDefs)
	if err != nil {
		return fmt.Errorf("load defs: %w", err)
	}
	printStat("thing defs", defs.ThingCount())
	printStat("terrain defs", defs.TerrainCount())

	layout, err := data.LoadMapLayout(cfg.Map.Layout)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	printStat("placed things", len(layout.Things))

	// 5. Scripts
	var rockScript worldgen.RockScript
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		rockScript = engine
		printOK("Lua scripts loaded")
	}
	fmt.Println()

	// 6. Generate and devastate
	printSection("generation")
	bus := event.NewBus()
	m, err := world.Generate(layout, defs, bus, log)
	if err != nil {
		return fmt.Errorf("generate map: %w", err)
	}
	printOK(fmt.Sprintf("map %dx%d on tile %d", m.Width(), m.Height(), m.Tile()))

	seed := cfg.Map.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	dev := groundzero.New(cfg.Scenario, groundzero.Deps{
		WorldGen:      worldgen.NewContext(defs, rockScript, log),
		Rand:          world.NewRand(seed),
		Log:           log,
		PlayerFaction: world.Faction(cfg.Session.PlayerFaction),
	})
	dev.PostMapGenerate(m)

	// 7. Session: the occupant pass waits for the map drawer
	session := host.NewSession(m, bus, cfg.Session, log)
	dev.PostGameStart(session, func() groundzero.Map {
		if v := session.VisibleMap(); v != nil {
			return v
		}
		return nil
	})
	if err := session.RunUntilIdle(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	printOK(fmt.Sprintf("session ran %d ticks", session.Ticks()))
	fmt.Println()

	// 8. Report
	rep := dev.Report()
	printSection("devastation")
	for _, c := range rep.Counts() {
		if c.Value != 0 {
			printStat(strings.ReplaceAll(c.Name, "_", " "), c.Value)
		}
	}
	if rep.RockTerrain != "" {
		printOK("terrain leveled to " + rep.RockTerrain)
	}
	if rep.Aborted {
		printWarn("pass aborted: " + rep.AbortReason)
	}
	fmt.Println()

	printSection("remaining")
	printRemaining(m)
	fmt.Println()

	if runs != nil {
		id, err := runs.Save(ctx, persist.RunRecord{
			StartedAt:    started,
			FinishedAt:   time.Now(),
			LayoutDigest: layout.Digest,
			Tile:         m.Tile(),
			Seed:         seed,
			Scenario:     cfg.Scenario.Clamped(),
			SessionTicks: session.Ticks(),
			Report:       rep,
		})
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		log.Info("run saved", zap.Int64("run_id", id), zap.String("layout", layout.Digest))

		history, err := runs.Recent(ctx, layout.Digest, 5)
		if err != nil {
			return fmt.Errorf("load run history: %w", err)
		}
		printSection("earlier runs of this layout")
		printHistory(history, id)
		fmt.Println()
	}
	return nil
}

// printHistory lists ledger runs, skipping the one just saved.
func printHistory(rows []persist.RunRow, current int64) {
	shown := 0
	for _, r := range rows {
		if r.ID == current {
			continue
		}
		label := fmt.Sprintf("#%d %s %d%%", r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Percent)
		if r.Aborted {
			label += " aborted"
		}
		printStat(label+" things broken", r.Counts["buildings_deconstructed"]+r.Counts["mineables_broken"]+r.Counts["trees_broken"])
		shown++
	}
	if shown == 0 {
		printOK("first run of this layout")
	}
}

// printRemaining lists what is left on the map, grouped by def label.
func printRemaining(m *world.Map) {
	units := make(map[string]int)
	for _, t := range m.Things(nil) {
		units[t.Def.LabelCap()] += t.StackCount
	}
	labels := make([]string, 0, len(units))
	for l := range units {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		printStat(l, units[l])
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
