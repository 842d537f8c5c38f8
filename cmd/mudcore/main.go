package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrozal/mudcore/internal/catalog"
	"github.com/chrozal/mudcore/internal/clock"
	"github.com/chrozal/mudcore/internal/config"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/dispatch"
	"github.com/chrozal/mudcore/internal/handler"
	gonet "github.com/chrozal/mudcore/internal/net"
	"github.com/chrozal/mudcore/internal/persist"
	"github.com/chrozal/mudcore/internal/session"
	"github.com/chrozal/mudcore/internal/system"
	"github.com/chrozal/mudcore/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("  ┌───────────────────────────────────────────┐")
	fmt.Println("  │                 mudcore                    │")
	fmt.Println("  └───────────────────────────────────────────┘")
	fmt.Println()
	fmt.Printf("  server: %s (id: %d)\n\n", serverName, serverID)
}

func printSection(title string) {
	fmt.Printf("  -- %s --\n", title)
}

func printStat(label string, count int) {
	fmt.Printf("  %-28s %d\n", label, count)
}

func printOK(msg string) {
	fmt.Printf("  [ok] %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  [ready] %s\n", msg)
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("MUDCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	printSection("database")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	printOK("postgres connected")

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")
	fmt.Println()

	accountRepo := persist.NewAccountRepo(db)
	charRepo := persist.NewCharacterRepo(db)
	itemRepo := persist.NewItemRepo(db)
	boardRepo := persist.NewBoardRepo(db)
	bankRepo := persist.NewBankRepo(db)

	printSection("content")
	catalogs, err := catalog.LoadAll(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	printStat("races", len(catalogs.Races.All()))
	printStat("classes", len(catalogs.Classes.All()))
	printStat("item templates", catalogs.Items.Count())
	printStat("mob templates", catalogs.Mobs.Count())
	printStat("abilities", len(catalogs.Abilities.All()))
	printStat("rooms", len(catalogs.Rooms.All()))
	fmt.Println()

	system.InstallLevelingCurve(cfg.Leveling)

	bus := event.NewBus()
	w := world.New(catalogs, bus)

	storedItems, err := itemRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	for _, inst := range storedItems {
		w.RestoreItem(inst)
	}
	printStat("items restored", len(storedItems))

	gameClock := clock.New()

	netServer, err := gonet.NewServer(cfg.Network.BindAddress, cfg.Network.InQueueSize, cfg.Network.OutQueueSize, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	// session.Manager implements dispatch's OutputSink (Tell), but the
	// registry needs a Dispatcher and the Manager needs the registry as its
	// Dispatcher. Build the Manager first against a Deps it holds by
	// pointer, then backfill Dispatch once the registry exists.
	sessDeps := &session.Deps{
		Accounts:   accountRepo,
		Characters: charRepo,
		Config:     cfg,
		Catalogs:   catalogs,
		World:      w,
		Bus:        bus,
		Log:        log,
	}
	sessMgr := session.NewManager(sessDeps, netServer)

	reg := dispatch.NewRegistry(w, sessMgr)
	hdeps := &handler.Deps{
		World:    w,
		Catalogs: catalogs,
		Bus:      bus,
		Out:      sessMgr,
		Log:      log,
		Boards:   boardRepo,
		Bank:     bankRepo,
	}
	handler.RegisterAll(reg, hdeps)
	sessDeps.Dispatch = reg

	runner := tick.NewRunner(log)
	runner.Register(sessMgr)
	runner.Register(system.NewClockSystem(gameClock))
	runner.Register(system.NewRoundtimeSystem(w))
	runner.Register(system.NewBuffTickSystem(w, sessMgr))
	runner.Register(system.NewNpcAiSystem(w, sessMgr, bus))
	runner.Register(system.NewDeathSystem(w, sessMgr, bus))
	runner.Register(system.NewNpcRespawnSystem(w, sessMgr))
	runner.Register(system.NewRegenSystem(w, cfg.Regen))
	runner.Register(system.NewWeatherSystem(w))
	runner.Register(system.NewLevelingSystem(w, cfg.Leveling, sessMgr, bus))
	persistSys := system.NewPersistenceSystem(w, charRepo, itemRepo, log)
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(w))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	systemTicker := time.NewTicker(cfg.Network.TickRate)
	inputPoll := time.NewTicker(10 * time.Millisecond)
	defer systemTicker.Stop()
	defer inputPoll.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s", netServer.Addr().String()))
	printReady(fmt.Sprintf("tick rate %s", cfg.Network.TickRate))
	fmt.Println()

	for {
		select {
		case <-systemTicker.C:
			bus.SwapBuffers()
			runner.Tick(cfg.Network.TickRate)
			bus.DispatchAll()
		case <-inputPoll.C:
			runner.TickPhase(tick.PhaseInput, 0)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			persistSys.SaveAll()
			netServer.Shutdown()
			log.Info("server stopped")
			return nil
		}
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
