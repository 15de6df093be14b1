package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ayuyan/bot/internal/config"
	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/discord"
	"github.com/ayuyan/bot/internal/handler"
	"github.com/ayuyan/bot/internal/metrics"
	gonet "github.com/ayuyan/bot/internal/net"
	"github.com/ayuyan/bot/internal/random"
	"github.com/ayuyan/bot/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m  %-41s\033[36;1m│\033[0m\n", name+" v0.1.0")
	fmt.Println("\033[36;1m  │\033[0m  loot · dice · conditions                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main bot logic ────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/ayuyan.toml"
	if p := os.Getenv("AYUYAN_CONFIG"); p != "" {
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

	printBanner(cfg.Bot.Name)

	// 3. Loot tables
	printSection("Loot tables")
	tables, err := loadTables(cfg.Data)
	if err != nil {
		return err
	}
	for c := data.CategoryArmour; c.Valid(); c++ {
		printStat(c.String(), tables.Table(c).Len())
	}
	fmt.Println()

	// 4. Randomness
	printSection("Randomness")
	rng, err := newRNG(cfg.Random)
	if err != nil {
		return err
	}
	log.Info("rng seeded", zap.Uint64("seed", rng.Seed()))
	printOK(fmt.Sprintf("seed %d", rng.Seed()))
	fmt.Println()

	// 5. Lua presets
	printSection("Presets")
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printStat("presets", len(engine.PresetNames()))
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	dispatcher := handler.NewDispatcher(&handler.Deps{
		Config:  cfg,
		Log:     log,
		RNG:     rng,
		Tables:  tables,
		Presets: engine,
		Metrics: m,
	})

	// 6. Transports
	printSection("Transports")
	if cfg.Metrics.Enabled {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.BindAddress, log); err != nil {
				log.Error("metrics listener failed", zap.Error(err))
			}
		}()
		printOK("metrics on " + cfg.Metrics.BindAddress)
	}

	var console *gonet.Server
	if cfg.Console.Enabled {
		console, err = gonet.NewServer(cfg.Console.BindAddress, gonet.SessionOptions{
			InSize:         8,
			OutSize:        cfg.Console.OutQueueSize,
			MaxLineLength:  cfg.Console.MaxLineLength,
			LinesPerSecond: cfg.Console.LinesPerSecond,
			ReadTimeout:    cfg.Console.ReadTimeout,
			WriteTimeout:   cfg.Console.WriteTimeout,
		}, gonet.NewConsole(dispatcher, cfg.Bot.Prefix, cfg.Console.OwnerPasswordHash, log), log)
		if err != nil {
			return fmt.Errorf("console listen: %w", err)
		}
		go console.AcceptLoop(ctx)
		printOK("console on " + console.Addr().String())
	}

	var bot *discord.Bot
	if cfg.Discord.Enabled {
		bot, err = discord.New(ctx, cfg.Discord, dispatcher, log)
		if err != nil {
			return err
		}
		if err := bot.Open(); err != nil {
			return err
		}
		printOK("discord connected")
	}
	fmt.Println()

	if console == nil && bot == nil {
		log.Warn("no transport enabled, nothing to serve")
	}
	printReady(cfg.Bot.Name + " is ready")

	<-ctx.Done()
	log.Info("shutdown signal received")
	if console != nil {
		console.Shutdown()
	}
	if bot != nil {
		if err := bot.Close(); err != nil {
			log.Warn("discord close", zap.Error(err))
		}
	}
	log.Info("stopped")
	return nil
}

func loadTables(cfg config.DataConfig) (*data.Registry, error) {
	if cfg.TablesPath == "" {
		reg, err := data.LoadDefaultRegistry()
		if err != nil {
			return nil, fmt.Errorf("load embedded tables: %w", err)
		}
		printOK("embedded tables")
		return reg, nil
	}
	reg, err := data.LoadRegistry(cfg.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	printOK(cfg.TablesPath)
	return reg, nil
}

// newRNG seeds from config when set so runs can be replayed.
func newRNG(cfg config.RandomConfig) (*random.Service, error) {
	if cfg.Seed != 0 {
		return random.New(cfg.Seed), nil
	}
	rng, err := random.NewFromEntropy()
	if err != nil {
		return nil, fmt.Errorf("seed rng: %w", err)
	}
	return rng, nil
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
