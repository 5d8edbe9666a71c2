package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/zargony/touch-n-drink/internal/billing"
	"github.com/zargony/touch-n-drink/internal/config"
	"github.com/zargony/touch-n-drink/internal/directory"
	"github.com/zargony/touch-n-drink/internal/input"
	"github.com/zargony/touch-n-drink/internal/nfc"
	"github.com/zargony/touch-n-drink/internal/purchase"
	"github.com/zargony/touch-n-drink/internal/sim"
	"github.com/zargony/touch-n-drink/internal/storage/boltdb"
	"github.com/zargony/touch-n-drink/internal/telemetry"
	"github.com/zargony/touch-n-drink/internal/ui"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "touch-n-drink.json", "Path to configuration file")
	dbPath := flag.String("db", "touch-n-drink.db", "Path to local database")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// A .env file is optional; deployments usually set the environment directly
	_ = godotenv.Load()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger, *configPath, *dbPath); err != nil {
		logger.Error("terminal failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, dbPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := boltdb.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := billing.NewClient(cfg.BillingURL, billing.Credentials{
		Username:    cfg.BillingUsername,
		PasswordMD5: string(cfg.BillingPasswordMD5),
		AppKey:      string(cfg.BillingAppKey),
		CID:         cfg.BillingCID,
	}, cfg.RequestTimeout.Std(), logger)

	cache := directory.New(client, store, directory.Config{
		ArticleIDs:      cfg.ArticleIDs,
		HardTTL:         cfg.HardTTL.Std(),
		RefreshInterval: cfg.RefreshInterval.Std(),
	}, logger)
	if err := cache.WarmStart(ctx); err != nil {
		logger.Warn("failed to restore directory snapshot", "error", err)
	}

	var transport telemetry.Transport
	if cfg.TelemetryToken != "" {
		transport = telemetry.NewMixpanelTransport(cfg.TelemetryURL, string(cfg.TelemetryToken), cfg.DeviceID, logger)
	}
	emitter := telemetry.NewEmitter(transport, logger)

	term := sim.NewTerminal(os.Stdin, os.Stdout, logger)
	auth := nfc.NewAuthenticator(term, cfg.ReadAttempts, cfg.DebounceWindow.Std(), logger)
	mediator := input.NewMediator(logger)
	tokens := purchase.NewTokenSource()
	submitter := purchase.NewSubmitter(client, cfg.SubmitAttempts, cfg.SubmitBackoff.Std(), logger)

	machine := ui.NewMachine(ui.Config{
		MaxQuantity:       cfg.MaxQuantity,
		InactivityTimeout: cfg.InactivityTimeout.Std(),
		DisplayHold:       cfg.DisplayHold.Std(),
	}, cache, submitter, tokens, mediator, term, emitter, logger)

	emitter.Emit(telemetry.SystemStart(Version))

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		emitter.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		cache.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		auth.Run(ctx)
	}()
	// not in the wait group: a blocked stdin read cannot be interrupted
	go term.Run(ctx)
	go func() {
		defer wg.Done()
		mediator.Run(ctx, auth.Events(), term.Keys())
	}()

	// Populate the directory right away, the scheduled refresh only
	// fires after a full interval
	go func() {
		if err := cache.Refresh(ctx); err != nil {
			logger.Error("initial directory refresh failed", "error", err)
			emitter.Emit(telemetry.Failure("directory", err))
			return
		}
		users, articles := cache.Size()
		emitter.Emit(telemetry.DataRefreshed(users, articles, cache.Generation()))
	}()

	logger.Info("terminal ready", "version", Version)
	machine.Run(ctx, mediator.Events())

	stop()
	wg.Wait()
	logger.Info("terminal stopped")
	return nil
}

func printVersion() {
	fmt.Printf("touch-n-drink %s\n", Version)
	fmt.Printf("Build date: %s\n", BuildDate)
	fmt.Printf("Git commit: %s\n", GitCommit)
}
