package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fazai/fazai-dash/audio"
	"github.com/fazai/fazai-dash/config"
	"github.com/fazai/fazai-dash/dashboard"
	"github.com/fazai/fazai-dash/input"
	"github.com/fazai/fazai-dash/provider"
	"github.com/fazai/fazai-dash/stats"
	"github.com/fazai/fazai-dash/terminal"
)

// runDashboard owns the terminal for the whole interactive session
func runDashboard(ctx context.Context, cfg config.Config, demo bool) error {
	runID := newRunID()
	logFile, logger := setupLogging(cfg.DebugEnabled(), cfg.Log.File, runID)
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Info("starting", "version", version, "driver", cfg.Driver, "color", cfg.Color, "poll", cfg.Poll, "demo", demo)

	keys, err := input.LoadKeyTable(cfg.Keymap)
	if err != nil {
		return fmt.Errorf("keymap: %w", err)
	}

	term, err := newTerminal(cfg)
	if err != nil {
		return err
	}

	reg := stats.NewRegistry()
	reg.Strings.Get(stats.Driver).Store(cfg.Driver)
	reg.Strings.Get(stats.RunID).Store(runID[:8])

	alerter := audio.New(cfg.SoundEnabled(), cfg.Alert.Volume, logger)
	defer alerter.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	hub := buildHub(cfg, demo, logger)
	provCtx, stopProviders := context.WithCancel(ctx)
	var providers errgroup.Group
	providers.Go(func() error { return hub.Run(provCtx) })

	runErr := terminal.WithSession(term, func(s *terminal.Session) error {
		src := input.NewSource(s.Terminal(), keys)
		loop := dashboard.New(s, src, hub, dashboard.Options{
			Poll:    cfg.Poll,
			Alerter: alerter,
			Stats:   reg,
			Log:     logger,
			Clock:   time.Now,
		})
		return loop.Run(ctx)
	})

	stopProviders()
	provErr := providers.Wait()

	switch {
	case runErr != nil:
		logger.Error("dashboard stopped", "error", runErr)
		return runErr
	case provErr != nil:
		logger.Error("providers failed", "error", provErr)
		return provErr
	}
	logger.Info("quit", "frames", reg.Ints.Get(stats.Frames).Load())
	return nil
}

// buildHub wires the live providers, or fixed sample data for demo mode
func buildHub(cfg config.Config, demo bool, log *slog.Logger) *provider.Hub {
	if demo {
		d := provider.Demo(time.Now())
		return provider.NewHub(d, d, d, log)
	}
	return provider.NewHub(
		provider.NewFileLogs(cfg.Logs.Path, cfg.Logs.Lines, log),
		provider.NewSystemStatus(cfg.Status.Checks, cfg.Status.Interval, log),
		provider.NewProcMetrics(cfg.Metrics.Interval, cfg.Metrics.History, log),
		log,
	)
}

func newTerminal(cfg config.Config) (terminal.Terminal, error) {
	mode := terminal.ParseColorMode(cfg.Color)
	if cfg.Driver == config.DriverTcell {
		return terminal.NewTcell(mode)
	}
	return terminal.New(mode), nil
}
