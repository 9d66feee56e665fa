// Package daemon wires the snap engine to X11 and runs it until stopped.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/eventloop"
	"github.com/1broseidon/snaptile/internal/logging"
	"github.com/1broseidon/snaptile/internal/overlay"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/runtimepath"
	"github.com/1broseidon/snaptile/internal/snapmode"
)

// reconcileInterval is how often pairs of closed windows are forgotten.
const reconcileInterval = 10 * time.Second

// Options configures Run.
type Options struct {
	// ConfigPath overrides ~/.config/snaptile/config.yaml.
	ConfigPath string
	// LogLevel overrides logging.level when set.
	LogLevel string
	// NoWatch disables reloading on config file changes. SIGHUP still works.
	NoWatch bool
}

// Run starts the daemon and blocks until ctx is cancelled or SIGINT/SIGTERM
// arrives.
func Run(ctx context.Context, opts Options) error {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger, logCloser, err := logging.Open(level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logCloser.Close()
	logWarnings(logger, res.Warnings)

	lockPath, err := runtimepath.LockPath()
	if err != nil {
		return err
	}
	lock, err := runtimepath.AcquireLock(lockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := applyDisplayEnv(cfg, os.Setenv); err != nil {
		return err
	}
	backend, err := platform.NewLinuxBackendFromDisplay(logger)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	loop := eventloop.New()
	sched := snapmode.LoopScheduler(loop)
	preview := overlay.NewX11Preview(backend.XUtil(), backend.RootWindow(), sched, logger)
	engine := snapmode.New(backend, sched, preview, cfg, logger)

	pollInterval := cfg.PollInterval()
	loop.Post(engine.Enable)
	backend.StartDragTracking(loop, pollInterval)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncer := NewConfigSynchronizer(path, cfg, logger, func(next *config.Config) {
		loop.Post(func() {
			engine.UpdateConfig(next)
			if next.PollInterval() != pollInterval {
				pollInterval = next.PollInterval()
				backend.StopDragTracking()
				backend.StartDragTracking(loop, pollInterval)
			}
		})
	})

	reload := make(chan string, 1)
	if !opts.NoWatch {
		watcher, err := config.NewWatcher(path, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("config file watching disabled")
		} else {
			go watcher.Run(ctx, reload)
		}
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				_ = syncer.Reload("SIGHUP")
			case reason := <-reload:
				_ = syncer.Reload(reason)
			}
		}
	}()

	reconciler := NewReconciler(ReconcilerConfig{
		Interval: reconcileInterval,
		Logger:   logger,
	}, loop.Post, engine, WindowListerFromBackend(backend))
	go reconciler.Run(ctx)

	logger.Info().
		Str("config", path).
		Int("columns", cfg.GridColumns).
		Int("rows", cfg.GridRows).
		Bool("intelligent_spacing", cfg.IntelligentSpacing).
		Msg("snaptile daemon started")

	err = loop.RunX(ctx, backend.XUtil())

	// The loop has stopped, so teardown runs on what was the loop goroutine.
	backend.StopDragTracking()
	engine.Disable()
	preview.Close()
	loop.Drain()
	logger.Info().Msg("snaptile daemon stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
