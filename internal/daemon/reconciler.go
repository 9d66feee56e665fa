package daemon

import (
	"context"
	"time"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/rs/zerolog"
)

// WindowLister returns the IDs of the windows that currently exist.
type WindowLister func() ([]platform.WindowID, error)

// ClientSource lists every managed window, including those on other
// desktops.
type ClientSource interface {
	ClientWindows() ([]platform.WindowID, error)
}

// WindowListerFromBackend lists the backend's managed windows on all
// desktops.
func WindowListerFromBackend(b ClientSource) WindowLister {
	return b.ClientWindows
}

// PairPruner drops snap pairs whose windows are gone.
type PairPruner interface {
	PrunePairs(alive func(platform.WindowID) bool) int
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   zerolog.Logger
}

// Reconciler periodically forgets pairs of windows that were closed.
type Reconciler struct {
	interval    time.Duration
	post        func(func())
	pairs       PairPruner
	listWindows WindowLister
	log         zerolog.Logger
}

// NewReconciler creates a reconciler. Each pass is handed to post so it runs
// on the same goroutine as the engine.
func NewReconciler(cfg ReconcilerConfig, post func(func()), pairs PairPruner, listWindows WindowLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Reconciler{
		interval:    interval,
		post:        post,
		pairs:       pairs,
		listWindows: listWindows,
		log:         cfg.Logger.With().Str("component", "reconciler").Logger(),
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Debug().Dur("interval", r.interval).Msg("reconciler started")

	for {
		select {
		case <-ctx.Done():
			r.log.Debug().Msg("reconciler stopped")
			return
		case <-ticker.C:
			r.post(func() { r.reconcile() })
		}
	}
}

// ReconcileNow performs a pass on the calling goroutine.
func (r *Reconciler) ReconcileNow() int {
	return r.reconcile()
}

func (r *Reconciler) reconcile() int {
	ids, err := r.listWindows()
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to list windows")
		return 0
	}

	alive := make(map[platform.WindowID]bool, len(ids))
	for _, id := range ids {
		alive[id] = true
	}
	dropped := r.pairs.PrunePairs(func(w platform.WindowID) bool { return alive[w] })
	if dropped > 0 {
		r.log.Info().Int("pairs", dropped).Msg("forgot pairs of closed windows")
	}
	return dropped
}
