// Package eventloop provides the single goroutine on which the snap engine,
// the preview overlay and X event callbacks all run.
package eventloop

import (
	"context"
	"time"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Loop serializes tasks onto one goroutine. Post and AfterFunc may be
// called from any goroutine; tasks themselves always run on the loop.
type Loop struct {
	tasks chan func()
}

// New creates a loop. Nothing runs until Run or RunX is called.
func New() *Loop {
	return &Loop{tasks: make(chan func(), 64)}
}

// Post queues fn to run on the loop.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// Timer is a one-shot task scheduled by AfterFunc.
type Timer struct {
	t       *time.Timer
	stopped bool
	fired   bool
}

// AfterFunc runs fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	tm := &Timer{}
	tm.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if tm.stopped {
				return
			}
			tm.fired = true
			fn()
		})
	})
	return tm
}

// Stop cancels the timer. It must be called on the loop, which makes it
// race-free with the callback: once Stop returns, fn will not run. Stop
// reports whether it prevented the callback and is safe to call repeatedly.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}

// Drain runs every queued task without blocking. Intended for tests and
// for shutdown.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}

// Run executes tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// RunX executes tasks and X event callbacks on the same goroutine until
// ctx is done. While an X event is being dispatched the loop waits, so X
// callbacks and loop tasks never overlap.
func (l *Loop) RunX(ctx context.Context, xu *xgbutil.XUtil) error {
	before, after, quit := xevent.MainPing(xu)
	for {
		select {
		case <-ctx.Done():
			xevent.Quit(xu)
			return ctx.Err()
		case <-quit:
			return nil
		case <-before:
			<-after
		case fn := <-l.tasks:
			fn()
		}
	}
}
