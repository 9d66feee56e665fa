package eventloop

import (
	"context"
	"testing"
	"time"
)

func TestPostRunsOnLoop(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	l.Post(func() { close(done) })
	go l.Run(ctx)
	defer cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("posted task did not run")
	}
}

func TestTimerStopPreventsCallback(t *testing.T) {
	l := New()
	fired := false
	tm := l.AfterFunc(5*time.Millisecond, func() { fired = true })

	if !tm.Stop() {
		t.Fatalf("expected first Stop to report cancellation")
	}
	if tm.Stop() {
		t.Fatalf("expected second Stop to be a no-op")
	}

	time.Sleep(20 * time.Millisecond)
	l.Drain()
	if fired {
		t.Fatalf("stopped timer fired")
	}
}

func TestTimerStopAfterQueuedFireIsRaceFree(t *testing.T) {
	l := New()
	fired := false
	tm := l.AfterFunc(time.Millisecond, func() { fired = true })

	// Let the timer post its task but do not run the loop yet.
	time.Sleep(20 * time.Millisecond)
	tm.Stop()
	l.Drain()

	if fired {
		t.Fatalf("callback ran after Stop even though it had not been dispatched")
	}
}

func TestTimerFires(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})

	tm := l.AfterFunc(time.Millisecond, func() { close(done) })
	go l.Run(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timer did not fire")
	}

	stopped := make(chan bool, 1)
	l.Post(func() { stopped <- tm.Stop() })
	if <-stopped {
		t.Fatalf("Stop after firing should report false")
	}
}

func TestNilTimerStop(t *testing.T) {
	var tm *Timer
	if tm.Stop() {
		t.Fatalf("nil timer Stop should be a no-op")
	}
}
