package overlay

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/1broseidon/snaptile/internal/snapmode"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/rs/zerolog"
)

type fakeSurface struct {
	placed    []tiling.Rect
	opacity   []float64
	mapped    bool
	destroyed bool
	placeErr  error
}

func (s *fakeSurface) Place(rect tiling.Rect, _ snapmode.Style) error {
	if s.placeErr != nil {
		return s.placeErr
	}
	s.placed = append(s.placed, rect)
	s.mapped = true
	return nil
}

func (s *fakeSurface) SetOpacity(level float64) { s.opacity = append(s.opacity, level) }
func (s *fakeSurface) Unmap()                   { s.mapped = false }
func (s *fakeSurface) Destroy()                 { s.destroyed = true; s.mapped = false }

func (s *fakeSurface) last() float64 {
	if len(s.opacity) == 0 {
		return math.NaN()
	}
	return s.opacity[len(s.opacity)-1]
}

type stepTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *stepTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type stepScheduler struct {
	timers []*stepTimer
}

func (s *stepScheduler) AfterFunc(_ time.Duration, fn func()) snapmode.Stopper {
	t := &stepTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// run fires timers until none are pending and returns how many fired.
func (s *stepScheduler) run() int {
	n := 0
	for {
		var next *stepTimer
		for _, t := range s.timers {
			if !t.stopped && !t.fired {
				next = t
				break
			}
		}
		if next == nil {
			return n
		}
		next.fired = true
		next.fn()
		n++
	}
}

// step fires one pending timer.
func (s *stepScheduler) step() bool {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.fn()
			return true
		}
	}
	return false
}

func testStyle() snapmode.Style {
	return snapmode.Style{BorderWidth: 2, FadeIn: 150 * time.Millisecond, FadeOut: 100 * time.Millisecond}
}

func TestFadeSteps(t *testing.T) {
	steps := fadeSteps(0, 1, 150*time.Millisecond, 16*time.Millisecond)
	if len(steps) != 10 {
		t.Fatalf("expected 10 steps, got %d", len(steps))
	}
	if steps[len(steps)-1] != 1 {
		t.Fatalf("expected to end at 1, got %v", steps[len(steps)-1])
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] <= steps[i-1] {
			t.Fatalf("steps not increasing: %v", steps)
		}
	}

	down := fadeSteps(1, 0, 100*time.Millisecond, 16*time.Millisecond)
	if len(down) != 7 || down[len(down)-1] != 0 {
		t.Fatalf("unexpected fade out %v", down)
	}
	if fadeSteps(0, 1, 0, 16*time.Millisecond) != nil {
		t.Fatalf("expected no steps for zero duration")
	}
}

func TestPreview_ShowFadesIn(t *testing.T) {
	surf := &fakeSurface{}
	sched := &stepScheduler{}
	p := newPreview(surf, sched, zerolog.Nop())

	p.Show(tiling.Rect{X: 0, Y: 0, Width: 500, Height: 800}, testStyle())
	if surf.last() != 0 {
		t.Fatalf("expected preview to start transparent, got %v", surf.last())
	}
	if n := sched.run(); n != 10 {
		t.Fatalf("expected 10 fade steps, got %d", n)
	}
	if surf.last() != 1 || p.state != stateVisible {
		t.Fatalf("expected fully visible, got level=%v state=%v", surf.last(), p.state)
	}
}

func TestPreview_HideCallsDoneAfterFadeOut(t *testing.T) {
	surf := &fakeSurface{}
	sched := &stepScheduler{}
	p := newPreview(surf, sched, zerolog.Nop())

	p.Show(tiling.Rect{Width: 100, Height: 100}, testStyle())
	sched.run()

	called := 0
	p.Hide(func() { called++ })
	if called != 0 || !surf.mapped {
		t.Fatalf("done ran before the fade finished")
	}
	p.Hide(func() { called++ })
	sched.run()
	if called != 2 {
		t.Fatalf("expected both callbacks, got %d", called)
	}
	if surf.mapped || surf.last() != 0 {
		t.Fatalf("expected unmapped and transparent")
	}
}

func TestPreview_HideWhenHiddenIsImmediate(t *testing.T) {
	p := newPreview(&fakeSurface{}, &stepScheduler{}, zerolog.Nop())
	called := false
	p.Hide(func() { called = true })
	if !called {
		t.Fatalf("expected immediate callback")
	}
	p.Hide(nil)
}

func TestPreview_HideDuringFadeInReversesFromCurrentLevel(t *testing.T) {
	surf := &fakeSurface{}
	sched := &stepScheduler{}
	p := newPreview(surf, sched, zerolog.Nop())

	p.Show(tiling.Rect{Width: 100, Height: 100}, testStyle())
	sched.step()
	sched.step()
	mid := surf.last()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected partial opacity, got %v", mid)
	}

	done := false
	p.Hide(func() { done = true })
	sched.step()
	if surf.last() >= mid {
		t.Fatalf("expected fade out to start below %v, got %v", mid, surf.last())
	}
	sched.run()
	if !done || surf.mapped {
		t.Fatalf("expected hidden after fade out")
	}
}

func TestPreview_ShowDuringFadeOutCompletesHide(t *testing.T) {
	surf := &fakeSurface{}
	sched := &stepScheduler{}
	p := newPreview(surf, sched, zerolog.Nop())

	p.Show(tiling.Rect{Width: 100, Height: 100}, testStyle())
	sched.run()
	done := false
	p.Hide(func() { done = true })
	sched.step()

	p.Show(tiling.Rect{X: 10, Width: 100, Height: 100}, testStyle())
	if !done {
		t.Fatalf("expected pending hide callback to run")
	}
	if surf.last() != 0 {
		t.Fatalf("expected new preview to start transparent")
	}
	sched.run()
	if p.state != stateVisible || len(surf.placed) != 2 {
		t.Fatalf("expected second preview visible, state=%v placed=%v", p.state, surf.placed)
	}
}

func TestPreview_ZeroFadeIsInstant(t *testing.T) {
	surf := &fakeSurface{}
	sched := &stepScheduler{}
	p := newPreview(surf, sched, zerolog.Nop())

	style := testStyle()
	style.FadeIn = 0
	style.FadeOut = 0
	p.Show(tiling.Rect{Width: 100, Height: 100}, style)
	if surf.last() != 1 || len(sched.timers) != 0 {
		t.Fatalf("expected instant show")
	}
	done := false
	p.Hide(func() { done = true })
	if !done || surf.mapped {
		t.Fatalf("expected instant hide")
	}
}

func TestPreview_PlacementFailureLeavesHidden(t *testing.T) {
	surf := &fakeSurface{placeErr: errors.New("no display")}
	p := newPreview(surf, &stepScheduler{}, zerolog.Nop())

	p.Show(tiling.Rect{Width: 100, Height: 100}, testStyle())
	done := false
	p.Hide(func() { done = true })
	if !done {
		t.Fatalf("expected hide to complete immediately")
	}
}

func TestPreview_CloseDropsCallbacks(t *testing.T) {
	surf := &fakeSurface{}
	sched := &stepScheduler{}
	p := newPreview(surf, sched, zerolog.Nop())

	p.Show(tiling.Rect{Width: 100, Height: 100}, testStyle())
	called := false
	p.Hide(func() { called = true })
	p.Close()
	if sched.run() != 0 {
		t.Fatalf("expected fade cancelled")
	}
	if called || !surf.destroyed {
		t.Fatalf("expected surface destroyed without callbacks")
	}
}

func TestOpacityValue(t *testing.T) {
	if opacityValue(-1) != 0 || opacityValue(0) != 0 {
		t.Fatalf("expected 0 for non-positive alpha")
	}
	if opacityValue(2) != 0xffffffff {
		t.Fatalf("expected max for alpha above 1")
	}
	if v := opacityValue(0.5); v < 0x7fffffff || v > 0x80000000 {
		t.Fatalf("unexpected half opacity %x", v)
	}
}
