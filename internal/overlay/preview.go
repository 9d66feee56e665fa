// Package overlay draws the translucent snap preview.
package overlay

import (
	"math"
	"time"

	"github.com/1broseidon/snaptile/internal/snapmode"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/rs/zerolog"
)

// frameInterval is the delay between fade steps.
const frameInterval = 16 * time.Millisecond

// surface is the drawable behind a Preview.
type surface interface {
	// Place positions and colours the preview and maps it fully transparent.
	Place(rect tiling.Rect, style snapmode.Style) error
	// SetOpacity scales the style alphas by level in [0, 1].
	SetOpacity(level float64)
	Unmap()
	Destroy()
}

type fadeState int

const (
	stateHidden fadeState = iota
	stateFadingIn
	stateVisible
	stateFadingOut
)

// Preview is a snapmode.Previewer that fades a surface in and out with
// steps scheduled on the event loop.
type Preview struct {
	surf  surface
	sched snapmode.Scheduler
	log   zerolog.Logger

	state   fadeState
	level   float64
	fadeOut time.Duration
	timer   snapmode.Stopper
	done    []func()
}

var _ snapmode.Previewer = (*Preview)(nil)

func newPreview(surf surface, sched snapmode.Scheduler, logger zerolog.Logger) *Preview {
	return &Preview{surf: surf, sched: sched, log: logger}
}

// Show places the preview at rect and fades it in.
func (p *Preview) Show(rect tiling.Rect, style snapmode.Style) {
	p.stop()
	if p.state == stateFadingOut {
		// A show that overtakes a fade-out completes it first.
		p.surf.Unmap()
		p.level = 0
		p.flush()
	}

	if err := p.surf.Place(rect, style); err != nil {
		p.log.Warn().Err(err).Msg("preview placement failed")
		p.state = stateHidden
		return
	}
	if p.state == stateHidden {
		p.level = 0
	}
	p.surf.SetOpacity(p.level)
	p.fadeOut = style.FadeOut
	p.state = stateFadingIn
	p.animate(1, style.FadeIn, func() {
		p.state = stateVisible
	})
}

// Hide fades the preview out, unmaps it and then calls done.
func (p *Preview) Hide(done func()) {
	if done != nil {
		p.done = append(p.done, done)
	}
	switch p.state {
	case stateHidden:
		p.flush()
		return
	case stateFadingOut:
		return
	}

	p.stop()
	p.state = stateFadingOut
	p.animate(0, p.fadeOut, func() {
		p.surf.Unmap()
		p.state = stateHidden
		p.flush()
	})
}

// Close cancels any fade and destroys the surface. Pending Hide callbacks
// are dropped.
func (p *Preview) Close() {
	p.stop()
	p.done = nil
	p.state = stateHidden
	p.surf.Destroy()
}

func (p *Preview) stop() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Preview) flush() {
	done := p.done
	p.done = nil
	for _, fn := range done {
		fn()
	}
}

// animate steps the opacity to target over d and then calls finish.
func (p *Preview) animate(target float64, d time.Duration, finish func()) {
	steps := fadeSteps(p.level, target, d, frameInterval)
	if len(steps) == 0 {
		p.level = target
		p.surf.SetOpacity(target)
		finish()
		return
	}

	var tick func()
	tick = func() {
		p.timer = nil
		p.level = steps[0]
		steps = steps[1:]
		p.surf.SetOpacity(p.level)
		if len(steps) == 0 {
			finish()
			return
		}
		p.timer = p.sched.AfterFunc(frameInterval, tick)
	}
	p.timer = p.sched.AfterFunc(frameInterval, tick)
}

// fadeSteps returns the opacity levels of a fade from one level to another
// lasting d, one per frame, eased out quadratically. The last level is
// always to. A non-positive d yields no steps.
func fadeSteps(from, to float64, d, frame time.Duration) []float64 {
	if d <= 0 || frame <= 0 {
		return nil
	}
	n := int(math.Ceil(float64(d) / float64(frame)))
	steps := make([]float64, n)
	for i := range steps {
		t := float64(i+1) / float64(n)
		steps[i] = from + (to-from)*t*(2-t)
	}
	steps[n-1] = to
	return steps
}
