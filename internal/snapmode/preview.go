package snapmode

import (
	"time"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/eventloop"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Style is how a preview is drawn.
type Style struct {
	Border      config.Color
	Fill        config.Color
	BorderWidth int
	FadeIn      time.Duration
	FadeOut     time.Duration
}

// StyleFromConfig builds the preview style from cfg.
func StyleFromConfig(cfg *config.Config) Style {
	border, fill := cfg.PreviewColors()
	return Style{
		Border:      border,
		Fill:        fill,
		BorderWidth: cfg.Preview.BorderWidth,
		FadeIn:      cfg.FadeIn(),
		FadeOut:     cfg.FadeOut(),
	}
}

// Previewer draws the snap preview. Calls are made from the event loop.
type Previewer interface {
	// Show displays rect with a fade-in.
	Show(rect tiling.Rect, style Style)
	// Hide fades the preview out and then calls done. When nothing is
	// visible done runs immediately.
	Hide(done func())
	// Close releases any resources held by the previewer.
	Close()
}

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Scheduler runs callbacks later on the caller's event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Stopper
}

type loopScheduler struct {
	loop *eventloop.Loop
}

// LoopScheduler schedules callbacks on loop.
func LoopScheduler(loop *eventloop.Loop) Scheduler {
	return loopScheduler{loop: loop}
}

func (s loopScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	return s.loop.AfterFunc(d, fn)
}
