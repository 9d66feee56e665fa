// Package snapmode turns window drags into snap previews and commits, and
// keeps paired windows flush while one of them is resized.
//
// Every Engine method and every callback it registers runs on the daemon's
// event loop, so the engine holds no locks.
package snapmode

import (
	"fmt"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/rs/zerolog"
)

type resizeWatch struct {
	window platform.WindowID
	op     platform.GrabOp
	tok    platform.Token
}

// Engine is the snap controller.
type Engine struct {
	backend platform.Backend
	sched   Scheduler
	preview Previewer
	cfg     *config.Config
	log     zerolog.Logger

	enabled bool
	tokens  []platform.Token
	session *Session
	resize  *resizeWatch
	pairs   PairSet

	// Preview bookkeeping. gen invalidates queued shows; pending is the
	// show waiting for a fade-out to finish.
	gen     uint64
	shown   bool
	hiding  bool
	pending func()
}

// New creates an engine. It does nothing until Enable is called.
func New(backend platform.Backend, sched Scheduler, preview Previewer, cfg *config.Config, logger zerolog.Logger) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Engine{
		backend: backend,
		sched:   sched,
		preview: preview,
		cfg:     cfg,
		log:     logger.With().Str("component", "snap").Logger(),
	}
}

// Enable subscribes to drag notifications. Calling it again is a no-op.
func (e *Engine) Enable() {
	if e.enabled {
		return
	}
	e.enabled = true
	e.tokens = append(e.tokens,
		e.backend.Subscribe(platform.EventDragBegin, 0, e.onDragBegin),
		e.backend.Subscribe(platform.EventDragEnd, 0, e.onDragEnd),
	)
	e.log.Debug().Msg("snapping enabled")
}

// Disable releases every subscription, cancels the arm timer, removes the
// preview and forgets all pairs. Calling it again is a no-op.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.enabled = false

	for _, tok := range e.tokens {
		e.backend.Unsubscribe(tok)
	}
	e.tokens = nil

	if s := e.session; s != nil {
		s.stopTimer()
		e.backend.Unsubscribe(s.moveTok)
		e.session = nil
	}
	if r := e.resize; r != nil {
		e.backend.Unsubscribe(r.tok)
		e.resize = nil
	}

	e.clearPreview()
	e.pairs.Clear()
	e.log.Debug().Msg("snapping disabled")
}

// Enabled reports whether the engine is subscribed to drags.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// UpdateConfig replaces the configuration used by later evaluations.
func (e *Engine) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.cfg = cfg
}

// Session returns the active session, or nil when idle.
func (e *Engine) Session() *Session {
	return e.session
}

// Phase returns the phase of the active session.
func (e *Engine) Phase() Phase {
	if e.session == nil {
		return PhaseIdle
	}
	return e.session.Phase
}

// Pairs returns the committed pairs.
func (e *Engine) Pairs() []Pair {
	return e.pairs.All()
}

// PrunePairs drops every pair with a member for which alive reports false
// and returns how many pairs were dropped.
func (e *Engine) PrunePairs(alive func(platform.WindowID) bool) int {
	dropped := 0
	for _, p := range e.pairs.All() {
		if alive(p.A) && alive(p.B) {
			continue
		}
		e.pairs.RemoveWindow(p.A)
		dropped++
		e.log.Debug().
			Str("window", formatWindow(p.A)).
			Str("partner", formatWindow(p.B)).
			Msg("dropped pair of closed window")
	}
	return dropped
}

func (e *Engine) onDragBegin(ev platform.Event) {
	win, err := e.backend.Window(ev.Window)
	if err != nil {
		e.log.Debug().Err(err).Str("window", formatWindow(ev.Window)).Msg("drag on unknown window")
		return
	}
	if !win.Normal() {
		return
	}

	switch {
	case ev.Op == platform.GrabMoving:
		e.beginMove(win.ID)
	case ev.Op.Resizing():
		e.beginResize(win.ID, ev.Op)
	}
}

func (e *Engine) onDragEnd(ev platform.Event) {
	switch {
	case ev.Op == platform.GrabMoving:
		if s := e.session; s != nil && s.Window == ev.Window {
			e.finishMove(s)
		}
	case ev.Op.Resizing():
		if r := e.resize; r != nil && r.window == ev.Window {
			e.backend.Unsubscribe(r.tok)
			e.resize = nil
		}
	}
}

func (e *Engine) beginMove(win platform.WindowID) {
	if e.session != nil {
		e.abandon(e.session)
	}

	// A window that moves loses its pairing straight away.
	e.pairs.RemoveWindow(win)

	s := newSession(win, e.log)
	e.session = s
	s.moveTok = e.backend.Subscribe(platform.EventPositionChanged, win, e.onMoved)
	s.timer = e.sched.AfterFunc(e.cfg.ArmDelay(), func() { e.arm(s) })
	s.log.Debug().Dur("delay", e.cfg.ArmDelay()).Msg("drag armed")
}

func (e *Engine) arm(s *Session) {
	if e.session != s || s.Phase != PhaseArmed {
		return
	}
	s.timer = nil
	s.Phase = PhaseTracking

	t, monitor, ok := e.locate(s.Window)
	if !ok {
		return
	}
	s.Target = t
	e.showPreview(s, t, monitor)
}

func (e *Engine) onMoved(ev platform.Event) {
	s := e.session
	if s == nil || s.Window != ev.Window || s.Phase != PhaseTracking {
		return
	}

	t, monitor, ok := e.locate(s.Window)
	if !ok {
		if s.Target.Valid() {
			s.Target = tiling.Target{}
			e.clearPreview()
		}
		return
	}
	if t.Equal(s.Target) {
		return
	}
	s.Target = t
	e.showPreview(s, t, monitor)
}

func (e *Engine) finishMove(s *Session) {
	s.stopTimer()
	if s.Phase == PhaseTracking {
		if t, monitor, ok := e.locate(s.Window); ok {
			e.commit(s, t, monitor)
		}
	}
	e.abandon(s)
}

// abandon ends s without committing.
func (e *Engine) abandon(s *Session) {
	s.stopTimer()
	e.backend.Unsubscribe(s.moveTok)
	e.clearPreview()
	if e.session == s {
		e.session = nil
	}
}

func (e *Engine) commit(s *Session, t tiling.Target, monitor tiling.Rect) {
	log := s.log.With().Str("target", t.String()).Logger()
	win := s.Window

	if t.Kind == tiling.TargetMaximize {
		if err := e.backend.Maximize(win); err != nil {
			log.Warn().Err(err).Msg("maximize failed")
			return
		}
		log.Info().Msg("snapped")
		return
	}

	opts := e.cfg.SnapOptions()
	rect := t.Rect(monitor, opts.Columns, opts.Rows)

	if t.Kind == tiling.TargetEdge {
		e.pairs.Add(Pair{A: win, B: platform.WindowID(t.Pair.Neighbor), Edge: t.Pair.Edge})
	}

	if rect.SameSize(monitor) {
		if err := e.backend.Maximize(win); err != nil {
			log.Warn().Err(err).Msg("maximize failed")
			return
		}
		log.Info().Msg("snapped")
		return
	}

	if err := e.backend.Unmaximize(win); err != nil {
		log.Warn().Err(err).Msg("unmaximize failed")
	}
	if err := e.backend.MoveResize(win, rect); err != nil {
		log.Warn().Err(err).Msg("move failed")
		return
	}
	log.Info().
		Int("x", rect.X).Int("y", rect.Y).
		Int("width", rect.Width).Int("height", rect.Height).
		Msg("snapped")
}

func (e *Engine) beginResize(win platform.WindowID, op platform.GrabOp) {
	if _, ok := e.pairs.Find(win); !ok {
		return
	}
	if r := e.resize; r != nil {
		e.backend.Unsubscribe(r.tok)
	}
	e.resize = &resizeWatch{
		window: win,
		op:     op,
		tok:    e.backend.Subscribe(platform.EventGeometryChanged, win, e.onResized),
	}
}

func (e *Engine) onResized(ev platform.Event) {
	r := e.resize
	if r == nil || r.window != ev.Window {
		return
	}
	p, ok := e.pairs.Find(ev.Window)
	if !ok {
		return
	}

	adjusted, err := Propagate(e.backend, p, ev.Window, r.op, ev.Bounds)
	if err != nil {
		e.log.Warn().Err(err).Str("window", formatWindow(ev.Window)).Msg("paired resize")
	}
	if adjusted {
		e.log.Debug().
			Str("window", formatWindow(ev.Window)).
			Str("partner", formatWindow(p.Partner(ev.Window))).
			Msg("realigned to partner edge")
	}
}

// locate evaluates the snap target for win at the current pointer.
func (e *Engine) locate(win platform.WindowID) (tiling.Target, tiling.Rect, bool) {
	p, err := e.backend.Pointer()
	if err != nil {
		e.log.Debug().Err(err).Msg("pointer query failed")
		return tiling.Target{}, tiling.Rect{}, false
	}
	t, d, ok, err := LocateAt(e.backend, p, win, e.cfg.SnapOptions())
	if err != nil {
		e.log.Debug().Err(err).Msg("locate failed")
		return tiling.Target{}, tiling.Rect{}, false
	}
	return t, d.Usable, ok
}

// LocateAt finds the snap target at p for a drag of exclude. The monitor
// is the work area of the display under p.
func LocateAt(b platform.Backend, p tiling.Point, exclude platform.WindowID, opts tiling.Options) (tiling.Target, platform.Display, bool, error) {
	displays, err := b.Displays()
	if err != nil {
		return tiling.Target{}, platform.Display{}, false, err
	}
	d, ok := platform.DisplayAt(displays, p)
	if !ok {
		return tiling.Target{}, platform.Display{}, false, fmt.Errorf("no display at %d,%d", p.X, p.Y)
	}

	// Without a window list only edge snapping is lost.
	windows, _ := b.StackedWindows()
	t, ok := tiling.Locate(p, d.Usable, opts, Candidates(windows, exclude, d.ID))
	return t, d, ok, nil
}

// Candidates filters a back-to-front window list down to the windows that
// can be snapped against on display. Stack keeps the rank in the full list.
func Candidates(windows []platform.Window, exclude platform.WindowID, display int) []tiling.Candidate {
	out := make([]tiling.Candidate, 0, len(windows))
	for _, w := range windows {
		if w.ID == exclude || !w.Normal() || w.Minimized || w.Display != display {
			continue
		}
		out = append(out, tiling.Candidate{ID: uint32(w.ID), Rect: w.Bounds, Stack: w.Stack})
	}
	return out
}

// showPreview replaces whatever is shown with t. The old preview finishes
// fading out before the new one appears.
func (e *Engine) showPreview(s *Session, t tiling.Target, monitor tiling.Rect) {
	opts := e.cfg.SnapOptions()
	rect := t.Rect(monitor, opts.Columns, opts.Rows)
	style := StyleFromConfig(e.cfg)

	e.gen++
	gen := e.gen
	show := func() {
		if gen != e.gen || e.session != s {
			return
		}
		e.preview.Show(rect, style)
		e.shown = true
	}

	e.pending = nil
	if e.shown {
		e.beginHide()
	}
	if e.hiding {
		e.pending = show
		return
	}
	show()
}

func (e *Engine) clearPreview() {
	e.gen++
	e.pending = nil
	if e.shown {
		e.beginHide()
	}
}

func (e *Engine) beginHide() {
	e.shown = false
	e.hiding = true
	e.preview.Hide(func() {
		e.hiding = false
		if p := e.pending; p != nil {
			e.pending = nil
			p()
		}
	})
}
