package snapmode

import (
	"fmt"
	"time"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
)

type fakeBackend struct {
	bus      *platform.Bus
	displays []platform.Display
	pointer  tiling.Point
	order    []platform.WindowID
	windows  map[platform.WindowID]*platform.Window
	calls    []string
	// clamp adjusts a requested geometry the way a window manager might.
	clamp func(id platform.WindowID, r tiling.Rect) tiling.Rect
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	screen := tiling.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	return &fakeBackend{
		bus:      platform.NewBus(),
		displays: []platform.Display{{ID: 0, Name: "fake", Bounds: screen, Usable: screen}},
		windows:  make(map[platform.WindowID]*platform.Window),
	}
}

// add places a normal window on top of the stack.
func (b *fakeBackend) add(id platform.WindowID, r tiling.Rect) *platform.Window {
	w := &platform.Window{ID: id, Bounds: r, Type: platform.WindowNormal}
	b.windows[id] = w
	b.order = append(b.order, id)
	return w
}

func (b *fakeBackend) Displays() ([]platform.Display, error) {
	return b.displays, nil
}

func (b *fakeBackend) Pointer() (tiling.Point, error) {
	return b.pointer, nil
}

func (b *fakeBackend) Window(id platform.WindowID) (platform.Window, error) {
	w, ok := b.windows[id]
	if !ok {
		return platform.Window{}, fmt.Errorf("window 0x%x not found", uint32(id))
	}
	out := *w
	out.Stack = -1
	for i, o := range b.order {
		if o == id {
			out.Stack = i
		}
	}
	out.Display = platform.DisplayIDFor(b.displays, out.Bounds)
	return out, nil
}

func (b *fakeBackend) StackedWindows() ([]platform.Window, error) {
	var out []platform.Window
	for _, id := range b.order {
		if _, ok := b.windows[id]; !ok {
			continue
		}
		w, _ := b.Window(id)
		w.Stack = len(out)
		out = append(out, w)
	}
	return out, nil
}

func (b *fakeBackend) Maximize(id platform.WindowID) error {
	b.calls = append(b.calls, fmt.Sprintf("maximize %d", id))
	return nil
}

func (b *fakeBackend) Unmaximize(id platform.WindowID) error {
	b.calls = append(b.calls, fmt.Sprintf("unmaximize %d", id))
	return nil
}

func (b *fakeBackend) MoveResize(id platform.WindowID, r tiling.Rect) error {
	b.calls = append(b.calls, fmt.Sprintf("move %d %d,%d %dx%d", id, r.X, r.Y, r.Width, r.Height))
	w, ok := b.windows[id]
	if !ok {
		return fmt.Errorf("window 0x%x not found", uint32(id))
	}
	if b.clamp != nil {
		r = b.clamp(id, r)
	}
	w.Bounds = r
	return nil
}

func (b *fakeBackend) Subscribe(kind platform.EventKind, win platform.WindowID, h platform.Handler) platform.Token {
	return b.bus.Subscribe(kind, win, h)
}

func (b *fakeBackend) Unsubscribe(tok platform.Token) {
	b.bus.Unsubscribe(tok)
}

// emit publishes ev the way the drag tracker would.
func (b *fakeBackend) emit(kind platform.EventKind, win platform.WindowID, op platform.GrabOp) {
	var bounds tiling.Rect
	if w, ok := b.windows[win]; ok {
		bounds = w.Bounds
	}
	b.bus.Publish(platform.Event{Kind: kind, Window: win, Op: op, Bounds: bounds})
}

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	t := &manualTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every pending timer.
func (s *manualScheduler) fire() int {
	n := 0
	for _, t := range s.timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.fn()
		n++
	}
	return n
}

func (s *manualScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingPreview logs calls. With async set, Hide completions are held
// until finish is called.
type recordingPreview struct {
	events  []string
	visible bool
	async   bool
	waiting []func()
	closed  bool
}

func (p *recordingPreview) Show(r tiling.Rect, _ Style) {
	p.events = append(p.events, fmt.Sprintf("show %d,%d %dx%d", r.X, r.Y, r.Width, r.Height))
	p.visible = true
}

func (p *recordingPreview) Hide(done func()) {
	if !p.visible {
		done()
		return
	}
	p.events = append(p.events, "hide")
	p.visible = false
	if p.async {
		p.waiting = append(p.waiting, done)
		return
	}
	done()
}

func (p *recordingPreview) Close() {
	p.closed = true
}

func (p *recordingPreview) finish() {
	waiting := p.waiting
	p.waiting = nil
	for _, done := range waiting {
		done()
	}
}
