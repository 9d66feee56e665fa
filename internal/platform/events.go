package platform

import (
	"sort"
	"sync"
)

// EventKind identifies a window-system notification.
type EventKind int

const (
	EventDragBegin EventKind = iota
	EventDragEnd
	// EventPositionChanged fires while a window is being moved.
	EventPositionChanged
	// EventGeometryChanged fires while a window is being resized.
	EventGeometryChanged
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventDragBegin:
		return "drag-begin"
	case EventDragEnd:
		return "drag-end"
	case EventPositionChanged:
		return "position-changed"
	case EventGeometryChanged:
		return "geometry-changed"
	default:
		return "unknown"
	}
}

// GrabOp is the kind of interactive operation the user started.
type GrabOp int

const (
	GrabNone GrabOp = iota
	GrabMoving
	GrabResizingN
	GrabResizingS
	GrabResizingE
	GrabResizingW
	GrabResizingNE
	GrabResizingNW
	GrabResizingSE
	GrabResizingSW
)

// String returns the string representation of the grab op
func (op GrabOp) String() string {
	switch op {
	case GrabMoving:
		return "moving"
	case GrabResizingN:
		return "resizing-n"
	case GrabResizingS:
		return "resizing-s"
	case GrabResizingE:
		return "resizing-e"
	case GrabResizingW:
		return "resizing-w"
	case GrabResizingNE:
		return "resizing-ne"
	case GrabResizingNW:
		return "resizing-nw"
	case GrabResizingSE:
		return "resizing-se"
	case GrabResizingSW:
		return "resizing-sw"
	default:
		return "none"
	}
}

// Resizing reports whether op is any resize grab.
func (op GrabOp) Resizing() bool {
	return op >= GrabResizingN && op <= GrabResizingSW
}

// Event is delivered to subscribers.
type Event struct {
	Kind   EventKind
	Window WindowID
	Op     GrabOp
	Bounds Rect
}

// Handler receives events.
type Handler func(Event)

// Token identifies a subscription. The zero token is never issued.
type Token uint64

// Bus is a subscription registry keyed by event kind and window. A
// subscription for window 0 receives the kind for every window.
type Bus struct {
	mu   sync.Mutex
	next Token
	subs map[Token]subscription
}

type subscription struct {
	kind EventKind
	win  WindowID
	h    Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Token]subscription)}
}

// Subscribe registers h and returns its token.
func (b *Bus) Subscribe(kind EventKind, win WindowID, h Handler) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.subs[b.next] = subscription{kind: kind, win: win, h: h}
	return b.next
}

// Unsubscribe removes a subscription. Unknown or already removed tokens
// are ignored.
func (b *Bus) Unsubscribe(tok Token) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, tok)
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish delivers ev to every matching subscriber in subscription order.
// Handlers run on the caller's goroutine and may subscribe or unsubscribe.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	var targets []Token
	for tok, s := range b.subs {
		if s.kind == ev.Kind && (s.win == 0 || s.win == ev.Window) {
			targets = append(targets, tok)
		}
	}
	b.mu.Unlock()

	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	for _, tok := range targets {
		b.mu.Lock()
		s, ok := b.subs[tok]
		b.mu.Unlock()
		if ok {
			s.h(ev)
		}
	}
}
