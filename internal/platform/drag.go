package platform

// ClassifyGrab infers the grab operation from how a window's frame changed
// since the button went down. A pure translation is a move; otherwise the
// edges that moved name the resize handle.
func ClassifyGrab(prev, cur Rect) GrabOp {
	if prev == cur {
		return GrabNone
	}
	if prev.SameSize(cur) {
		return GrabMoving
	}

	left := cur.X != prev.X
	right := cur.Right() != prev.Right() && !left
	top := cur.Y != prev.Y
	bottom := cur.Bottom() != prev.Bottom() && !top

	switch {
	case top && left:
		return GrabResizingNW
	case top && right:
		return GrabResizingNE
	case bottom && left:
		return GrabResizingSW
	case bottom && right:
		return GrabResizingSE
	case top:
		return GrabResizingN
	case bottom:
		return GrabResizingS
	case left:
		return GrabResizingW
	case right:
		return GrabResizingE
	default:
		return GrabNone
	}
}

// DragSample is one observation of pointer and active window state.
type DragSample struct {
	Pressed bool
	Window  WindowID
	Bounds  Rect
}

type dragPhase int

const (
	dragIdle dragPhase = iota
	dragPressed
	dragActive
)

// DragTracker turns periodic samples into drag events. It holds no
// references to the window system and is driven by the backend poller.
type DragTracker struct {
	phase    dragPhase
	win      WindowID
	op       GrabOp
	baseline Rect
	last     Rect
}

// Active reports whether a drag is in progress and returns its window and op.
func (t *DragTracker) Active() (WindowID, GrabOp, bool) {
	if t.phase != dragActive {
		return 0, GrabNone, false
	}
	return t.win, t.op, true
}

// Feed consumes a sample and returns the events it implies, in order.
func (t *DragTracker) Feed(s DragSample) []Event {
	if !s.Pressed {
		return t.release()
	}

	switch t.phase {
	case dragIdle:
		if s.Window != 0 {
			t.press(s)
		}
		return nil

	case dragPressed:
		if s.Window != t.win {
			if s.Window == 0 {
				t.reset()
			} else {
				t.press(s)
			}
			return nil
		}
		op := ClassifyGrab(t.baseline, s.Bounds)
		if op == GrabNone {
			return nil
		}
		t.phase = dragActive
		t.op = op
		t.last = s.Bounds
		return []Event{
			{Kind: EventDragBegin, Window: t.win, Op: op, Bounds: t.baseline},
			t.change(s.Bounds),
		}

	default:
		if s.Window != t.win || s.Bounds == t.last {
			return nil
		}
		t.last = s.Bounds
		return []Event{t.change(s.Bounds)}
	}
}

func (t *DragTracker) press(s DragSample) {
	t.phase = dragPressed
	t.win = s.Window
	t.op = GrabNone
	t.baseline = s.Bounds
	t.last = s.Bounds
}

func (t *DragTracker) release() []Event {
	var events []Event
	if t.phase == dragActive {
		events = append(events, Event{Kind: EventDragEnd, Window: t.win, Op: t.op, Bounds: t.last})
	}
	t.reset()
	return events
}

func (t *DragTracker) reset() {
	*t = DragTracker{}
}

func (t *DragTracker) change(bounds Rect) Event {
	kind := EventPositionChanged
	if t.op.Resizing() {
		kind = EventGeometryChanged
	}
	return Event{Kind: kind, Window: t.win, Op: t.op, Bounds: bounds}
}
