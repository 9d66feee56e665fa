package tiling

// Candidate is a window considered for edge snapping. Stack is the
// window's rank in the stacking order; higher values are closer to the
// viewer.
type Candidate struct {
	ID    uint32
	Rect  Rect
	Stack int
}

// EdgeVisible reports whether win's edge is uncovered at the pointer.
// Only windows stacked strictly above win can hide it, and only when they
// straddle the edge line where the pointer's orthogonal coordinate falls.
func EdgeVisible(win Candidate, edge Edge, p Point, all []Candidate) bool {
	for _, other := range all {
		if other.ID == win.ID || other.Stack <= win.Stack {
			continue
		}
		if covers(other.Rect, win.Rect, edge, p) {
			return false
		}
	}
	return true
}

func covers(other, win Rect, edge Edge, p Point) bool {
	withinY := p.Y >= other.Y && p.Y < other.Bottom()
	withinX := p.X >= other.X && p.X < other.Right()

	switch edge {
	case EdgeRight:
		line := win.Right()
		return other.X <= line && other.Right() > line && withinY
	case EdgeLeft:
		line := win.X
		return other.X < line && other.Right() >= line && withinY
	case EdgeBottom:
		line := win.Bottom()
		return other.Y <= line && other.Bottom() > line && withinX
	case EdgeTop:
		line := win.Y
		return other.Y < line && other.Bottom() >= line && withinX
	default:
		return false
	}
}
