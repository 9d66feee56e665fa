package snapmode

import (
	"fmt"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Pair links two windows that share an edge. A was snapped against B's
// Edge, so Edge is the side of B that A touches.
type Pair struct {
	A    platform.WindowID
	B    platform.WindowID
	Edge tiling.Edge
}

// Has reports whether w is a member of the pair.
func (p Pair) Has(w platform.WindowID) bool {
	return p.A == w || p.B == w
}

// Partner returns the other member of the pair.
func (p Pair) Partner(w platform.WindowID) platform.WindowID {
	if p.A == w {
		return p.B
	}
	return p.A
}

// EffectiveEdge is the partner's edge that w touches.
func (p Pair) EffectiveEdge(w platform.WindowID) tiling.Edge {
	if p.B == w {
		return p.Edge.Mirror()
	}
	return p.Edge
}

// PairSet holds committed pairs. A window is in at most one pair.
type PairSet struct {
	pairs []Pair
}

// Add records p, dropping any pair that already involves either window.
func (s *PairSet) Add(p Pair) {
	s.RemoveWindow(p.A)
	s.RemoveWindow(p.B)
	s.pairs = append(s.pairs, p)
}

// RemoveWindow drops every pair that involves w.
func (s *PairSet) RemoveWindow(w platform.WindowID) {
	kept := s.pairs[:0]
	for _, p := range s.pairs {
		if !p.Has(w) {
			kept = append(kept, p)
		}
	}
	s.pairs = kept
}

// Find returns the pair that involves w.
func (s *PairSet) Find(w platform.WindowID) (Pair, bool) {
	for _, p := range s.pairs {
		if p.Has(w) {
			return p, true
		}
	}
	return Pair{}, false
}

func (s *PairSet) Len() int {
	return len(s.pairs)
}

func (s *PairSet) Clear() {
	s.pairs = nil
}

// All returns a copy of the pairs in insertion order.
func (s *PairSet) All() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// movesEdge reports whether a resize with op drags the side of the resized
// window that touches the partner's edge.
func movesEdge(edge tiling.Edge, op platform.GrabOp) bool {
	switch edge {
	case tiling.EdgeRight:
		return op == platform.GrabResizingW || op == platform.GrabResizingNW || op == platform.GrabResizingSW
	case tiling.EdgeLeft:
		return op == platform.GrabResizingE || op == platform.GrabResizingNE || op == platform.GrabResizingSE
	case tiling.EdgeBottom:
		return op == platform.GrabResizingN || op == platform.GrabResizingNW || op == platform.GrabResizingNE
	case tiling.EdgeTop:
		return op == platform.GrabResizingS || op == platform.GrabResizingSW || op == platform.GrabResizingSE
	}
	return false
}

// partnerRect returns the partner geometry that keeps the shared edge flush
// with cur, and the coordinate of that edge.
func partnerRect(edge tiling.Edge, cur, other tiling.Rect) (tiling.Rect, int) {
	switch edge {
	case tiling.EdgeRight:
		target := cur.X
		return tiling.Rect{X: other.X, Y: other.Y, Width: target - other.X, Height: other.Height}, target
	case tiling.EdgeLeft:
		target := cur.Right()
		return tiling.Rect{X: target, Y: other.Y, Width: other.Right() - target, Height: other.Height}, target
	case tiling.EdgeBottom:
		target := cur.Y
		return tiling.Rect{X: other.X, Y: other.Y, Width: other.Width, Height: target - other.Y}, target
	default:
		target := cur.Bottom()
		return tiling.Rect{X: other.X, Y: target, Width: other.Width, Height: other.Bottom() - target}, target
	}
}

// realign returns the geometry for the resized window that meets the
// partner's actual edge, or false when the partner landed on target.
func realign(edge tiling.Edge, cur, actual tiling.Rect, target int) (tiling.Rect, bool) {
	switch edge {
	case tiling.EdgeRight:
		got := actual.Right()
		if got == target {
			return tiling.Rect{}, false
		}
		return tiling.Rect{X: got, Y: cur.Y, Width: cur.Width + (cur.X - got), Height: cur.Height}, true
	case tiling.EdgeLeft:
		got := actual.X
		if got == target {
			return tiling.Rect{}, false
		}
		return tiling.Rect{X: cur.X, Y: cur.Y, Width: got - cur.X, Height: cur.Height}, true
	case tiling.EdgeBottom:
		got := actual.Bottom()
		if got == target {
			return tiling.Rect{}, false
		}
		return tiling.Rect{X: cur.X, Y: got, Width: cur.Width, Height: cur.Height + (cur.Y - got)}, true
	default:
		got := actual.Y
		if got == target {
			return tiling.Rect{}, false
		}
		return tiling.Rect{X: cur.X, Y: cur.Y, Width: cur.Width, Height: got - cur.Y}, true
	}
}

// Propagate keeps p's shared edge flush after w was resized to cur with
// op. The partner is moved first and read back; if the window manager did
// not put it where asked, w is adjusted once to meet the partner's real
// edge. A missing partner is not an error. It reports whether w was
// adjusted.
func Propagate(b platform.Backend, p Pair, w platform.WindowID, op platform.GrabOp, cur tiling.Rect) (bool, error) {
	edge := p.EffectiveEdge(w)
	if !movesEdge(edge, op) {
		return false, nil
	}

	other := p.Partner(w)
	partner, err := b.Window(other)
	if err != nil {
		return false, nil
	}

	want, target := partnerRect(edge, cur, partner.Bounds)
	moveErr := b.MoveResize(other, want)

	actual, err := b.Window(other)
	if err != nil {
		return false, nil
	}
	fix, ok := realign(edge, cur, actual.Bounds, target)
	if !ok {
		return false, moveErr
	}
	if err := b.MoveResize(w, fix); err != nil {
		return false, fmt.Errorf("realign %s: %w", formatWindow(w), err)
	}
	return true, moveErr
}

func formatWindow(w platform.WindowID) string {
	return fmt.Sprintf("0x%x", uint32(w))
}
