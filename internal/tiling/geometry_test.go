package tiling

import "testing"

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want int
	}{
		{"identical", Rect{10, 20, 30, 40}, Rect{10, 20, 30, 40}, 1200},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 10, 10}, 0},
		{"touching edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
		{"touching corner", Rect{0, 0, 10, 10}, Rect{10, 10, 10, 10}, 0},
		{"partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, 25},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 20, 30}, 600},
		{"zero width", Rect{0, 0, 0, 10}, Rect{0, 0, 10, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapArea(tt.a, tt.b); got != tt.want {
				t.Fatalf("OverlapArea(%+v, %+v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := OverlapArea(tt.b, tt.a); got != tt.want {
				t.Fatalf("OverlapArea is not commutative: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCoverageRatio(t *testing.T) {
	target := Rect{X: 100, Y: 100, Width: 200, Height: 100}

	full := CoverageRatio(target, []Rect{{X: 0, Y: 0, Width: 1000, Height: 1000}})
	if full <= ObstructedRatio {
		t.Fatalf("expected full cover ratio > %.1f, got %f", ObstructedRatio, full)
	}
	if !IsObstructed(target, []Rect{{X: 0, Y: 0, Width: 1000, Height: 1000}}) {
		t.Fatalf("expected fully covered target to be obstructed")
	}

	none := CoverageRatio(target, []Rect{{X: 500, Y: 500, Width: 10, Height: 10}})
	if none != 0 {
		t.Fatalf("expected zero coverage for disjoint occluder, got %f", none)
	}
	if IsObstructed(target, []Rect{{X: 500, Y: 500, Width: 10, Height: 10}}) {
		t.Fatalf("did not expect disjoint occluder to obstruct")
	}

	half := CoverageRatio(target, []Rect{{X: 100, Y: 100, Width: 100, Height: 100}})
	if half != 0.5 {
		t.Fatalf("expected half coverage, got %f", half)
	}
}

func TestCoverageRatioCountsStackedOccludersTwice(t *testing.T) {
	target := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	occluders := []Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 0, Y: 0, Width: 100, Height: 100},
	}
	if got := CoverageRatio(target, occluders); got != 2.0 {
		t.Fatalf("expected overlapping occluders to sum to 2.0, got %f", got)
	}
}

func TestCoverageRatioZeroAreaTarget(t *testing.T) {
	if got := CoverageRatio(Rect{X: 5, Y: 5}, []Rect{{X: 0, Y: 0, Width: 10, Height: 10}}); got != 0 {
		t.Fatalf("expected 0 for empty target, got %f", got)
	}
}

func TestRectContainsExcludesFarEdges(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	if !r.Contains(10, 10) {
		t.Fatalf("expected origin to be inside")
	}
	if r.Contains(20, 15) || r.Contains(15, 20) {
		t.Fatalf("expected right and bottom edges to be outside")
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"partial", Rect{0, 0, 100, 100}, Rect{50, 20, 100, 100}, Rect{50, 20, 50, 80}},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 20, 20}, Rect{10, 10, 20, 20}},
		{"touching", Rect{0, 0, 100, 100}, Rect{100, 0, 50, 50}, Rect{}},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{500, 500, 10, 10}, Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Fatalf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}
