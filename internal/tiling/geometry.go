package tiling

// ObstructedRatio is the coverage above which a window counts as hidden.
const ObstructedRatio = 0.9

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Point is a position in root window coordinates.
type Point struct {
	X int
	Y int
}

// Right returns the x coordinate one past the last column of r.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the last row of r.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns the rect's area, zero for degenerate rects.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// SameSize reports whether r and o have identical dimensions.
func (r Rect) SameSize(o Rect) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Intersect returns the common area of r and o, or the zero Rect when
// they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// OverlapArea returns the intersection area of a and b. Rects that only
// touch along an edge do not overlap.
func OverlapArea(a, b Rect) int {
	return a.Intersect(b).Area()
}

// CoverageRatio sums the overlap of target with each occluder and divides
// by the target's area. Overlaps between occluders are counted once per
// occluder, so the result can exceed 1.0 in stacked scenes.
func CoverageRatio(target Rect, occluders []Rect) float64 {
	area := target.Area()
	if area == 0 {
		return 0
	}

	covered := 0
	for _, o := range occluders {
		covered += OverlapArea(target, o)
	}
	return float64(covered) / float64(area)
}

// IsObstructed reports whether the occluders cover more than
// ObstructedRatio of target.
func IsObstructed(target Rect, occluders []Rect) bool {
	return CoverageRatio(target, occluders) > ObstructedRatio
}
