package tiling

import "math"

// Fallbacks applied when an option is unset or not positive.
const (
	DefaultThreshold = 30
	DefaultColumns   = 2
	DefaultRows      = 2
	DefaultMinWidth  = 500
	DefaultMinHeight = 350
)

// Options controls snap target selection.
type Options struct {
	Threshold          int
	Columns            int
	Rows               int
	MinWidth           int
	MinHeight          int
	VirtualCorners     bool
	IntelligentSpacing bool
}

// Normalized returns a copy of o with fallbacks substituted for every
// non-positive numeric field.
func (o Options) Normalized() Options {
	o.Threshold = orDefault(o.Threshold, DefaultThreshold)
	o.Columns = orDefault(o.Columns, DefaultColumns)
	o.Rows = orDefault(o.Rows, DefaultRows)
	o.MinWidth = orDefault(o.MinWidth, DefaultMinWidth)
	o.MinHeight = orDefault(o.MinHeight, DefaultMinHeight)
	return o
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Locate picks the snap target for pointer p on monitor. windows must be
// ordered back to front and must already exclude the dragged window. The
// second result is false when nothing applies.
func Locate(p Point, monitor Rect, opts Options, windows []Candidate) (Target, bool) {
	opts = opts.Normalized()

	if inMaximizeZone(p, monitor, opts.Threshold) {
		return Maximize(), true
	}
	if t, ok := locateGrid(p, monitor, opts); ok {
		return t, true
	}
	if opts.IntelligentSpacing {
		if t, ok := locateEdge(p, monitor, opts, windows); ok {
			return t, true
		}
	}
	return Target{}, false
}

func inMaximizeZone(p Point, monitor Rect, threshold int) bool {
	relX := float64(p.X - monitor.X)
	relY := p.Y - monitor.Y
	w := float64(monitor.Width)
	return relY <= threshold && relX >= w/3 && relX <= 2*w/3
}

func locateGrid(p Point, monitor Rect, opts Options) (Target, bool) {
	col := snapIndex(p.X-monitor.X, monitor.Width, opts.Columns, opts.Threshold, opts.VirtualCorners)
	row := snapIndex(p.Y-monitor.Y, monitor.Height, opts.Rows, opts.Threshold, opts.VirtualCorners)

	switch {
	case col < 0 && row < 0:
		return Target{}, false
	case row < 0:
		return Grid(col, 0, 1, opts.Rows), true
	case col < 0:
		return Grid(0, row, opts.Columns, 1), true
	default:
		return Grid(col, row, 1, 1), true
	}
}

// snapIndex resolves one axis. rel is the pointer offset from the
// monitor origin and size the monitor extent on that axis. It returns -1
// when the axis does not snap.
func snapIndex(rel, size, count, threshold int, virtual bool) int {
	if rel <= threshold {
		return 0
	}
	if rel >= size-threshold {
		return count - 1
	}
	if !virtual {
		return -1
	}

	cell := float64(size) / float64(count)
	for i := 1; i < count; i++ {
		divider := float64(i) * cell
		if math.Abs(float64(rel)-divider) <= float64(threshold) {
			return int(math.Floor(float64(rel) / cell))
		}
	}
	return -1
}

func locateEdge(p Point, monitor Rect, opts Options, windows []Candidate) (Target, bool) {
	th := opts.Threshold
	for _, win := range windows {
		r := win.Rect
		for _, edge := range edgeOrder {
			var near bool
			switch edge {
			case EdgeRight:
				near = abs(p.X-r.Right()) <= th && p.Y >= r.Y && p.Y <= r.Bottom() && p.X > r.Right()
			case EdgeLeft:
				near = abs(p.X-r.X) <= th && p.Y >= r.Y && p.Y <= r.Bottom() && p.X < r.X
			case EdgeBottom:
				near = abs(p.Y-r.Bottom()) <= th && p.X >= r.X && p.X <= r.Right() && p.Y > r.Bottom()
			case EdgeTop:
				near = abs(p.Y-r.Y) <= th && p.X >= r.X && p.X <= r.Right() && p.Y < r.Y
			}
			if !near || !EdgeVisible(win, edge, p, windows) {
				continue
			}

			fill := FillFromEdge(r, edge, monitor)
			if fill.Width >= opts.MinWidth && fill.Height >= opts.MinHeight {
				return Beside(fill, win.ID, edge), true
			}
		}
	}
	return Target{}, false
}

// FillFromEdge returns the rect that starts at neighbor's edge and
// extends to the matching monitor boundary, keeping neighbor's extent on
// the other axis.
func FillFromEdge(neighbor Rect, edge Edge, monitor Rect) Rect {
	switch edge {
	case EdgeRight:
		return Rect{X: neighbor.Right(), Y: neighbor.Y, Width: monitor.Right() - neighbor.Right(), Height: neighbor.Height}
	case EdgeLeft:
		return Rect{X: monitor.X, Y: neighbor.Y, Width: neighbor.X - monitor.X, Height: neighbor.Height}
	case EdgeBottom:
		return Rect{X: neighbor.X, Y: neighbor.Bottom(), Width: neighbor.Width, Height: monitor.Bottom() - neighbor.Bottom()}
	default:
		return Rect{X: neighbor.X, Y: monitor.Y, Width: neighbor.Width, Height: neighbor.Y - monitor.Y}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
