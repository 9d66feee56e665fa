package tiling

import (
	"fmt"
	"math"
	"strings"
)

// Edge names one side of a window.
type Edge int

const (
	EdgeRight Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeTop
)

// edgeOrder is the order in which a neighbor's edges are checked.
var edgeOrder = [...]Edge{EdgeRight, EdgeLeft, EdgeBottom, EdgeTop}

// String returns the string representation of the edge
func (e Edge) String() string {
	switch e {
	case EdgeRight:
		return "right"
	case EdgeLeft:
		return "left"
	case EdgeBottom:
		return "bottom"
	case EdgeTop:
		return "top"
	default:
		return "unknown"
	}
}

// ParseEdge converts a name produced by Edge.String back into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return EdgeRight, nil
	case "left":
		return EdgeLeft, nil
	case "bottom":
		return EdgeBottom, nil
	case "top":
		return EdgeTop, nil
	default:
		return 0, fmt.Errorf("unknown edge %q", s)
	}
}

// Mirror returns the edge as seen from the window on the other side.
func (e Edge) Mirror() Edge {
	switch e {
	case EdgeRight:
		return EdgeLeft
	case EdgeLeft:
		return EdgeRight
	case EdgeBottom:
		return EdgeTop
	default:
		return EdgeBottom
	}
}

// TargetKind discriminates the variants of Target.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetMaximize
	TargetGrid
	TargetEdge
)

// String returns the string representation of the kind
func (k TargetKind) String() string {
	switch k {
	case TargetMaximize:
		return "maximize"
	case TargetGrid:
		return "grid"
	case TargetEdge:
		return "edge"
	default:
		return "none"
	}
}

// GridCell is a span of cells in a columns x rows grid.
type GridCell struct {
	Col     int
	Row     int
	ColSpan int
	RowSpan int
}

// EdgePair places a window flush against a neighbor's edge.
type EdgePair struct {
	Rect     Rect
	Neighbor uint32
	Edge     Edge
}

// Target is the destination picked for a dragged window. Only the field
// matching Kind is meaningful.
type Target struct {
	Kind TargetKind
	Cell GridCell
	Pair EdgePair
}

// Maximize returns a maximize target.
func Maximize() Target {
	return Target{Kind: TargetMaximize}
}

// Grid returns a grid target.
func Grid(col, row, colSpan, rowSpan int) Target {
	return Target{Kind: TargetGrid, Cell: GridCell{Col: col, Row: row, ColSpan: colSpan, RowSpan: rowSpan}}
}

// Beside returns an edge-pair target against neighbor.
func Beside(rect Rect, neighbor uint32, edge Edge) Target {
	return Target{Kind: TargetEdge, Pair: EdgePair{Rect: rect, Neighbor: neighbor, Edge: edge}}
}

// Valid reports whether the target holds a destination.
func (t Target) Valid() bool {
	return t.Kind != TargetNone
}

// Equal compares two targets for the purpose of skipping redundant
// previews. Edge targets compare by rect only.
func (t Target) Equal(o Target) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TargetMaximize:
		return true
	case TargetGrid:
		return t.Cell == o.Cell
	case TargetEdge:
		return t.Pair.Rect == o.Pair.Rect
	default:
		return false
	}
}

// Rect resolves the target to concrete geometry on monitor.
func (t Target) Rect(monitor Rect, cols, rows int) Rect {
	switch t.Kind {
	case TargetMaximize:
		return monitor
	case TargetGrid:
		return GridRect(t.Cell, monitor, cols, rows)
	case TargetEdge:
		return t.Pair.Rect
	default:
		return Rect{}
	}
}

// String returns a compact description used in logs and CLI output.
func (t Target) String() string {
	switch t.Kind {
	case TargetMaximize:
		return "maximize"
	case TargetGrid:
		c := t.Cell
		return fmt.Sprintf("grid col=%d row=%d span=%dx%d", c.Col, c.Row, c.ColSpan, c.RowSpan)
	case TargetEdge:
		r := t.Pair.Rect
		return fmt.Sprintf("edge %s of 0x%x -> %dx%d+%d+%d", t.Pair.Edge, t.Pair.Neighbor, r.Width, r.Height, r.X, r.Y)
	default:
		return "none"
	}
}

// GridRect converts a cell span into pixels. Cell sizes are fractional so
// offsets and sizes are floored independently.
func GridRect(cell GridCell, monitor Rect, cols, rows int) Rect {
	if cols <= 0 || rows <= 0 {
		return Rect{}
	}
	cellW := float64(monitor.Width) / float64(cols)
	cellH := float64(monitor.Height) / float64(rows)

	return Rect{
		X:      monitor.X + int(math.Floor(float64(cell.Col)*cellW)),
		Y:      monitor.Y + int(math.Floor(float64(cell.Row)*cellH)),
		Width:  int(math.Floor(float64(cell.ColSpan) * cellW)),
		Height: int(math.Floor(float64(cell.RowSpan) * cellH)),
	}
}
