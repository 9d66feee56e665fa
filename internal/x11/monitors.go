package x11

import (
	"fmt"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is an active RandR CRTC.
type Monitor struct {
	ID     int
	Name   string
	Bounds tiling.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:   i,
			Name: name,
			Bounds: tiling.Rect{
				X: int(info.X), Y: int(info.Y),
				Width: int(info.Width), Height: int(info.Height),
			},
		})
	}
	return monitors, nil
}

// UsableArea returns the part of mon not reserved by docks. Dock struts win
// over _NET_WORKAREA, which only describes the whole screen.
func (c *Connection) UsableArea(mon Monitor) tiling.Rect {
	if area, ok := c.strutArea(mon.Bounds); ok {
		return area
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return mon.Bounds
	}
	desktop := 0
	if current, err := c.GetCurrentDesktop(); err == nil && current >= 0 && current < len(workArea) {
		desktop = current
	}
	wa := workArea[desktop]
	clipped := mon.Bounds.Intersect(tiling.Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)})
	if clipped.Empty() {
		return mon.Bounds
	}
	return clipped
}

// insets is how far docks reach into a monitor from each side.
type insets struct {
	left, right, top, bottom int
}

func (in insets) zero() bool {
	return in == insets{}
}

// strutArea shrinks bounds by the struts of every dock window. It reports
// false when no dock reserves space on this monitor.
func (c *Connection) strutArea(bounds tiling.Rect) (tiling.Rect, bool) {
	root, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return bounds, false
	}
	rootW, rootH := int(root.Width), int(root.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return bounds, false
	}

	var in insets
	for _, wid := range clients {
		if !c.isDock(wid) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, wid); err == nil {
			in = addStruts(in, bounds, rootW, rootH, sp)
			continue
		}
		// Older docks only publish _NET_WM_STRUT, which spans the whole side.
		if s, err := ewmh.WmStrutGet(c.XUtil, wid); err == nil {
			in = addStruts(in, bounds, rootW, rootH, &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY: uint(rootH - 1), RightEndY: uint(rootH - 1),
				TopEndX: uint(rootW - 1), BottomEndX: uint(rootW - 1),
			})
		}
	}
	if in.zero() {
		return bounds, false
	}

	return tiling.Rect{
		X:      bounds.X + in.left,
		Y:      bounds.Y + in.top,
		Width:  max(1, bounds.Width-in.left-in.right),
		Height: max(1, bounds.Height-in.top-in.bottom),
	}, true
}

func (c *Connection) isDock(wid xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, wid)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// addStruts widens in by the parts of sp's reserved strips that overlap
// bounds. Strips are anchored to the root window edges.
func addStruts(in insets, bounds tiling.Rect, rootW, rootH int, sp *ewmh.WmStrutPartial) insets {
	span := func(start, end uint) (int, int) { return int(start), int(end) - int(start) + 1 }

	if sp.Top > 0 {
		x, w := span(sp.TopStartX, sp.TopEndX)
		in.top = max(in.top, bounds.Intersect(tiling.Rect{X: x, Y: 0, Width: w, Height: int(sp.Top)}).Height)
	}
	if sp.Bottom > 0 {
		x, w := span(sp.BottomStartX, sp.BottomEndX)
		strip := tiling.Rect{X: x, Y: rootH - int(sp.Bottom), Width: w, Height: int(sp.Bottom)}
		in.bottom = max(in.bottom, bounds.Intersect(strip).Height)
	}
	if sp.Left > 0 {
		y, h := span(sp.LeftStartY, sp.LeftEndY)
		in.left = max(in.left, bounds.Intersect(tiling.Rect{X: 0, Y: y, Width: int(sp.Left), Height: h}).Width)
	}
	if sp.Right > 0 {
		y, h := span(sp.RightStartY, sp.RightEndY)
		strip := tiling.Rect{X: rootW - int(sp.Right), Y: y, Width: int(sp.Right), Height: h}
		in.right = max(in.right, bounds.Intersect(strip).Width)
	}
	return in
}
