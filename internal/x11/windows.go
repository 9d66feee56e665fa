package x11

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaxHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateHidden  = "_NET_WM_STATE_HIDDEN"
	sourcePager  = 2
	stateRemove  = 0
	stateAdd     = 1
)

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// FrameGeometry returns the window's outer rectangle including decorations.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, error) {
	win := xwindow.New(c.XUtil, windowID)
	rect, err := win.DecorGeometry()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get frame geometry of 0x%x: %w", windowID, err)
	}
	return Geometry{X: rect.X(), Y: rect.Y(), Width: rect.Width(), Height: rect.Height()}, nil
}

// MoveResizeFrame places the window so that its frame, decorations
// included, covers the given rectangle.
func (c *Connection) MoveResizeFrame(windowID xproto.Window, g Geometry) error {
	width, height := g.Width, g.Height

	left, right, top, bottom := c.GetFrameExtents(windowID)
	width -= left + right
	height -= top + bottom
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	err := ewmh.MoveresizeWindowExtra(
		c.XUtil,
		windowID,
		g.X, g.Y, width, height,
		xproto.GravityBitForget,
		sourcePager,
		true, true,
	)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(g.X, g.Y, width, height)
	}
	return nil
}

// Maximize asks the window manager to maximize the window on both axes.
func (c *Connection) Maximize(windowID xproto.Window) error {
	return c.setMaximized(windowID, stateAdd)
}

// Unmaximize removes both maximized states from a window when present.
func (c *Connection) Unmaximize(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == stateMaxHorz || state == stateMaxVert {
			return c.setMaximized(windowID, stateRemove)
		}
	}
	return nil
}

func (c *Connection) setMaximized(windowID xproto.Window, action int) error {
	if err := ewmh.WmStateReqExtra(c.XUtil, windowID, action, stateMaxHorz, stateMaxVert, sourcePager); err != nil {
		return fmt.Errorf("failed to change maximized state of 0x%x: %w", windowID, err)
	}
	return nil
}

// IsMinimized reports whether the window is iconified.
func (c *Connection) IsMinimized(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == stateHidden {
			return true
		}
	}
	return false
}

// GetFrameExtents returns the window decoration sizes, zeros if unknown.
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0
	}

	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}
	return isNormalType(types)
}

func isNormalType(types []string) bool {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_DIALOG",
			"_NET_WM_WINDOW_TYPE_UTILITY",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// WindowTitle returns the EWMH name of a window, empty if unset.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	name, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return name
}

// GetActiveWindow returns the focused client window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// StackingOrder returns managed clients from bottom to top.
func (c *Connection) StackingOrder() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get stacking order: %w", err)
	}
	return clients, nil
}

// ClientList returns every managed client on every desktop.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// WaitForGeometryUpdate polls until the frame geometry differs from old or
// timeout elapses, then returns the latest geometry. Window managers apply
// configure requests asynchronously, so reads straight after a move can be
// stale.
func (c *Connection) WaitForGeometryUpdate(windowID xproto.Window, old Geometry, timeout time.Duration) (Geometry, error) {
	deadline := time.Now().Add(timeout)
	for {
		cur, err := c.FrameGeometry(windowID)
		if err != nil {
			return Geometry{}, err
		}
		if cur != old || time.Now().After(deadline) {
			return cur, nil
		}
		time.Sleep(time.Millisecond)
	}
}
