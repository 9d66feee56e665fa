package platform

import "github.com/1broseidon/snaptile/internal/tiling"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect = tiling.Rect

// Point is a position in screen coordinates.
type Point = tiling.Point

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// WindowType classifies windows. Only normal windows take part in snapping.
type WindowType int

const (
	WindowNormal WindowType = iota
	WindowOther
)

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID        WindowID
	Title     string
	Bounds    Rect
	Type      WindowType
	Minimized bool
	// Stack is the rank in the stacking order, higher is closer to the viewer.
	Stack int
	// Display is the ID of the display holding the window center, -1 if none.
	Display int
}

// Normal reports whether the window is an ordinary application window.
func (w Window) Normal() bool {
	return w.Type == WindowNormal
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	Pointer() (Point, error)
	Window(id WindowID) (Window, error)
	// StackedWindows lists windows on the current desktop, back to front.
	StackedWindows() ([]Window, error)
	Maximize(id WindowID) error
	Unmaximize(id WindowID) error
	MoveResize(id WindowID, bounds Rect) error
	Subscribe(kind EventKind, win WindowID, h Handler) Token
	Unsubscribe(tok Token)
}

// DisplayAt returns the display in displays whose bounds contain p.
func DisplayAt(displays []Display, p Point) (Display, bool) {
	for _, d := range displays {
		if d.Bounds.Contains(p.X, p.Y) {
			return d, true
		}
	}
	return Display{}, false
}

// DisplayIDFor returns the ID of the display containing the center of r,
// or -1.
func DisplayIDFor(displays []Display, r Rect) int {
	if d, ok := DisplayAt(displays, Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}); ok {
		return d.ID
	}
	return -1
}
