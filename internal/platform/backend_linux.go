//go:build linux

package platform

import (
	"fmt"
	"sort"
	"time"

	"github.com/1broseidon/snaptile/internal/eventloop"
	"github.com/1broseidon/snaptile/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/rs/zerolog"
)

// settleTimeout bounds how long MoveResize waits for the window manager to
// apply a geometry change before returning.
const settleTimeout = 50 * time.Millisecond

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
	bus  *Bus
	log  zerolog.Logger

	tracker  DragTracker
	pollStop *eventloop.Timer
	polling  bool
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger zerolog.Logger) *LinuxBackend {
	return &LinuxBackend{
		conn: conn,
		bus:  NewBus(),
		log:  logger.With().Str("component", "x11").Logger(),
	}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(logger zerolog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, logger), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Displays returns all active displays with their usable work areas.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: m.Bounds,
			Usable: conn.UsableArea(m),
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// DisplayAtPointer returns the display under the pointer, falling back to
// the first display.
func (b *LinuxBackend) DisplayAtPointer() (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	if len(displays) == 0 {
		return Display{}, fmt.Errorf("no displays found")
	}

	p, err := b.Pointer()
	if err == nil {
		if d, ok := DisplayAt(displays, p); ok {
			return d, nil
		}
	}
	return displays[0], nil
}

// Pointer returns the pointer position in root coordinates.
func (b *LinuxBackend) Pointer() (Point, error) {
	conn, err := b.connection()
	if err != nil {
		return Point{}, err
	}
	st, err := conn.QueryPointer()
	if err != nil {
		return Point{}, err
	}
	return Point{X: st.X, Y: st.Y}, nil
}

// Window returns a snapshot of a single window.
func (b *LinuxBackend) Window(id WindowID) (Window, error) {
	conn, err := b.connection()
	if err != nil {
		return Window{}, err
	}

	stack := -1
	if order, err := conn.StackingOrder(); err == nil {
		for i, w := range order {
			if WindowID(w) == id {
				stack = i
				break
			}
		}
	}

	displays, err := b.Displays()
	if err != nil {
		return Window{}, err
	}
	return b.describe(conn, xproto.Window(id), stack, displays)
}

// StackedWindows lists windows on the current desktop from back to front.
// Stack is the index in that list.
func (b *LinuxBackend) StackedWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	order, err := conn.StackingOrder()
	if err != nil {
		return nil, err
	}
	displays, err := b.Displays()
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := conn.GetCurrentDesktop()
	hasCurrentDesktop := desktopErr == nil

	windows := make([]Window, 0, len(order))
	for _, wid := range order {
		if hasCurrentDesktop {
			desktop, err := conn.GetWindowDesktop(wid)
			if err == nil && desktop != -1 && desktop != currentDesktop {
				continue
			}
		}

		w, err := b.describe(conn, wid, len(windows), displays)
		if err != nil {
			continue
		}
		windows = append(windows, w)
	}

	return windows, nil
}

// ClientWindows lists every managed window regardless of desktop.
func (b *LinuxBackend) ClientWindows() ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	clients, err := conn.ClientList()
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, len(clients))
	for i, wid := range clients {
		ids[i] = WindowID(wid)
	}
	return ids, nil
}

func (b *LinuxBackend) describe(conn *x11.Connection, wid xproto.Window, stack int, displays []Display) (Window, error) {
	geom, err := conn.FrameGeometry(wid)
	if err != nil {
		return Window{}, err
	}
	bounds := rectFromGeometry(geom)

	kind := WindowOther
	if conn.IsNormalWindow(wid) {
		kind = WindowNormal
	}

	return Window{
		ID:        WindowID(wid),
		Title:     conn.WindowTitle(wid),
		Bounds:    bounds,
		Type:      kind,
		Minimized: conn.IsMinimized(wid),
		Stack:     stack,
		Display:   DisplayIDFor(displays, bounds),
	}, nil
}

// Maximize maximizes a window on both axes.
func (b *LinuxBackend) Maximize(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Maximize(xproto.Window(id))
}

// Unmaximize restores a maximized window.
func (b *LinuxBackend) Unmaximize(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Unmaximize(xproto.Window(id))
}

// MoveResize moves and resizes a window's frame to the specified bounds and
// waits briefly for the window manager to apply it.
func (b *LinuxBackend) MoveResize(id WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	wid := xproto.Window(id)
	before, err := conn.FrameGeometry(wid)
	if err != nil {
		return err
	}
	target := x11.Geometry{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height}
	if before == target {
		return nil
	}

	if err := conn.MoveResizeFrame(wid, target); err != nil {
		return err
	}
	_, err = conn.WaitForGeometryUpdate(wid, before, settleTimeout)
	return err
}

// Subscribe registers a handler for events of kind on win (0 for all windows).
func (b *LinuxBackend) Subscribe(kind EventKind, win WindowID, h Handler) Token {
	return b.bus.Subscribe(kind, win, h)
}

// Unsubscribe releases a subscription. Stale tokens are ignored.
func (b *LinuxBackend) Unsubscribe(tok Token) {
	b.bus.Unsubscribe(tok)
}

// StartDragTracking polls pointer and active window state on loop every
// interval and publishes drag events. X11 offers no grab-op notification to
// clients, so drags are inferred from button 1 state and frame changes.
func (b *LinuxBackend) StartDragTracking(loop *eventloop.Loop, interval time.Duration) {
	if b.polling {
		return
	}
	b.polling = true

	var tick func()
	tick = func() {
		if !b.polling {
			return
		}
		for _, ev := range b.tracker.Feed(b.sample()) {
			b.log.Debug().
				Str("event", ev.Kind.String()).
				Str("op", ev.Op.String()).
				Uint32("window", uint32(ev.Window)).
				Msg("drag")
			b.bus.Publish(ev)
		}
		b.pollStop = loop.AfterFunc(interval, tick)
	}
	loop.Post(tick)
}

// StopDragTracking stops the poller. It must run on the loop.
func (b *LinuxBackend) StopDragTracking() {
	b.polling = false
	b.pollStop.Stop()
	b.pollStop = nil
}

func (b *LinuxBackend) sample() DragSample {
	conn := b.conn
	ptr, err := conn.QueryPointer()
	if err != nil || !ptr.Button1Down() {
		return DragSample{}
	}

	s := DragSample{Pressed: true}
	if win, _, ok := b.tracker.Active(); ok {
		s.Window = win
	} else if active, err := conn.GetActiveWindow(); err == nil {
		s.Window = WindowID(active)
	}
	if s.Window == 0 {
		return s
	}

	geom, err := conn.FrameGeometry(xproto.Window(s.Window))
	if err != nil {
		s.Window = 0
		return s
	}
	s.Bounds = rectFromGeometry(geom)
	return s
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func rectFromGeometry(g x11.Geometry) Rect {
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}
