package overlay

import (
	"fmt"

	"github.com/1broseidon/snaptile/internal/snapmode"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/rs/zerolog"
)

const opacityProp = "_NET_WM_WINDOW_OPACITY"

// x11Surface is a fill window plus four border bars, all override-redirect.
// Translucency needs a compositing manager; without one only the border is
// drawn so the preview never hides what is underneath.
type x11Surface struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  zerolog.Logger

	fill    xproto.Window
	bars    [4]xproto.Window // top, bottom, left, right
	created bool
	mapped  bool

	withFill    bool
	borderAlpha float64
	fillAlpha   float64
}

// NewX11Preview creates a preview drawn with X11 windows. Fades run on sched.
func NewX11Preview(xu *xgbutil.XUtil, root xproto.Window, sched snapmode.Scheduler, logger zerolog.Logger) *Preview {
	logger = logger.With().Str("component", "overlay").Logger()
	return newPreview(&x11Surface{xu: xu, root: root, log: logger}, sched, logger)
}

func (s *x11Surface) Place(rect tiling.Rect, style snapmode.Style) error {
	if !s.created {
		if err := s.create(); err != nil {
			s.Destroy()
			return err
		}
	}

	s.withFill = s.compositing()
	s.borderAlpha = style.Border.Alpha
	s.fillAlpha = style.Fill.Alpha

	x, y, w, h := rect.X, rect.Y, rect.Width, rect.Height
	t := style.BorderWidth
	if t*2 > w || t*2 > h {
		t = 0
	}

	// Fill first so the bars stack above it.
	if s.withFill {
		s.updateWindow(s.fill, x, y, w, h, style.Fill.Pixel())
	}

	border := style.Border.Pixel()
	if t > 0 {
		s.updateWindow(s.bars[0], x, y, w, t, border)
		s.updateWindow(s.bars[1], x, y+h-t, w, t, border)
		s.updateWindow(s.bars[2], x, y+t, t, h-2*t, border)
		s.updateWindow(s.bars[3], x+w-t, y+t, t, h-2*t, border)
	}

	s.SetOpacity(0)

	conn := s.xu.Conn()
	if s.withFill {
		xproto.MapWindow(conn, s.fill)
	} else {
		xproto.UnmapWindow(conn, s.fill)
	}
	for _, bar := range s.bars {
		if t > 0 {
			xproto.MapWindow(conn, bar)
		} else {
			xproto.UnmapWindow(conn, bar)
		}
	}
	s.mapped = true
	return nil
}

func (s *x11Surface) SetOpacity(level float64) {
	if !s.created {
		return
	}
	if s.withFill {
		s.setOpacity(s.fill, s.fillAlpha*level)
	}
	for _, bar := range s.bars {
		s.setOpacity(bar, s.borderAlpha*level)
	}
}

func (s *x11Surface) Unmap() {
	if !s.mapped {
		return
	}
	conn := s.xu.Conn()
	xproto.UnmapWindow(conn, s.fill)
	for _, bar := range s.bars {
		xproto.UnmapWindow(conn, bar)
	}
	s.mapped = false
}

func (s *x11Surface) Destroy() {
	conn := s.xu.Conn()
	for _, wid := range append([]xproto.Window{s.fill}, s.bars[:]...) {
		if wid != 0 {
			xproto.DestroyWindow(conn, wid)
		}
	}
	s.fill = 0
	s.bars = [4]xproto.Window{}
	s.created = false
	s.mapped = false
}

func (s *x11Surface) create() error {
	var err error
	if s.fill, err = s.createOverrideRedirectWindow(); err != nil {
		return err
	}
	for i := range s.bars {
		if s.bars[i], err = s.createOverrideRedirectWindow(); err != nil {
			return err
		}
	}
	s.created = true
	return nil
}

// createOverrideRedirectWindow creates a single override-redirect window
func (s *x11Surface) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := s.xu.Conn()
	screen := s.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	// Value list order follows the mask bit positions, so back_pixel
	// precedes override_redirect.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		s.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		[]uint32{0, 1},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("create preview window: %w", err)
	}
	return wid, nil
}

// updateWindow moves, resizes, raises and recolors a window
func (s *x11Surface) updateWindow(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := s.xu.Conn()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}

func (s *x11Surface) setOpacity(wid xproto.Window, alpha float64) {
	if wid == 0 {
		return
	}
	if err := xprop.ChangeProp32(s.xu, wid, opacityProp, "CARDINAL", opacityValue(alpha)); err != nil {
		s.log.Debug().Err(err).Msg("set opacity")
	}
}

// compositing reports whether a compositing manager owns _NET_WM_CM_Sn.
func (s *x11Surface) compositing() bool {
	name := fmt.Sprintf("_NET_WM_CM_S%d", s.xu.Conn().DefaultScreen)
	atom, err := xprop.Atm(s.xu, name)
	if err != nil {
		return false
	}
	reply, err := xproto.GetSelectionOwner(s.xu.Conn(), atom).Reply()
	if err != nil {
		return false
	}
	return reply.Owner != 0
}

// opacityValue converts an alpha in [0, 1] to the CARDINAL scale used by
// _NET_WM_WINDOW_OPACITY.
func opacityValue(alpha float64) uint {
	switch {
	case alpha <= 0:
		return 0
	case alpha >= 1:
		return 0xffffffff
	}
	return uint(alpha * 0xffffffff)
}
