package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// PointerState is the pointer position in root coordinates plus the
// modifier and button mask.
type PointerState struct {
	X    int
	Y    int
	Mask uint16
}

// Button1Down reports whether the primary button is held.
func (p PointerState) Button1Down() bool {
	return p.Mask&xproto.KeyButMaskButton1 != 0
}

// QueryPointer reads the current pointer state.
func (c *Connection) QueryPointer() (PointerState, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return PointerState{}, fmt.Errorf("failed to query pointer: %w", err)
	}
	return PointerState{
		X:    int(reply.RootX),
		Y:    int(reply.RootY),
		Mask: reply.Mask,
	}, nil
}
