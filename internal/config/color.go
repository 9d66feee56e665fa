package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with a separate opacity in [0, 1].
type Color struct {
	colorful.Color
	Alpha float64
}

// Pixel returns the colour as a 0xRRGGBB value for a TrueColor visual.
func (c Color) Pixel() uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ParseColor accepts rgba(r, g, b, a), rgb(r, g, b), #rgb and #rrggbb.
// Channel values are 0-255 and alpha is 0-1.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("empty colour")
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return Color{Color: c, Alpha: 1}, nil
	}

	var args string
	var want int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args, want = s[len("rgba("):len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args, want = s[len("rgb("):len(s)-1], 3
	default:
		return Color{}, fmt.Errorf("invalid colour %q: expected rgba(), rgb() or #hex", s)
	}

	parts := strings.Split(args, ",")
	if len(parts) != want {
		return Color{}, fmt.Errorf("invalid colour %q: expected %d components", s, want)
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid colour %q: channel %d must be 0-255", s, i+1)
		}
		ch[i] = float64(v) / 255
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("invalid colour %q: alpha must be 0-1", s)
		}
		alpha = a
	}

	return Color{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, Alpha: alpha}, nil
}

// PreviewColors parses the preview border and fill colours, falling back to
// the defaults for anything unparsable.
func (c *Config) PreviewColors() (border, fill Color) {
	border, err := ParseColor(c.Preview.Color)
	if err != nil {
		border, _ = ParseColor(DefaultPreviewColor)
	}
	fill, err = ParseColor(c.Preview.Fill)
	if err != nil {
		fill, _ = ParseColor(DefaultPreviewFill)
	}
	return border, fill
}
