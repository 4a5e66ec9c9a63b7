package css

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/cascade/dom/style"
)

var namedColors = map[string]color.RGBA{
	"black":       {0, 0, 0, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0, 0, 0xff},
	"green":       {0, 0xff, 0, 0xff},
	"blue":        {0, 0, 0xff, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"yellow":      {0xff, 0xff, 0, 0xff},
	"transparent": {0, 0, 0, 0},
}

// ParseColor returns a color for a raw attribute value. Accepted are
// color names, "#rgb", "#rrggbb" and "#rrggbbaa". A value of "default"
// (or an empty value) yields nil, leaving the choice to rendering code.
func ParseColor(p style.Property) (color.Color, error) {
	s := string(p.Normalized())
	if s == "default" || s == "" {
		return nil, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color '%s'", p)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("malformed color '%s'", p)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed color '%s': %w", p, err)
	}
	return color.RGBA{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

// ColorString renders a color the way the debug output expects it.
func ColorString(c color.Color) string {
	if c == nil {
		return "default"
	}
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", r>>8, g>>8, b>>8, a>>8)
}
