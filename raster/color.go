package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

// ErrBadColor is returned by ParseHexColor for malformed input.
var ErrBadColor = errors.New("raster: malformed hex color")

// ParseHexColor parses a CSS-style hex color: "#rgb", "#rgba", "#rrggbb"
// or "#rrggbbaa". The leading '#' is optional.
func ParseHexColor(hex string) (color.NRGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var digits int
	switch len(s) {
	case 3, 4:
		digits = 1
	case 6, 8:
		digits = 2
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, hex)
	}

	ch := [4]uint8{3: 255}
	for i := 0; i*digits < len(s); i++ {
		v, err := strconv.ParseUint(s[i*digits:(i+1)*digits], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, hex)
		}
		if digits == 1 {
			v *= 17
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
