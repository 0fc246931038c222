package assetforge

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor is a non-premultiplied 8-bit color.
type RGBAColor struct {
	R, G, B, A uint8
}

var (
	Black       = RGBAColor{0, 0, 0, 255}
	White       = RGBAColor{255, 255, 255, 255}
	Transparent = RGBAColor{}
)

// RGBA implements color.Color.
func (c RGBAColor) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c RGBAColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats the color as #rrggbbaa.
func (c RGBAColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c RGBAColor) String() string { return c.Hex() }

// ColorSpec holds a user supplied color, either as a hex string or as an
// explicit RGBA quad. Hex wins when both are set.
type ColorSpec struct {
	Hex  string
	RGBA *RGBAColor
}

func HexColor(hex string) ColorSpec { return ColorSpec{Hex: hex} }

func ColorOf(c RGBAColor) ColorSpec { return ColorSpec{RGBA: &c} }

// Resolve returns the canonical color of the spec.
func (s ColorSpec) Resolve() (RGBAColor, error) {
	if strings.TrimSpace(s.Hex) != "" {
		return ParseHex(s.Hex)
	}
	if s.RGBA != nil {
		return *s.RGBA, nil
	}
	return RGBAColor{}, newError("resolve color", ErrInvalidColor, fmt.Errorf("missing hex or rgba value"))
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (the leading # is optional).
// Six digit colors are fully opaque.
func ParseHex(s string) (RGBAColor, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return RGBAColor{}, newError("parse hex", ErrInvalidColor, fmt.Errorf("%q must have 6 or 8 hex digits", s))
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return RGBAColor{}, newError("parse hex", ErrInvalidColor, fmt.Errorf("%q contains a non hex digit", s))
		}
	}
	col, err := colorful.Hex("#" + h[:6])
	if err != nil {
		return RGBAColor{}, newError("parse hex", ErrInvalidColor, err)
	}
	r, g, b := col.RGB255()
	out := RGBAColor{R: r, G: g, B: b, A: 255}
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return RGBAColor{}, newError("parse hex", ErrInvalidColor, err)
		}
		out.A = uint8(a)
	}
	return out, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
