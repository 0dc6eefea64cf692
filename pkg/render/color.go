package render

import "image/color"

// ARGB is a packed 32-bit color: alpha in the top byte, then red, green
// and blue. It is the pixel format of textures and framebuffers.
type ARGB uint32

// Common colors.
const (
	Black   ARGB = 0xFF000000
	White   ARGB = 0xFFFFFFFF
	Magenta ARGB = 0xFFFF00FF
	Gray    ARGB = 0xFF808080
)

// RGB packs an opaque color.
func RGB(r, g, b uint8) ARGB {
	return RGBA(r, g, b, 0xFF)
}

// RGBA packs a color with explicit alpha. Components are not premultiplied.
func RGBA(r, g, b, a uint8) ARGB {
	return ARGB(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha component.
func (c ARGB) A() uint8 { return uint8(c >> 24) }

// R returns the red component.
func (c ARGB) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c ARGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c ARGB) B() uint8 { return uint8(c) }

// RGBA implements color.Color. The result is alpha-premultiplied.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	a8 := uint32(c.A())
	a = a8 * 0x101
	r = uint32(c.R()) * 0x101 * a8 / 0xFF
	g = uint32(c.G()) * 0x101 * a8 / 0xFF
	b = uint32(c.B()) * 0x101 * a8 / 0xFF
	return r, g, b, a
}

// NRGBA returns the color as a non-premultiplied color.NRGBA.
func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// ARGBModel converts any color to ARGB.
var ARGBModel = color.ModelFunc(func(c color.Color) color.Color {
	return ToARGB(c)
})

// ToARGB converts any color.Color to a packed ARGB value.
func ToARGB(c color.Color) ARGB {
	if v, ok := c.(ARGB); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}
