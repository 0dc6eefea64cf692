// Package render is a CPU rasterizer for textured triangle meshes. It
// owns its color and depth buffers and never touches the GPU.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer is a row-major ARGB pixel buffer. It implements image.Image
// so frames can be encoded or composited with the standard image tools.
type Framebuffer struct {
	Width  int
	Height int
	Stride int // pixels per row
	Pixels []ARGB
}

// NewFramebuffer allocates a framebuffer. Non-positive sizes yield an
// empty buffer.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Stride: width,
		Pixels: make([]ARGB, width*height),
	}
}

// Clear fills every pixel with c.
func (fb *Framebuffer) Clear(c ARGB) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel writes c at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c ARGB) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Stride+x] = c
}

// Pixel returns the color at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) Pixel(x, y int) ARGB {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.Pixels[y*fb.Stride+x]
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return ARGBModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.Pixel(x, y) }

// Set implements draw.Image so text and images can be drawn onto a frame.
func (fb *Framebuffer) Set(x, y int, c color.Color) { fb.SetPixel(x, y, ToARGB(c)) }

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm, clipping per pixel.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c ARGB) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// WriteRGBA writes the frame as 8-bit RGBA bytes into dst, which must
// hold at least Width*Height*4 bytes. Pixels are opaque so no
// premultiplication is needed.
func (fb *Framebuffer) WriteRGBA(dst []byte) {
	for y := range fb.Height {
		row := fb.Pixels[y*fb.Stride : y*fb.Stride+fb.Width]
		for x, c := range row {
			i := (y*fb.Width + x) * 4
			if i+3 >= len(dst) {
				return
			}
			dst[i+0] = c.R()
			dst[i+1] = c.G()
			dst[i+2] = c.B()
			dst[i+3] = c.A()
		}
	}
}

// ToImage copies the framebuffer into a new image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	fb.WriteRGBA(img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DepthBuffer stores one depth value per pixel; smaller is closer.
// Cleared cells hold +Inf.
type DepthBuffer struct {
	Width  int
	Height int
	Stride int
	Values []float64
}

// NewDepthBuffer allocates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	width, height = max(width, 0), max(height, 0)
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Stride: width,
		Values: make([]float64, width*height),
	}
	d.Reset()
	return d
}

// Reset sets every cell to +Inf.
func (d *DepthBuffer) Reset() {
	n := len(d.Values)
	if n == 0 {
		return
	}
	// copy-doubling is considerably faster than a per-cell loop
	d.Values[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(d.Values[i:], d.Values[:i])
	}
}

// At returns the depth at (x, y), or +Inf when out of bounds.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(1)
	}
	return d.Values[y*d.Stride+x]
}

// Set stores z at (x, y). Out-of-bounds writes are dropped.
func (d *DepthBuffer) Set(x, y int, z float64) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Values[y*d.Stride+x] = z
}

// RenderTarget keeps a color buffer and a depth buffer of identical size.
type RenderTarget struct {
	Color *Framebuffer
	Depth *DepthBuffer
}

// NewRenderTarget allocates both buffers.
func NewRenderTarget(width, height int) *RenderTarget {
	return &RenderTarget{
		Color: NewFramebuffer(width, height),
		Depth: NewDepthBuffer(width, height),
	}
}

// Width returns the target width in pixels.
func (t *RenderTarget) Width() int { return t.Color.Width }

// Height returns the target height in pixels.
func (t *RenderTarget) Height() int { return t.Color.Height }

// Resize reallocates both buffers together. A zero or negative dimension
// leaves the existing buffers untouched and returns false.
func (t *RenderTarget) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == t.Color.Width && height == t.Color.Height {
		return true
	}
	t.Color = NewFramebuffer(width, height)
	t.Depth = NewDepthBuffer(width, height)
	return true
}

// Clear fills color with c and depth with +Inf.
func (t *RenderTarget) Clear(c ARGB) {
	t.Color.Clear(c)
	t.Depth.Reset()
}
