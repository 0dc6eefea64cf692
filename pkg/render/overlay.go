package render

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DebugLines describes the camera and the last frame in the form hosts
// show over the viewport.
func DebugLines(v *Viewport) []string {
	eye := v.Camera().Eye()
	s := v.Stats()
	return []string{
		fmt.Sprintf("Eye: %.1f, %.1f, %.1f", eye.X, eye.Y, eye.Z),
		fmt.Sprintf("Distance: %.1f", v.Camera().Distance),
		fmt.Sprintf("Tiles: %d drawn, %d culled", s.TilesDrawn, s.TilesCulled),
		fmt.Sprintf("Triangles: %d/%d filled", s.TrianglesFilled, s.Triangles),
	}
}

// DrawText writes lines onto fb with a fixed 7x13 bitmap font, starting
// at the top-left pixel (x, y). It is meant for debug overlays on
// snapshots and windowed frames.
func DrawText(fb *Framebuffer, x, y int, lines []string, c ARGB) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	d := &font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(x, y+metrics.Ascent.Ceil()+i*lineHeight)
		d.DrawString(line)
	}
}
