package render

import (
	"math"

	"github.com/taigrr/voxview/pkg/math3d"
)

// DrawLine3D projects a world-space segment and draws it on top of the
// color buffer without depth testing. Segments with an endpoint outside
// the clip depth range, or far off screen, are skipped rather than
// clipped.
func DrawLine3D(fb *Framebuffer, p Pipeline, a, b math3d.Vec3, c ARGB) {
	ca, cb := p.Transform(a), p.Transform(b)
	if !inDepthRange(ca.Z) || !inDepthRange(cb.Z) {
		return
	}
	sa, sb := p.Project(ca), p.Project(cb)
	limit := 4 * float64(max(fb.Width, fb.Height))
	if !onScreenish(sa, limit) || !onScreenish(sb, limit) {
		return
	}
	fb.DrawLine(
		int(math.Round(sa.X)), int(math.Round(sa.Y)),
		int(math.Round(sb.X)), int(math.Round(sb.Y)),
		c,
	)
}

// DrawFootprintGrid outlines every cell of a width x depth map on the
// y = 0 plane. Each cell edge is drawn as its own segment so that lines
// crossing the near plane lose only the offending cells.
func DrawFootprintGrid(fb *Framebuffer, p Pipeline, width, depth int, c ARGB) {
	for z := 0; z <= depth; z++ {
		for x := range width {
			DrawLine3D(fb, p, math3d.V3(float64(x), 0, float64(z)), math3d.V3(float64(x+1), 0, float64(z)), c)
		}
	}
	for x := 0; x <= width; x++ {
		for z := range depth {
			DrawLine3D(fb, p, math3d.V3(float64(x), 0, float64(z)), math3d.V3(float64(x), 0, float64(z+1)), c)
		}
	}
}

func inDepthRange(z float64) bool {
	return z > nearClipZ && z <= 1
}

func onScreenish(s math3d.Vec2, limit float64) bool {
	return math.Abs(s.X) <= limit && math.Abs(s.Y) <= limit
}
