package render

import (
	"math"

	"github.com/taigrr/voxview/pkg/math3d"
)

// Rasterizer constants.
const (
	// nearClipZ is the clip-space z of the near plane. Triangles with all
	// three vertices at or before it are rejected.
	nearClipZ = -1.0
	// minDepth bounds clip z from below before it is inverted.
	minDepth = 1e-4
)

// ScreenVertex is a projected vertex: pixel position, clip-space z and
// texture coordinate.
type ScreenVertex struct {
	Pos math3d.Vec2
	Z   float64
	UV  math3d.Vec2
}

// FrameStats counts work done since the last ResetStats.
type FrameStats struct {
	TilesDrawn      int // tile placements submitted
	TilesCulled     int // placements rejected by the frustum test
	Triangles       int // triangles submitted
	NearRejected    int // triangles entirely before the near plane
	BackfaceCulled  int // back-facing or zero-area triangles
	PixelsWritten   int // pixels that passed the depth test
	TrianglesFilled int // triangles that wrote at least one pixel
}

// Rasterizer fills textured triangles into a RenderTarget with
// perspective-correct texturing and a depth test.
type Rasterizer struct {
	target   *RenderTarget
	pipeline Pipeline
	frustum  Frustum

	// DisableBackfaceCulling draws clockwise triangles too.
	DisableBackfaceCulling bool
	// FrustumCull skips tile placements whose bounds are outside the view.
	FrustumCull bool

	Stats FrameStats

	// per-mesh scratch, reused between calls
	clip   []math3d.Vec3
	screen []math3d.Vec2
}

// NewRasterizer creates a rasterizer drawing into target.
func NewRasterizer(target *RenderTarget) *Rasterizer {
	return &Rasterizer{target: target}
}

// SetTarget switches the render target.
func (r *Rasterizer) SetTarget(target *RenderTarget) {
	r.target = target
}

// Target returns the current render target.
func (r *Rasterizer) Target() *RenderTarget {
	return r.target
}

// Begin sets the pipeline used by DrawMesh for the coming frame.
func (r *Rasterizer) Begin(p Pipeline) {
	r.pipeline = p
	r.frustum = FrustumFromMatrix(p.ViewProjection())
}

// ResetStats zeroes the frame counters.
func (r *Rasterizer) ResetStats() {
	r.Stats = FrameStats{}
}

// DrawMesh draws prim translated by offset using the pipeline from the
// last Begin call.
func (r *Rasterizer) DrawMesh(prim *RenderPrimitive, offset math3d.Vec3) {
	if prim == nil || prim.Mesh == nil || prim.Texture == nil {
		return
	}
	mesh := prim.Mesh

	if r.FrustumCull && !r.frustum.IntersectAABB(mesh.Bounds().Translate(offset)) {
		r.Stats.TilesCulled++
		return
	}
	r.Stats.TilesDrawn++

	verts := mesh.Vertices()
	r.clip = r.clip[:0]
	r.screen = r.screen[:0]
	for _, v := range verts {
		c := r.pipeline.Transform(v.Position.Add(offset))
		r.clip = append(r.clip, c)
		r.screen = append(r.screen, r.pipeline.Project(c))
	}

	idx := mesh.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		r.Stats.Triangles++
		if r.clip[a].Z <= nearClipZ && r.clip[b].Z <= nearClipZ && r.clip[c].Z <= nearClipZ {
			r.Stats.NearRejected++
			continue
		}
		r.DrawTriangle(
			ScreenVertex{Pos: r.screen[a], Z: r.clip[a].Z, UV: verts[a].UV},
			ScreenVertex{Pos: r.screen[b], Z: r.clip[b].Z, UV: verts[b].UV},
			ScreenVertex{Pos: r.screen[c], Z: r.clip[c].Z, UV: verts[c].UV},
			prim.Texture,
		)
	}
}

// edge is positive when p lies to the front-facing side of a->b in
// y-down screen space.
func edge(a, b, p math3d.Vec2) float64 {
	return (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
}

// edgeCoeffs returns A, B, C with edge(a, b, p) = A*p.X + B*p.Y + C.
func edgeCoeffs(a, b math3d.Vec2) (A, B, C float64) {
	A = b.Y - a.Y
	B = a.X - b.X
	C = a.Y*b.X - a.X*b.Y
	return A, B, C
}

// DrawTriangle fills one triangle. Triangles are front-facing when
// edge(v0, v1, v2) > 0, which is counter-clockwise winding seen from
// outside in world space. Degenerate or off-screen input is dropped.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 ScreenVertex, tex *Texture) {
	if r.target == nil || tex == nil {
		return
	}
	if !finite(v0) || !finite(v1) || !finite(v2) {
		return
	}

	area := edge(v0.Pos, v1.Pos, v2.Pos)
	if area < 0 && r.DisableBackfaceCulling {
		v1, v2 = v2, v1
		area = -area
	}
	if !(area > 0) {
		r.Stats.BackfaceCulled++
		return
	}

	color, depth := r.target.Color, r.target.Depth
	width, height := color.Width, color.Height

	// Reject in float space so huge coordinates never reach the int
	// conversion.
	minXf := math.Floor(min(v0.Pos.X, v1.Pos.X, v2.Pos.X))
	maxXf := math.Ceil(max(v0.Pos.X, v1.Pos.X, v2.Pos.X))
	minYf := math.Floor(min(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y))
	maxYf := math.Ceil(max(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y))
	if minXf > float64(width-1) || maxXf < 0 || minYf > float64(height-1) || maxYf < 0 {
		return
	}
	minX := int(math.Max(0, minXf))
	maxX := int(math.Min(float64(width-1), maxXf))
	minY := int(math.Max(0, minYf))
	maxY := int(math.Min(float64(height-1), maxYf))

	if v0.Z <= nearClipZ && v1.Z <= nearClipZ && v2.Z <= nearClipZ {
		r.Stats.NearRejected++
		return
	}

	iz0 := 1 / math.Max(v0.Z, minDepth)
	iz1 := 1 / math.Max(v1.Z, minDepth)
	iz2 := 1 / math.Max(v2.Z, minDepth)
	u0, t0 := v0.UV.X*iz0, v0.UV.Y*iz0
	u1, t1 := v1.UV.X*iz1, v1.UV.Y*iz1
	u2, t2 := v2.UV.X*iz2, v2.UV.Y*iz2

	A0, B0, C0 := edgeCoeffs(v1.Pos, v2.Pos)
	A1, B1, C1 := edgeCoeffs(v2.Pos, v0.Pos)
	A2, B2, C2 := edgeCoeffs(v0.Pos, v1.Pos)
	invArea := 1 / area

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := A0*px + B0*py + C0
	w1Row := A1*px + B1*py + C1
	w2Row := A2*px + B2*py + C2

	written := 0
	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		colorRow := y * color.Stride
		depthRow := y * depth.Stride

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				b0, b1, b2 := w0*invArea, w1*invArea, w2*invArea
				invZ := b0*iz0 + b1*iz1 + b2*iz2
				z := 1 / invZ

				di := depthRow + x
				if z < depth.Values[di] {
					depth.Values[di] = z
					u := (b0*u0 + b1*u1 + b2*u2) / invZ
					v := (b0*t0 + b1*t1 + b2*t2) / invZ
					color.Pixels[colorRow+x] = tex.Sample(u, v)
					written++
				}
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}

	r.Stats.PixelsWritten += written
	if written > 0 {
		r.Stats.TrianglesFilled++
	}
}

func finite(v ScreenVertex) bool {
	for _, f := range [...]float64{v.Pos.X, v.Pos.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
