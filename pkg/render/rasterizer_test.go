package render

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/voxview/pkg/math3d"
)

// frontTriangle is counter-clockwise on screen (y down), so it is
// front-facing.
var frontTriangle = [3]math3d.Vec2{
	math3d.V2(2, 2),
	math3d.V2(2, 18),
	math3d.V2(18, 2),
}

func screenTri(pos [3]math3d.Vec2, z [3]float64) (ScreenVertex, ScreenVertex, ScreenVertex) {
	return ScreenVertex{Pos: pos[0], Z: z[0], UV: math3d.V2(0, 0)},
		ScreenVertex{Pos: pos[1], Z: z[1], UV: math3d.V2(0, 1)},
		ScreenVertex{Pos: pos[2], Z: z[2], UV: math3d.V2(1, 0)}
}

func createTestRasterizer(width, height int) (*Rasterizer, *RenderTarget) {
	target := NewRenderTarget(width, height)
	target.Clear(Black)
	return NewRasterizer(target), target
}

func solidTexture(c ARGB) *Texture {
	tex, _ := NewTexture(1, 1, []ARGB{c})
	return tex
}

func countWritten(target *RenderTarget) int {
	n := 0
	for _, d := range target.Depth.Values {
		if !math.IsInf(d, 1) {
			n++
		}
	}
	return n
}

func TestEdgeCoeffsMatchEdge(t *testing.T) {
	a, b := math3d.V2(1.5, -2), math3d.V2(7, 3.25)
	A, B, C := edgeCoeffs(a, b)
	for _, p := range []math3d.Vec2{{X: 0, Y: 0}, {X: 4.5, Y: 9}, {X: -3, Y: 2.5}} {
		want := edge(a, b, p)
		got := A*p.X + B*p.Y + C
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("edge at %v: coeffs give %v, want %v", p, got, want)
		}
	}
}

func TestDrawTriangleDepthIsHarmonicMean(t *testing.T) {
	r, target := createTestRasterizer(20, 20)
	z := [3]float64{0.2, 0.5, 0.8}
	v0, v1, v2 := screenTri(frontTriangle, z)
	r.DrawTriangle(v0, v1, v2, solidTexture(White))

	area := edge(frontTriangle[0], frontTriangle[1], frontTriangle[2])
	tests := []struct {
		name string
		x, y int
	}{
		{"near corner", 3, 3},
		{"interior", 5, 5},
		{"near hypotenuse", 9, 8},
		{"along left edge", 2, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := math3d.V2(float64(tt.x)+0.5, float64(tt.y)+0.5)
			w0 := edge(frontTriangle[1], frontTriangle[2], p) / area
			w1 := edge(frontTriangle[2], frontTriangle[0], p) / area
			w2 := edge(frontTriangle[0], frontTriangle[1], p) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				t.Fatalf("pixel (%d,%d) is outside the test triangle", tt.x, tt.y)
			}
			want := 1 / (w0/z[0] + w1/z[1] + w2/z[2])
			got := target.Depth.At(tt.x, tt.y)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("depth = %v, want %v", got, want)
			}
		})
	}
}

func TestDrawTriangleIdempotent(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 1, RGB(200, 40, 40), RGB(40, 200, 40))
	v0, v1, v2 := screenTri(frontTriangle, [3]float64{0.3, 0.6, 0.9})

	once, onceTarget := createTestRasterizer(20, 20)
	once.DrawTriangle(v0, v1, v2, tex)

	twice, twiceTarget := createTestRasterizer(20, 20)
	twice.DrawTriangle(v0, v1, v2, tex)
	twice.DrawTriangle(v0, v1, v2, tex)

	for i := range onceTarget.Color.Pixels {
		if onceTarget.Color.Pixels[i] != twiceTarget.Color.Pixels[i] {
			t.Fatalf("pixel %d differs: %08x vs %08x", i, onceTarget.Color.Pixels[i], twiceTarget.Color.Pixels[i])
		}
		if onceTarget.Depth.Values[i] != twiceTarget.Depth.Values[i] {
			t.Fatalf("depth %d differs: %v vs %v", i, onceTarget.Depth.Values[i], twiceTarget.Depth.Values[i])
		}
	}
	if twice.Stats.TrianglesFilled != 1 {
		t.Errorf("second draw should write nothing, filled = %d", twice.Stats.TrianglesFilled)
	}
}

func TestDrawTriangleWinding(t *testing.T) {
	tex := solidTexture(White)
	z := [3]float64{0.5, 0.5, 0.5}

	tests := []struct {
		name       string
		reversed   bool
		noCulling  bool
		wantPixels bool
		wantCulled int
	}{
		{"front facing drawn", false, false, true, 0},
		{"reversed culled", true, false, false, 1},
		{"reversed drawn without culling", true, true, true, 0},
		{"front drawn without culling", false, true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, target := createTestRasterizer(20, 20)
			r.DisableBackfaceCulling = tt.noCulling
			v0, v1, v2 := screenTri(frontTriangle, z)
			if tt.reversed {
				v1, v2 = v2, v1
			}
			r.DrawTriangle(v0, v1, v2, tex)

			got := countWritten(target) > 0
			if got != tt.wantPixels {
				t.Errorf("drawn = %v, want %v", got, tt.wantPixels)
			}
			if r.Stats.BackfaceCulled != tt.wantCulled {
				t.Errorf("BackfaceCulled = %d, want %d", r.Stats.BackfaceCulled, tt.wantCulled)
			}
		})
	}
}

func TestDrawTriangleSameCoverageBothWindings(t *testing.T) {
	tex := solidTexture(White)
	v0, v1, v2 := screenTri(frontTriangle, [3]float64{0.5, 0.5, 0.5})

	front, frontTarget := createTestRasterizer(20, 20)
	front.DrawTriangle(v0, v1, v2, tex)

	back, backTarget := createTestRasterizer(20, 20)
	back.DisableBackfaceCulling = true
	back.DrawTriangle(v0, v2, v1, tex)

	if a, b := countWritten(frontTarget), countWritten(backTarget); a != b || a == 0 {
		t.Errorf("coverage front=%d back=%d, want equal and non-zero", a, b)
	}
}

func TestDrawTriangleDegenerate(t *testing.T) {
	tex := solidTexture(White)
	nan := math.NaN()

	tests := []struct {
		name string
		pos  [3]math3d.Vec2
		z    [3]float64
	}{
		{"collinear", [3]math3d.Vec2{{X: 1, Y: 1}, {X: 5, Y: 5}, {X: 10, Y: 10}}, [3]float64{0.5, 0.5, 0.5}},
		{"single point", [3]math3d.Vec2{{X: 4, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 4}}, [3]float64{0.5, 0.5, 0.5}},
		{"nan position", [3]math3d.Vec2{{X: nan, Y: 1}, {X: 2, Y: 18}, {X: 18, Y: 2}}, [3]float64{0.5, 0.5, 0.5}},
		{"infinite position", [3]math3d.Vec2{{X: math.Inf(-1), Y: 1}, {X: 2, Y: 18}, {X: 18, Y: 2}}, [3]float64{0.5, 0.5, 0.5}},
		{"entirely off screen", [3]math3d.Vec2{{X: 102, Y: 102}, {X: 102, Y: 118}, {X: 118, Y: 102}}, [3]float64{0.5, 0.5, 0.5}},
		{"before near plane", frontTriangle, [3]float64{-1, -1.5, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, target := createTestRasterizer(20, 20)
			v0, v1, v2 := screenTri(tt.pos, tt.z)
			r.DrawTriangle(v0, v1, v2, tex)
			if n := countWritten(target); n != 0 {
				t.Errorf("wrote %d pixels, want 0", n)
			}
		})
	}
}

func TestDrawTriangleHugeCoordinatesReturn(t *testing.T) {
	tests := []struct {
		name string
		pos  [3]math3d.Vec2
	}{
		{"far right", [3]math3d.Vec2{{X: 1e19, Y: 10}, {X: 1e19, Y: 50}, {X: 2e19, Y: 10}}},
		{"far below", [3]math3d.Vec2{{X: 10, Y: 1e19}, {X: 10, Y: 2e19}, {X: 50, Y: 1e19}}},
		{"far left", [3]math3d.Vec2{{X: -2e19, Y: 10}, {X: -2e19, Y: 50}, {X: -1e19, Y: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, target := createTestRasterizer(64, 64)
			v0, v1, v2 := screenTri(tt.pos, [3]float64{0.5, 0.5, 0.5})

			done := make(chan struct{})
			go func() {
				defer close(done)
				r.DrawTriangle(v0, v1, v2, solidTexture(White))
			}()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("DrawTriangle did not return for an off-screen triangle")
			}

			if r.Stats.BackfaceCulled != 0 {
				t.Fatal("test triangle should be front-facing")
			}
			if n := countWritten(target); n != 0 {
				t.Errorf("wrote %d pixels, want 0", n)
			}
		})
	}
}

func TestDrawTriangleStraddlingNearPlane(t *testing.T) {
	r, target := createTestRasterizer(20, 20)
	v0, v1, v2 := screenTri(frontTriangle, [3]float64{-2, -1, 0.5})
	r.DrawTriangle(v0, v1, v2, solidTexture(White))
	if countWritten(target) == 0 {
		t.Error("triangle with one vertex past the near plane should be drawn")
	}
}

func TestDrawTriangleZeroDepthVertex(t *testing.T) {
	r, target := createTestRasterizer(20, 20)
	v0, v1, v2 := screenTri(frontTriangle, [3]float64{0, 0.5, 0.5})
	r.DrawTriangle(v0, v1, v2, solidTexture(White))

	if countWritten(target) == 0 {
		t.Fatal("triangle with a vertex at z = 0 should still be drawn")
	}
	for i, d := range target.Depth.Values {
		if math.IsNaN(d) || d <= 0 {
			t.Fatalf("depth[%d] = %v, want positive", i, d)
		}
	}
	// Next to the z = 0 vertex the clamped 1e-4 dominates.
	if d := target.Depth.At(2, 2); d > 1e-3 {
		t.Errorf("depth near z=0 vertex = %v, want close to 1e-4", d)
	}
}

func TestDrawTriangleDepthTest(t *testing.T) {
	red, blue := solidTexture(RGB(255, 0, 0)), solidTexture(RGB(0, 0, 255))

	tests := []struct {
		name       string
		firstZ     float64
		secondZ    float64
		wantCenter ARGB
	}{
		{"nearer second overwrites", 0.8, 0.4, RGB(0, 0, 255)},
		{"farther second hidden", 0.4, 0.8, RGB(255, 0, 0)},
		{"equal depth keeps first", 0.5, 0.5, RGB(255, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, target := createTestRasterizer(20, 20)
			a0, a1, a2 := screenTri(frontTriangle, [3]float64{tt.firstZ, tt.firstZ, tt.firstZ})
			r.DrawTriangle(a0, a1, a2, red)
			b0, b1, b2 := screenTri(frontTriangle, [3]float64{tt.secondZ, tt.secondZ, tt.secondZ})
			r.DrawTriangle(b0, b1, b2, blue)

			if got := target.Color.Pixel(5, 5); got != tt.wantCenter {
				t.Errorf("pixel = %08x, want %08x", got, tt.wantCenter)
			}
		})
	}
}

func TestDrawTrianglePerspectiveCorrectUV(t *testing.T) {
	// Left half black, right half white. With constant depth the U
	// coordinate interpolates linearly in screen space.
	tex, _ := NewTexture(2, 1, []ARGB{Black, White})
	r, target := createTestRasterizer(40, 40)
	v0 := ScreenVertex{Pos: math3d.V2(0, 0), Z: 0.5, UV: math3d.V2(0, 0)}
	v1 := ScreenVertex{Pos: math3d.V2(0, 40), Z: 0.5, UV: math3d.V2(0, 0)}
	v2 := ScreenVertex{Pos: math3d.V2(40, 0), Z: 0.5, UV: math3d.V2(1, 0)}
	r.DrawTriangle(v0, v1, v2, tex)

	if got := target.Color.Pixel(5, 5); got != Black {
		t.Errorf("left pixel = %08x, want black", got)
	}
	if got := target.Color.Pixel(30, 2); got != White {
		t.Errorf("right pixel = %08x, want white", got)
	}

	// Pushing the right vertex further away shifts the midpoint of the
	// texture towards it.
	r2, target2 := createTestRasterizer(40, 40)
	v2.Z = 0.95
	v0.Z = 0.05
	v1.Z = 0.05
	r2.DrawTriangle(v0, v1, v2, tex)
	if got := target2.Color.Pixel(22, 1); got != Black {
		t.Errorf("perspective pixel = %08x, want black", got)
	}
}

func TestDrawMeshRejectsNearPlane(t *testing.T) {
	target := NewRenderTarget(64, 64)
	target.Clear(Black)
	r := NewRasterizer(target)

	cam := NewOrbitCameraAt(0, 0, MinDistance)
	cam.BuildMatrices(64, 64, 0, 0)
	r.Begin(CameraPipeline(cam, 64, 64))

	// The eye sits at (4, 0, 0) looking down -X. This triangle lies
	// between the eye and the near plane, so every clip z is below -1.
	tooClose, err := NewMesh([]Vertex{
		{Position: math3d.V3(3.95, -0.01, -0.01)},
		{Position: math3d.V3(3.95, -0.01, 0.01)},
		{Position: math3d.V3(3.95, 0.01, 0.01)},
	}, []uint32{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	prim := &RenderPrimitive{Mesh: tooClose, Texture: solidTexture(White)}
	r.DrawMesh(prim, math3d.V3(0, 0, 0))

	if r.Stats.Triangles != 1 || r.Stats.NearRejected != 1 {
		t.Errorf("Triangles = %d, NearRejected = %d, want 1 and 1", r.Stats.Triangles, r.Stats.NearRejected)
	}
	if countWritten(target) != 0 {
		t.Error("geometry before the near plane must not be drawn")
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	r, target := createTestRasterizer(200, 200)
	tex := NewCheckerTexture(8, 8, 2, White, Gray)
	v0 := ScreenVertex{Pos: math3d.V2(10, 10), Z: 0.5, UV: math3d.V2(0, 0)}
	v1 := ScreenVertex{Pos: math3d.V2(10, 190), Z: 0.6, UV: math3d.V2(0, 1)}
	v2 := ScreenVertex{Pos: math3d.V2(190, 10), Z: 0.7, UV: math3d.V2(1, 0)}

	for b.Loop() {
		target.Depth.Reset()
		r.DrawTriangle(v0, v1, v2, tex)
	}
}
