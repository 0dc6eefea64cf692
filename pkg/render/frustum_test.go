package render

import (
	"math"
	"testing"

	"github.com/taigrr/voxview/pkg/math3d"
)

func testFrustum() Frustum {
	view := math3d.LookAt(math3d.V3(0, 0, 10), math3d.V3(0, 0, 0), math3d.Up())
	proj := math3d.Perspective(math.Pi/4, 1, NearPlane, FarPlane)
	return FrustumFromMatrix(proj.Mul(view))
}

func TestPlaneDistance(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: -2}
	if got := plane.Distance(math3d.V3(5, 5, 5)); got != 3 {
		t.Errorf("Distance = %v, want 3", got)
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		if math.Abs(p.Normal.Len()-1) > 1e-9 {
			t.Errorf("plane %d normal length = %v", i, p.Normal.Len())
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		name  string
		point math3d.Vec3
		want  bool
	}{
		{"origin", math3d.V3(0, 0, 0), true},
		{"behind camera", math3d.V3(0, 0, 20), false},
		{"far left", math3d.V3(-100, 0, 0), false},
		{"beyond far plane", math3d.V3(0, 0, -2000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	f := testFrustum()
	unit := AABB{Min: math3d.V3(0, 0, 0), Max: math3d.V3(1, 1, 1)}
	tests := []struct {
		name   string
		offset math3d.Vec3
		want   bool
	}{
		{"at origin", math3d.V3(0, 0, 0), true},
		{"straddling left plane", math3d.V3(-4.6, 0, 0), true},
		{"outside right", math3d.V3(50, 0, 0), false},
		{"behind", math3d.V3(0, 0, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectAABB(unit.Translate(tt.offset)); got != tt.want {
				t.Errorf("IntersectAABB = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBCenter(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, 0, 2), Max: math3d.V3(1, 4, 4)}
	if got := box.Center(); got != math3d.V3(0, 2, 3) {
		t.Errorf("Center = %v", got)
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	f := testFrustum()
	box := AABB{Min: math3d.V3(0, 0, 0), Max: math3d.V3(1, 1, 1)}

	for b.Loop() {
		_ = f.IntersectAABB(box)
	}
}
