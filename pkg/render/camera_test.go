package render

import (
	"math"
	"testing"

	"github.com/taigrr/voxview/pkg/math3d"
)

func TestOrbitCameraDefaults(t *testing.T) {
	c := NewOrbitCamera()
	if c.Yaw != -0.8 || c.Pitch != 0.6 || c.Distance != 20 {
		t.Errorf("defaults = %v/%v/%v, want -0.8/0.6/20", c.Yaw, c.Pitch, c.Distance)
	}
}

func TestOrbitCameraPitchClamp(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"small", 0.2, 0.8},
		{"past top", 5, MaxPitch},
		{"past bottom", -5, MinPitch},
		{"exactly top", 0.9, MaxPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.Update(0, tt.delta)
			if math.Abs(c.Pitch-tt.want) > 1e-12 {
				t.Errorf("pitch = %v, want %v", c.Pitch, tt.want)
			}
		})
	}
}

func TestOrbitCameraYawUnbounded(t *testing.T) {
	c := NewOrbitCamera()
	for range 100 {
		c.Update(1, 0)
	}
	if math.Abs(c.Yaw-99.2) > 1e-9 {
		t.Errorf("yaw = %v, want 99.2", c.Yaw)
	}
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.Zoom(ZoomIn)
	if math.Abs(c.Distance-18) > 1e-12 {
		t.Errorf("zoom in = %v, want 18", c.Distance)
	}
	c.Zoom(ZoomOut)
	if math.Abs(c.Distance-19.8) > 1e-12 {
		t.Errorf("zoom out = %v, want 19.8", c.Distance)
	}

	for range 100 {
		c.Zoom(ZoomIn)
	}
	if c.Distance != MinDistance {
		t.Errorf("distance = %v, want %v", c.Distance, MinDistance)
	}
	for range 100 {
		c.Zoom(ZoomOut)
	}
	if c.Distance != MaxDistance {
		t.Errorf("distance = %v, want %v", c.Distance, MaxDistance)
	}
}

func TestOrbitCameraEye(t *testing.T) {
	c := NewOrbitCameraAt(0, 0, 10)
	c.BuildMatrices(100, 100, 32, 32)
	if c.Target != math3d.V3(16, 0, 16) {
		t.Fatalf("target = %v, want map centre", c.Target)
	}
	eye := c.Eye()
	if math.Abs(eye.X-26) > 1e-9 || math.Abs(eye.Y) > 1e-9 || math.Abs(eye.Z-16) > 1e-9 {
		t.Errorf("eye = %v, want (26, 0, 16)", eye)
	}

	c.Update(math.Pi/2, math.Pi/4)
	eye = c.Eye()
	want := math3d.V3(16, 10*math.Sin(math.Pi/4), 16+10*math.Cos(math.Pi/4))
	if eye.Sub(want).Len() > 1e-9 {
		t.Errorf("eye = %v, want %v", eye, want)
	}
}

func TestPipelineProjectCorners(t *testing.T) {
	p := NewPipeline(math3d.Identity(), math3d.Identity(), 800, 600)
	tests := []struct {
		name string
		clip math3d.Vec3
		want math3d.Vec2
	}{
		{"top left", math3d.V3(-1, 1, 0), math3d.V2(0, 0)},
		{"bottom right", math3d.V3(1, -1, 0), math3d.V2(800, 600)},
		{"centre", math3d.V3(0, 0, 0), math3d.V2(400, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Project(tt.clip); got != tt.want {
				t.Errorf("Project(%v) = %v, want %v", tt.clip, got, tt.want)
			}
		})
	}
}

func TestPipelineTransformTargetIsCentred(t *testing.T) {
	c := NewOrbitCamera()
	c.BuildMatrices(800, 600, 32, 32)
	p := CameraPipeline(c, 800, 600)

	clip := p.Transform(c.Target)
	if math.Abs(clip.X) > 1e-9 || math.Abs(clip.Y) > 1e-9 {
		t.Errorf("target clip = %v, want centred", clip)
	}
	if clip.Z <= -1 || clip.Z >= 1 {
		t.Errorf("target clip z = %v, want inside (-1, 1)", clip.Z)
	}
	s := p.Project(clip)
	if math.Abs(s.X-400) > 1e-6 || math.Abs(s.Y-300) > 1e-6 {
		t.Errorf("target screen = %v, want (400, 300)", s)
	}
}

func TestPipelineTransformSkipsTinyW(t *testing.T) {
	// Projection whose w row is zero, so no divide happens.
	var proj math3d.Mat4
	proj[0], proj[5], proj[10] = 2, 3, 4
	p := NewPipeline(math3d.Identity(), proj, 10, 10)
	got := p.Transform(math3d.V3(1, 1, 1))
	if got != math3d.V3(2, 3, 4) {
		t.Errorf("Transform = %v, want (2, 3, 4)", got)
	}
}
