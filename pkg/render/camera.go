package render

import (
	"math"

	"github.com/taigrr/voxview/pkg/math3d"
)

// Orbit camera limits and projection constants.
const (
	MinPitch    = -1.5
	MaxPitch    = 1.5
	MinDistance = 4.0
	MaxDistance = 100.0

	// ZoomIn and ZoomOut are the distance factors applied per wheel notch.
	ZoomIn  = 0.9
	ZoomOut = 1.1

	FieldOfView = math.Pi / 4 // 45 degrees
	NearPlane   = 0.1
	FarPlane    = 1000.0
)

// Default orbit pose.
const (
	DefaultYaw      = -0.8
	DefaultPitch    = 0.6
	DefaultDistance = 20.0
)

// OrbitCamera circles a target point on the map plane. Yaw is unbounded;
// pitch and distance are clamped on every update.
type OrbitCamera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Target   math3d.Vec3

	view math3d.Mat4
	proj math3d.Mat4
}

// NewOrbitCamera returns a camera in the default pose.
func NewOrbitCamera() *OrbitCamera {
	return NewOrbitCameraAt(DefaultYaw, DefaultPitch, DefaultDistance)
}

// NewOrbitCameraAt returns a camera with the given pose, clamped to the
// orbit limits.
func NewOrbitCameraAt(yaw, pitch, distance float64) *OrbitCamera {
	c := &OrbitCamera{Yaw: yaw, Pitch: pitch, Distance: distance}
	c.clamp()
	c.view = math3d.Identity()
	c.proj = math3d.Identity()
	return c
}

// Update adds the given deltas (radians) to yaw and pitch.
func (c *OrbitCamera) Update(yawDelta, pitchDelta float64) {
	c.Yaw += yawDelta
	c.Pitch += pitchDelta
	c.clamp()
}

// Zoom multiplies the orbit distance by factor.
func (c *OrbitCamera) Zoom(factor float64) {
	c.Distance *= factor
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	c.Pitch = math.Max(MinPitch, math.Min(MaxPitch, c.Pitch))
	c.Distance = math.Max(MinDistance, math.Min(MaxDistance, c.Distance))
}

// Eye returns the camera position for the current target and pose.
func (c *OrbitCamera) Eye() math3d.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := math3d.V3(
		math.Cos(c.Yaw)*cp,
		math.Sin(c.Pitch),
		math.Sin(c.Yaw)*cp,
	)
	return c.Target.Add(offset.Scale(c.Distance))
}

// BuildMatrices centres the target on a mapWidth x mapDepth footprint at
// y = 0 and rebuilds the view and projection matrices. viewportHeight
// must be positive.
func (c *OrbitCamera) BuildMatrices(viewportWidth, viewportHeight int, mapWidth, mapDepth float64) {
	c.Target = math3d.V3(mapWidth/2, 0, mapDepth/2)
	c.view = math3d.LookAt(c.Eye(), c.Target, math3d.Up())
	aspect := float64(viewportWidth) / float64(viewportHeight)
	c.proj = math3d.Perspective(FieldOfView, aspect, NearPlane, FarPlane)
}

// View returns the view matrix from the last BuildMatrices call.
func (c *OrbitCamera) View() math3d.Mat4 { return c.view }

// Projection returns the projection matrix from the last BuildMatrices call.
func (c *OrbitCamera) Projection() math3d.Mat4 { return c.proj }
