package render

import (
	"github.com/taigrr/voxview/pkg/math3d"
)

// wEpsilon is the smallest |w| that is divided through.
const wEpsilon = 1e-4

// Pipeline maps world points to clip space and clip space to pixels for
// one frame.
type Pipeline struct {
	viewProj math3d.Mat4
	width    float64
	height   float64
}

// NewPipeline builds a pipeline that applies view and then projection
// and maps to a width x height viewport.
func NewPipeline(view, projection math3d.Mat4, width, height int) Pipeline {
	return Pipeline{
		viewProj: projection.Mul(view),
		width:    float64(width),
		height:   float64(height),
	}
}

// CameraPipeline builds a pipeline from the camera's current matrices.
func CameraPipeline(c *OrbitCamera, width, height int) Pipeline {
	return NewPipeline(c.View(), c.Projection(), width, height)
}

// ViewProjection returns the combined matrix.
func (p Pipeline) ViewProjection() math3d.Mat4 { return p.viewProj }

// Transform takes a world point to clip coordinates. The divide by w is
// skipped when |w| <= 1e-4, leaving x, y, z as computed.
func (p Pipeline) Transform(world math3d.Vec3) math3d.Vec3 {
	return p.viewProj.MulVec4(math3d.Point(world)).DivideW(wEpsilon)
}

// Project maps clip x in [-1, 1] to [0, width] and clip y in [-1, 1] to
// [height, 0].
func (p Pipeline) Project(clip math3d.Vec3) math3d.Vec2 {
	return math3d.V2(
		(clip.X+1)*0.5*p.width,
		(1-clip.Y)*0.5*p.height,
	)
}
