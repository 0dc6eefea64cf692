package render

import (
	"github.com/taigrr/voxview/pkg/math3d"
	"go.uber.org/zap"
)

// Host input scaling.
const (
	// DragRadiansPerPixel converts pointer motion to orbit rotation.
	DragRadiansPerPixel = 0.01
)

// TileRef addresses a tile definition: a tileset slot and an id within
// it. ID 0 is empty space and never renders.
type TileRef struct {
	Tileset uint8
	ID      uint16
}

// IsAir reports whether the reference is the empty tile.
func (t TileRef) IsAir() bool { return t.ID == 0 }

// Scene is what a Viewport renders: a layered grid of tile references
// and a way to turn a reference into geometry.
type Scene interface {
	// Size returns the grid extent as layers, rows and columns.
	Size() (layers, rows, cols int)
	// Tile returns the reference stored at a cell.
	Tile(layer, row, col int) TileRef
	// Resolve returns the primitive for ref. A missing primitive is not an
	// error; the cell is simply not drawn.
	Resolve(ref TileRef) (*RenderPrimitive, bool)
}

// Viewport owns a camera and a render target and turns a Scene into a
// frame. It is not safe for concurrent use; hosts call it from a single
// goroutine and never overlap frames.
type Viewport struct {
	camera *OrbitCamera
	target *RenderTarget
	raster *Rasterizer
	log    *zap.Logger

	clearColor ARGB
	showGrid   bool
	gridColor  ARGB
	frames     uint64
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithLogger sets the logger used for resize and frame diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(v *Viewport) {
		if l != nil {
			v.log = l
		}
	}
}

// WithCamera replaces the default orbit camera.
func WithCamera(c *OrbitCamera) Option {
	return func(v *Viewport) {
		if c != nil {
			v.camera = c
		}
	}
}

// WithClearColor sets the background color. The default is opaque black.
func WithClearColor(c ARGB) Option {
	return func(v *Viewport) { v.clearColor = c }
}

// WithFrustumCulling enables per-tile frustum rejection.
func WithFrustumCulling(enabled bool) Option {
	return func(v *Viewport) { v.raster.FrustumCull = enabled }
}

// WithBackfaceCulling toggles back-face culling. It is on by default.
func WithBackfaceCulling(enabled bool) Option {
	return func(v *Viewport) { v.raster.DisableBackfaceCulling = !enabled }
}

// WithGrid draws the map footprint grid over each frame.
func WithGrid(enabled bool, c ARGB) Option {
	return func(v *Viewport) {
		v.showGrid = enabled
		v.gridColor = c
	}
}

// NewViewport creates a viewport with an empty render target. The first
// RenderFrame or OnResize with a positive size allocates the buffers.
func NewViewport(opts ...Option) *Viewport {
	target := NewRenderTarget(0, 0)
	v := &Viewport{
		camera:     NewOrbitCamera(),
		target:     target,
		raster:     NewRasterizer(target),
		log:        zap.NewNop(),
		clearColor: Black,
		gridColor:  Gray,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Camera returns the viewport camera.
func (v *Viewport) Camera() *OrbitCamera { return v.camera }

// Target returns the current render target.
func (v *Viewport) Target() *RenderTarget { return v.target }

// Stats returns the counters of the last rendered frame.
func (v *Viewport) Stats() FrameStats { return v.raster.Stats }

// Frames returns the number of frames rendered so far.
func (v *Viewport) Frames() uint64 { return v.frames }

// ToggleGrid flips the footprint grid overlay and reports the new state.
func (v *Viewport) ToggleGrid() bool {
	v.showGrid = !v.showGrid
	return v.showGrid
}

// OnDragRotate orbits the camera by a pointer drag of dx, dy pixels.
func (v *Viewport) OnDragRotate(dx, dy float64) {
	v.camera.Update(dx*DragRadiansPerPixel, dy*DragRadiansPerPixel)
}

// OnScrollZoom zooms in for a positive wheel delta and out otherwise.
func (v *Viewport) OnScrollZoom(delta float64) {
	if delta > 0 {
		v.camera.Zoom(ZoomIn)
	} else {
		v.camera.Zoom(ZoomOut)
	}
}

// OnResize reallocates the color and depth buffers. A zero dimension is
// ignored and the previous frame stays presentable.
func (v *Viewport) OnResize(width, height int) {
	oldW, oldH := v.target.Width(), v.target.Height()
	if !v.target.Resize(width, height) {
		v.log.Debug("ignoring resize to empty viewport",
			zap.Int("width", width),
			zap.Int("height", height),
		)
		return
	}
	if oldW != width || oldH != height {
		v.log.Debug("viewport resized",
			zap.Int("width", width),
			zap.Int("height", height),
		)
	}
}

// RenderFrame renders scene at width x height and returns the color
// buffer. The returned framebuffer is owned by the viewport and is
// overwritten by the next frame. A zero dimension returns the previous
// frame unchanged.
func (v *Viewport) RenderFrame(width, height int, scene Scene) *Framebuffer {
	if width <= 0 || height <= 0 {
		return v.target.Color
	}
	v.OnResize(width, height)

	layers, rows, cols := scene.Size()
	v.camera.BuildMatrices(width, height, float64(cols), float64(rows))
	v.target.Clear(v.clearColor)

	pipeline := CameraPipeline(v.camera, width, height)
	v.raster.SetTarget(v.target)
	v.raster.ResetStats()
	v.raster.Begin(pipeline)

	for layer := range layers {
		for row := range rows {
			for col := range cols {
				ref := scene.Tile(layer, row, col)
				if ref.IsAir() {
					continue
				}
				prim, ok := scene.Resolve(ref)
				if !ok {
					continue
				}
				v.raster.DrawMesh(prim, math3d.V3(float64(col), float64(layer), float64(row)))
			}
		}
	}

	if v.showGrid {
		DrawFootprintGrid(v.target.Color, pipeline, cols, rows, v.gridColor)
	}

	v.frames++
	return v.target.Color
}
