package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/voxview/pkg/math3d"
)

var (
	// ErrIndexCount is returned when an index buffer is not a whole
	// number of triangles.
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	// ErrIndexRange is returned when an index points past the vertex buffer.
	ErrIndexRange = errors.New("index out of range")
)

// Vertex is a mesh-local position with its texture coordinate.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Mesh is an immutable indexed triangle list with precomputed bounds.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
	bounds   AABB
}

// NewMesh validates the index buffer and computes the bounds. The slices
// are owned by the mesh afterwards.
func NewMesh(vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrIndexCount, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: indices[%d]=%d with %d vertices", ErrIndexRange, i, idx, len(vertices))
		}
	}

	m := &Mesh{vertices: vertices, indices: indices}
	if len(vertices) > 0 {
		m.bounds = AABB{Min: vertices[0].Position, Max: vertices[0].Position}
		for _, v := range vertices[1:] {
			m.bounds.Min = m.bounds.Min.Min(v.Position)
			m.bounds.Max = m.bounds.Max.Max(v.Position)
		}
	}
	return m, nil
}

// Vertices returns the vertex buffer. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Indices returns the index buffer. Callers must not modify it.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Bounds returns the mesh-local bounding box.
func (m *Mesh) Bounds() AABB { return m.bounds }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }

// NewCubeMesh builds the unit cube spanning (0,0,0)-(1,1,1): 8 shared
// corners and 12 counter-clockwise triangles. Corner i sits at
// (i&1, i>>1&1, i>>2&1) with UV (x, z).
func NewCubeMesh() *Mesh {
	vertices := make([]Vertex, 8)
	for i := range vertices {
		x, y, z := float64(i&1), float64(i>>1&1), float64(i>>2&1)
		vertices[i] = Vertex{Position: math3d.V3(x, y, z), UV: math3d.V2(x, z)}
	}

	quads := [6][4]uint32{
		{1, 3, 7, 5}, // +X
		{0, 4, 6, 2}, // -X
		{2, 6, 7, 3}, // +Y
		{0, 1, 5, 4}, // -Y
		{4, 5, 7, 6}, // +Z
		{0, 2, 3, 1}, // -Z
	}
	indices := make([]uint32, 0, 36)
	for _, q := range quads {
		indices = append(indices, q[0], q[1], q[2], q[0], q[2], q[3])
	}

	m, _ := NewMesh(vertices, indices)
	return m
}

// RenderPrimitive pairs a mesh with its texture. One primitive is shared
// by every placement of a tile type.
type RenderPrimitive struct {
	Mesh    *Mesh
	Texture *Texture
}
