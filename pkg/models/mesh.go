package models

import (
	"math"

	"github.com/taigrr/voxview/pkg/math3d"
	"github.com/taigrr/voxview/pkg/render"
)

// meshBuilder accumulates glTF primitives into one indexed mesh.
type meshBuilder struct {
	vertices []render.Vertex
	indices  []uint32
}

// add appends one primitive. A nil index list means the positions are a
// plain triangle list. Winding and UV orientation are kept as stored.
func (b *meshBuilder) add(positions [][3]float32, uvs [][2]float32, indices []uint32) {
	base := uint32(len(b.vertices))
	for i, p := range positions {
		v := render.Vertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
		if i < len(uvs) {
			v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
		b.vertices = append(b.vertices, v)
	}

	if indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			b.indices = append(b.indices, base+uint32(i), base+uint32(i+1), base+uint32(i+2))
		}
		return
	}
	n := len(indices) - len(indices)%3
	for _, idx := range indices[:n] {
		b.indices = append(b.indices, base+idx)
	}
}

func (b *meshBuilder) bounds() render.AABB {
	if len(b.vertices) == 0 {
		return render.AABB{}
	}
	box := render.AABB{Min: b.vertices[0].Position, Max: b.vertices[0].Position}
	for _, v := range b.vertices[1:] {
		box.Min = box.Min.Min(v.Position)
		box.Max = box.Max.Max(v.Position)
	}
	return box
}

// fitUnitCell uniformly scales and translates the geometry so its bounds
// start at the origin and its largest extent is 1.
func (b *meshBuilder) fitUnitCell() {
	box := b.bounds()
	size := box.Max.Sub(box.Min)
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent <= 0 {
		return
	}
	s := 1 / extent
	for i := range b.vertices {
		b.vertices[i].Position = b.vertices[i].Position.Sub(box.Min).Scale(s)
	}
}

func (b *meshBuilder) build() (*render.Mesh, error) {
	return render.NewMesh(b.vertices, b.indices)
}
