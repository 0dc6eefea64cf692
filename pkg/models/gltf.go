// Package models imports glTF and GLB assets as render primitives.
package models

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/voxview/pkg/render"
)

// ErrNoGeometry is returned when a document has no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// Fallback texture used when an asset carries no decodable image.
var (
	FallbackLight = render.RGB(0xC0, 0xC0, 0xC0)
	FallbackDark  = render.RGB(0x60, 0x60, 0x60)
)

// Importer converts glTF documents into render primitives.
type Importer struct {
	// FitUnitCell rescales the geometry into the unit cube a map cell
	// occupies.
	FitUnitCell bool
}

// NewImporter returns an importer that fits assets to one map cell.
func NewImporter() *Importer {
	return &Importer{FitUnitCell: true}
}

// Model is an imported asset.
type Model struct {
	Name      string
	Primitive *render.RenderPrimitive
	// Textured is false when the fallback checker texture was used.
	Textured bool
}

// LoadGLB imports a .glb or .gltf file with default options.
func LoadGLB(path string) (*Model, error) {
	return NewImporter().Load(path)
}

// Load opens path and imports every triangle primitive of every mesh
// into a single primitive. The first decodable image becomes its
// texture.
func (im *Importer) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return im.Import(doc, name, filepath.Dir(path))
}

// Import converts an already decoded document. dir resolves external
// image URIs and may be empty.
func (im *Importer) Import(doc *gltf.Document, name, dir string) (*Model, error) {
	var b meshBuilder
	for _, m := range doc.Meshes {
		if err := readMesh(doc, m, &b); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}
	if len(b.indices) == 0 {
		return nil, ErrNoGeometry
	}
	if im.FitUnitCell {
		b.fitUnitCell()
	}
	mesh, err := b.build()
	if err != nil {
		return nil, err
	}

	model := &Model{Name: name}
	tex := firstTexture(doc, dir)
	if tex != nil {
		model.Textured = true
	} else {
		tex = render.NewCheckerTexture(8, 8, 4, FallbackLight, FallbackDark)
	}
	model.Primitive = &render.RenderPrimitive{Mesh: mesh, Texture: tex}
	return model, nil
}

func readMesh(doc *gltf.Document, m *gltf.Mesh, b *meshBuilder) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				if int(idx) >= len(positions) {
					return fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
				}
			}
		}

		b.add(positions, uvs, indices)
	}
	return nil
}

// firstTexture decodes the first image that is embedded in a buffer
// view or stored next to the document.
func firstTexture(doc *gltf.Document, dir string) *render.Texture {
	for _, img := range doc.Images {
		data := imageBytes(doc, img, dir)
		if len(data) == 0 {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		tex, err := render.TextureFromImage(decoded)
		if err == nil {
			return tex
		}
	}
	return nil
}

func imageBytes(doc *gltf.Document, img *gltf.Image, dir string) []byte {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if end > len(buf.Data) {
			return nil
		}
		return buf.Data[bv.ByteOffset:end]
	}
	if img.IsEmbeddedResource() {
		data, err := img.MarshalData()
		if err != nil {
			return nil
		}
		return data
	}
	if img.URI == "" || dir == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.URI)))
	if err != nil {
		return nil
	}
	return data
}
