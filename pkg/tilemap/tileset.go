package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/taigrr/voxview/pkg/math3d"
	"github.com/taigrr/voxview/pkg/render"
)

// Tileset format constants.
const (
	TilesetMagic   uint32 = 0x53544C47 // "GLTS" little-endian
	TilesetVersion uint16 = 1
	TilesetExt            = ".gbts"

	tilesetNameLen  = 64
	tileNameLen     = 64
	tileCategoryLen = 32
	vertexSize      = 5 * 4 // x y z u v as float32
)

// Tileset format errors.
var (
	ErrInvalidTilesetMagic       = errors.New("invalid tileset magic")
	ErrUnsupportedTilesetVersion = errors.New("unsupported tileset version")
	ErrTruncatedTileset          = errors.New("truncated tileset data")
	ErrTooManyTiles              = errors.New("too many tiles for one tileset")
)

// TileDefinition describes one tile type. Primitive is nil for tiles
// without geometry such as air.
type TileDefinition struct {
	ID        uint16
	Name      string
	Category  string
	Collision uint8
	Primitive *render.RenderPrimitive
}

// Tileset is a named collection of tile definitions.
type Tileset struct {
	Name  string
	Type  TilesetType
	Tiles []TileDefinition

	index map[uint16]int
}

// NewTileset creates an empty tileset.
func NewTileset(name string, typ TilesetType) *Tileset {
	return &Tileset{Name: name, Type: typ, index: make(map[uint16]int)}
}

// Add appends def, replacing any earlier tile with the same id.
func (ts *Tileset) Add(def TileDefinition) {
	if ts.index == nil {
		ts.reindex()
	}
	if i, ok := ts.index[def.ID]; ok {
		ts.Tiles[i] = def
		return
	}
	ts.index[def.ID] = len(ts.Tiles)
	ts.Tiles = append(ts.Tiles, def)
}

// Tile looks up a definition by id.
func (ts *Tileset) Tile(id uint16) (*TileDefinition, bool) {
	if ts.index == nil || len(ts.index) != len(ts.Tiles) {
		ts.reindex()
	}
	i, ok := ts.index[id]
	if !ok {
		return nil, false
	}
	return &ts.Tiles[i], true
}

func (ts *Tileset) reindex() {
	ts.index = make(map[uint16]int, len(ts.Tiles))
	for i, t := range ts.Tiles {
		ts.index[t.ID] = i
	}
}

// RelativePath is where a map expects this tileset, relative to the
// tileset root: "<type>/<name>.gbts".
func (ts *Tileset) RelativePath() string {
	return ts.Type.String() + "/" + ts.Name + TilesetExt
}

// ParseTileset decodes a binary tileset.
func ParseTileset(data []byte) (*Tileset, error) {
	r := bytes.NewReader(data)

	var header struct {
		Magic   uint32
		Version uint16
		Count   uint16
		Name    [tilesetNameLen]byte
		Type    uint8
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedTileset)
	}
	if header.Magic != TilesetMagic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidTilesetMagic, header.Magic)
	}
	if header.Version != TilesetVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTilesetVersion, header.Version)
	}

	ts := NewTileset(fixedString(header.Name[:]), TilesetType(header.Type))
	ts.Tiles = make([]TileDefinition, 0, header.Count)
	for i := range int(header.Count) {
		def, err := parseTile(r)
		if err != nil {
			return nil, fmt.Errorf("parsing tile %d: %w", i, err)
		}
		ts.Add(def)
	}
	return ts, nil
}

func parseTile(r *bytes.Reader) (TileDefinition, error) {
	var head struct {
		ID        uint16
		Name      [tileNameLen]byte
		Category  [tileCategoryLen]byte
		Collision uint8
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return TileDefinition{}, fmt.Errorf("%w: reading tile header", ErrTruncatedTileset)
	}
	def := TileDefinition{
		ID:        head.ID,
		Name:      fixedString(head.Name[:]),
		Category:  fixedString(head.Category[:]),
		Collision: head.Collision,
	}

	var vertexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &vertexCount); err != nil {
		return def, fmt.Errorf("%w: reading vertex count", ErrTruncatedTileset)
	}
	if uint64(vertexCount)*vertexSize > uint64(r.Len()) {
		return def, fmt.Errorf("%w: %d vertices", ErrTruncatedTileset, vertexCount)
	}
	raw := make([]float32, 5*vertexCount)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return def, fmt.Errorf("%w: reading vertices", ErrTruncatedTileset)
	}

	var indexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &indexCount); err != nil {
		return def, fmt.Errorf("%w: reading index count", ErrTruncatedTileset)
	}
	if uint64(indexCount)*2 > uint64(r.Len()) {
		return def, fmt.Errorf("%w: %d indices", ErrTruncatedTileset, indexCount)
	}
	indices16 := make([]uint16, indexCount)
	if err := binary.Read(r, binary.LittleEndian, indices16); err != nil {
		return def, fmt.Errorf("%w: reading indices", ErrTruncatedTileset)
	}

	var size struct{ W, H uint16 }
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return def, fmt.Errorf("%w: reading texture size", ErrTruncatedTileset)
	}
	texels := int(size.W) * int(size.H)
	if texels*4 > r.Len() {
		return def, fmt.Errorf("%w: %dx%d texture", ErrTruncatedTileset, size.W, size.H)
	}
	pixels := make([]render.ARGB, texels)
	if err := binary.Read(r, binary.LittleEndian, pixels); err != nil {
		return def, fmt.Errorf("%w: reading texels", ErrTruncatedTileset)
	}

	if vertexCount == 0 {
		return def, nil
	}

	vertices := make([]render.Vertex, vertexCount)
	for i := range vertices {
		f := raw[i*5 : i*5+5]
		vertices[i] = render.Vertex{
			Position: math3d.V3(float64(f[0]), float64(f[1]), float64(f[2])),
			UV:       math3d.V2(float64(f[3]), float64(f[4])),
		}
	}
	indices := make([]uint32, len(indices16))
	for i, idx := range indices16 {
		indices[i] = uint32(idx)
	}

	mesh, err := render.NewMesh(vertices, indices)
	if err != nil {
		return def, fmt.Errorf("tile %d mesh: %w", def.ID, err)
	}
	tex, err := render.NewTexture(int(size.W), int(size.H), pixels)
	if err != nil {
		return def, fmt.Errorf("tile %d texture: %w", def.ID, err)
	}
	def.Primitive = &render.RenderPrimitive{Mesh: mesh, Texture: tex}
	return def, nil
}

// ReadTileset parses a tileset file.
func ReadTileset(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset file: %w", err)
	}
	ts, err := ParseTileset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

// Encode writes ts in the binary tileset format.
func (ts *Tileset) Encode(w io.Writer) error {
	if len(ts.Tiles) > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrTooManyTiles, len(ts.Tiles))
	}

	buf := new(bytes.Buffer)
	le := binary.LittleEndian
	binary.Write(buf, le, TilesetMagic)
	binary.Write(buf, le, TilesetVersion)
	binary.Write(buf, le, uint16(len(ts.Tiles)))
	buf.Write(putFixedString(ts.Name, tilesetNameLen))
	buf.WriteByte(uint8(ts.Type))

	for _, t := range ts.Tiles {
		if err := encodeTile(buf, t); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeTile(buf *bytes.Buffer, t TileDefinition) error {
	le := binary.LittleEndian
	binary.Write(buf, le, t.ID)
	buf.Write(putFixedString(t.Name, tileNameLen))
	buf.Write(putFixedString(t.Category, tileCategoryLen))
	buf.WriteByte(t.Collision)

	if t.Primitive == nil || t.Primitive.Mesh == nil || t.Primitive.Texture == nil {
		binary.Write(buf, le, uint32(0)) // vertices
		binary.Write(buf, le, uint32(0)) // indices
		binary.Write(buf, le, uint16(0)) // texture width
		binary.Write(buf, le, uint16(0)) // texture height
		return nil
	}

	mesh, tex := t.Primitive.Mesh, t.Primitive.Texture
	if mesh.VertexCount() > 0xFFFF+1 {
		return fmt.Errorf("tile %d: %d vertices exceed 16-bit indices", t.ID, mesh.VertexCount())
	}
	if tex.Width() > 0xFFFF || tex.Height() > 0xFFFF {
		return fmt.Errorf("tile %d: texture %dx%d too large", t.ID, tex.Width(), tex.Height())
	}

	binary.Write(buf, le, uint32(mesh.VertexCount()))
	for _, v := range mesh.Vertices() {
		binary.Write(buf, le, [5]float32{
			float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z),
			float32(v.UV.X), float32(v.UV.Y),
		})
	}
	binary.Write(buf, le, uint32(len(mesh.Indices())))
	for _, idx := range mesh.Indices() {
		binary.Write(buf, le, uint16(idx))
	}
	binary.Write(buf, le, uint16(tex.Width()))
	binary.Write(buf, le, uint16(tex.Height()))
	binary.Write(buf, le, tex.Pixels())
	return nil
}

// WriteTileset saves ts to path, creating parent directories.
func WriteTileset(path string, ts *Tileset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating tileset directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating tileset file: %w", err)
	}
	if err := ts.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing tileset: %w", err)
	}
	return f.Close()
}

// fixedString decodes a NUL-padded field.
func fixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// putFixedString encodes s into n bytes, always leaving a terminating
// NUL and never splitting a UTF-8 sequence.
func putFixedString(s string, n int) []byte {
	out := make([]byte, n)
	b := []byte(s)
	if len(b) > n-1 {
		b = b[:n-1]
		for len(b) > 0 && !utf8.Valid(b) {
			b = b[:len(b)-1]
		}
	}
	copy(out, b)
	return out
}
