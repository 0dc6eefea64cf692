package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const cellCount = Layers * Height * Width

// Map format errors.
var (
	ErrTruncatedMap = errors.New("truncated map data")
	ErrPathTooLong  = errors.New("tileset path too long")
)

// Map is a fixed 32x32x32 grid of tile references plus the tileset
// paths its slots refer to. The zero value is an all-air map.
type Map struct {
	// Tilesets holds one path per slot, relative to the tileset root.
	Tilesets []string

	cells [cellCount]TileRef
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

func cellIndex(layer, row, col int) (int, bool) {
	if layer < 0 || layer >= Layers || row < 0 || row >= Height || col < 0 || col >= Width {
		return 0, false
	}
	return (layer*Height+row)*Width + col, true
}

// Size returns the grid extent as layers, rows and columns.
func (m *Map) Size() (layers, rows, cols int) {
	return Layers, Height, Width
}

// Tile returns the reference at a cell. Out-of-range cells are air.
func (m *Map) Tile(layer, row, col int) TileRef {
	i, ok := cellIndex(layer, row, col)
	if !ok {
		return TileRef{}
	}
	return m.cells[i]
}

// SetTile stores ref at a cell.
func (m *Map) SetTile(layer, row, col int, ref TileRef) error {
	if err := ValidRef(ref); err != nil {
		return err
	}
	i, ok := cellIndex(layer, row, col)
	if !ok {
		return fmt.Errorf("cell (%d, %d, %d) outside %dx%dx%d map", layer, row, col, Layers, Height, Width)
	}
	m.cells[i] = ref
	return nil
}

// Fill sets every cell of one layer to ref.
func (m *Map) Fill(layer int, ref TileRef) error {
	for row := range Height {
		for col := range Width {
			if err := m.SetTile(layer, row, col, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of non-air cells.
func (m *Map) Count() int {
	n := 0
	for _, c := range m.cells {
		if !c.IsAir() {
			n++
		}
	}
	return n
}

// ParseMap decodes a binary map: a tileset path table, the packed cells
// in layer, row, column order and a reserved plane of one byte per cell.
func ParseMap(data []byte) (*Map, error) {
	r := bytes.NewReader(data)
	m := NewMap()

	count, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: reading tileset count", ErrTruncatedMap)
	}
	for i := range int(count) {
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: reading tileset %d path length", ErrTruncatedMap, i)
		}
		path := make([]byte, n)
		if _, err := io.ReadFull(r, path); err != nil {
			return nil, fmt.Errorf("%w: reading tileset %d path", ErrTruncatedMap, i)
		}
		m.Tilesets = append(m.Tilesets, fixedString(path))
	}

	packed := make([]uint16, cellCount)
	if err := binary.Read(r, binary.LittleEndian, packed); err != nil {
		return nil, fmt.Errorf("%w: reading cells", ErrTruncatedMap)
	}
	for i, v := range packed {
		m.cells[i] = Unpack(v)
	}

	// The trailing plane is reserved and always zero; older writers may
	// omit it.
	return m, nil
}

// ReadMap parses a map file.
func ReadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Encode writes m in the binary map format.
func (m *Map) Encode(w io.Writer) error {
	if len(m.Tilesets) > 0xFF {
		return fmt.Errorf("map references %d tilesets", len(m.Tilesets))
	}

	buf := new(bytes.Buffer)
	buf.WriteByte(uint8(len(m.Tilesets)))
	for _, p := range m.Tilesets {
		if len(p) > 0xFFFF {
			return fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(p))
		}
		binary.Write(buf, binary.LittleEndian, uint16(len(p)))
		buf.WriteString(p)
	}

	packed := make([]uint16, cellCount)
	for i, c := range m.cells {
		packed[i] = Pack(c)
	}
	binary.Write(buf, binary.LittleEndian, packed)
	buf.Write(make([]byte, cellCount))

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteMap saves m to path, creating parent directories.
func WriteMap(path string, m *Map) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating map directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating map file: %w", err)
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing map: %w", err)
	}
	return f.Close()
}
