// Package tilemap reads and writes layered voxel maps and the binary
// tilesets their cells refer to.
package tilemap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/voxview/pkg/render"
)

// Map dimensions.
const (
	Width  = 32 // columns
	Height = 32 // rows
	Layers = 32

	// MaxTileID is the largest id that fits the packed cell format.
	MaxTileID = 0x3FFF
	// MaxTilesets is the number of tileset slots a map can reference.
	MaxTilesets = 4
)

// ErrTileRefRange is returned for references that do not fit in a
// packed 16-bit cell.
var ErrTileRefRange = errors.New("tile reference out of range")

// TileRef is a tileset slot plus a tile id. ID 0 is air.
type TileRef = render.TileRef

// Pack encodes ref as tileset<<14 | id.
func Pack(ref TileRef) uint16 {
	return uint16(ref.Tileset&0x3)<<14 | ref.ID&MaxTileID
}

// Unpack decodes a packed cell.
func Unpack(v uint16) TileRef {
	return TileRef{Tileset: uint8(v >> 14 & 0x3), ID: v & MaxTileID}
}

// ValidRef reports an error when ref cannot be stored in a map.
func ValidRef(ref TileRef) error {
	if int(ref.Tileset) >= MaxTilesets || ref.ID > MaxTileID {
		return fmt.Errorf("%w: tileset %d id %d", ErrTileRefRange, ref.Tileset, ref.ID)
	}
	return nil
}

// TilesetType groups tilesets by the kind of area they build.
type TilesetType uint8

// Tileset types.
const (
	Regional TilesetType = iota
	Local
	Interior
)

// String returns the lowercase name used in tileset paths.
func (t TilesetType) String() string {
	switch t {
	case Regional:
		return "regional"
	case Local:
		return "local"
	case Interior:
		return "interior"
	default:
		return fmt.Sprintf("type%d", uint8(t))
	}
}

// ParseTilesetType is the inverse of TilesetType.String.
func ParseTilesetType(s string) (TilesetType, error) {
	switch strings.ToLower(s) {
	case "regional":
		return Regional, nil
	case "local":
		return Local, nil
	case "interior":
		return Interior, nil
	}
	return 0, fmt.Errorf("unknown tileset type %q", s)
}
