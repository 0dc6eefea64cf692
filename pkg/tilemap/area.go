package tilemap

import (
	"fmt"
	"path/filepath"

	"github.com/taigrr/voxview/pkg/render"
	"go.uber.org/zap"
)

// Area is a map together with its loaded tilesets. It implements
// render.Scene.
type Area struct {
	Map      *Map
	Tilesets []*Tileset
}

// NewArea builds an area from a map and tilesets already in memory. The
// map's path table is rewritten to match the tilesets.
func NewArea(m *Map, tilesets ...*Tileset) *Area {
	m.Tilesets = m.Tilesets[:0]
	for _, ts := range tilesets {
		m.Tilesets = append(m.Tilesets, ts.RelativePath())
	}
	return &Area{Map: m, Tilesets: tilesets}
}

// Size implements render.Scene.
func (a *Area) Size() (layers, rows, cols int) { return a.Map.Size() }

// Tile implements render.Scene.
func (a *Area) Tile(layer, row, col int) TileRef { return a.Map.Tile(layer, row, col) }

// Resolve implements render.Scene. References to unknown slots or ids,
// and tiles without geometry, resolve to nothing.
func (a *Area) Resolve(ref TileRef) (*render.RenderPrimitive, bool) {
	if int(ref.Tileset) >= len(a.Tilesets) || a.Tilesets[ref.Tileset] == nil {
		return nil, false
	}
	def, ok := a.Tilesets[ref.Tileset].Tile(ref.ID)
	if !ok || def.Primitive == nil {
		return nil, false
	}
	return def.Primitive, true
}

// LoadArea reads a map and every tileset it names. Relative tileset
// paths are resolved against root.
func LoadArea(mapPath, root string, log *zap.Logger) (*Area, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := ReadMap(mapPath)
	if err != nil {
		return nil, err
	}

	a := &Area{Map: m}
	for _, rel := range m.Tilesets {
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, filepath.FromSlash(rel))
		}
		ts, err := ReadTileset(path)
		if err != nil {
			return nil, fmt.Errorf("loading tileset %q: %w", rel, err)
		}
		log.Debug("loaded tileset",
			zap.String("path", path),
			zap.String("name", ts.Name),
			zap.Int("tiles", len(ts.Tiles)),
		)
		a.Tilesets = append(a.Tilesets, ts)
	}

	log.Info("loaded area",
		zap.String("map", mapPath),
		zap.Int("tilesets", len(a.Tilesets)),
		zap.Int("tiles", m.Count()),
	)
	return a, nil
}

// Save writes the map to mapPath and each tileset under root at its
// relative path.
func (a *Area) Save(mapPath, root string) error {
	a.Map.Tilesets = a.Map.Tilesets[:0]
	for _, ts := range a.Tilesets {
		rel := ts.RelativePath()
		if err := WriteTileset(filepath.Join(root, filepath.FromSlash(rel)), ts); err != nil {
			return err
		}
		a.Map.Tilesets = append(a.Map.Tilesets, rel)
	}
	return WriteMap(mapPath, a.Map)
}
