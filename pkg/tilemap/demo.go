package tilemap

import "github.com/taigrr/voxview/pkg/render"

// Demo tile ids.
const (
	DemoGrass uint16 = iota + 1
	DemoStone
	DemoWater
)

// DemoTileset returns a small tileset of textured unit cubes.
func DemoTileset() *Tileset {
	ts := NewTileset("demo", Local)
	cube := render.NewCubeMesh()
	add := func(id uint16, name, category string, collision uint8, light, dark render.ARGB) {
		ts.Add(TileDefinition{
			ID:        id,
			Name:      name,
			Category:  category,
			Collision: collision,
			Primitive: &render.RenderPrimitive{
				Mesh:    cube,
				Texture: render.NewCheckerTexture(8, 8, 2, light, dark),
			},
		})
	}
	add(DemoGrass, "grass", "ground", 1, render.RGB(0x4C, 0xAF, 0x50), render.RGB(0x38, 0x8E, 0x3C))
	add(DemoStone, "stone", "wall", 1, render.RGB(0x9E, 0x9E, 0x9E), render.RGB(0x61, 0x61, 0x61))
	add(DemoWater, "water", "liquid", 0, render.RGB(0x42, 0xA5, 0xF5), render.RGB(0x1E, 0x88, 0xE5))
	return ts
}

// DemoArea builds a grass field with a pond and stone pillars, used
// when no map is given.
func DemoArea() *Area {
	m := NewMap()
	grass := TileRef{ID: DemoGrass}
	stone := TileRef{ID: DemoStone}
	water := TileRef{ID: DemoWater}

	for row := range Height {
		for col := range Width {
			ref := grass
			dr, dc := row-20, col-10
			if dr*dr+dc*dc < 16 {
				ref = water
			}
			m.SetTile(0, row, col, ref)
		}
	}
	for _, p := range [][2]int{{4, 4}, {4, 27}, {27, 4}, {27, 27}} {
		for layer := 1; layer <= 4; layer++ {
			m.SetTile(layer, p[0], p[1], stone)
		}
	}
	for i := 12; i < 20; i++ {
		m.SetTile(1, 12, i, stone)
		m.SetTile(1, 19, i, stone)
		m.SetTile(1, i, 12, stone)
		m.SetTile(1, i, 19, stone)
	}
	return NewArea(m, DemoTileset())
}
