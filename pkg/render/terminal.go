package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw renders the framebuffer onto a terminal screen with half-block
// cells: each cell shows two vertically stacked pixels, the upper one as
// the foreground of "▀" and the lower one as the background. The
// framebuffer should therefore be twice as tall as area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.Pixel(x, topY)),
					Bg: cellColor(fb.Pixel(x, topY+1)),
				},
			})
		}
	}
}

func cellColor(c ARGB) ARGB {
	if c.A() == 0 {
		return Black
	}
	return c
}
