package render

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(3, 4)
	fb.Clear(Black)
	fb.SetPixel(1, 0, White)
	fb.SetPixel(1, 1, Magenta)
	fb.SetPixel(2, 3, RGBA(10, 20, 30, 0))

	scr := uv.NewScreenBuffer(5, 3)
	fb.Draw(scr, uv.Rect(1, 1, 4, 2))

	cell := scr.CellAt(2, 1)
	if cell == nil || cell.Content != "▀" {
		t.Fatalf("expected half block at (2,1), got %+v", cell)
	}
	if cell.Style.Fg != White || cell.Style.Bg != Magenta {
		t.Errorf("expected white over magenta, got %v over %v", cell.Style.Fg, cell.Style.Bg)
	}

	// Transparent pixels present as black.
	if c := scr.CellAt(3, 2); c == nil || c.Style.Bg != Black {
		t.Errorf("expected black for transparent pixel, got %+v", c)
	}

	// Columns past the framebuffer width are left alone.
	if c := scr.CellAt(4, 1); c != nil && c.Content == "▀" {
		t.Error("drew beyond framebuffer width")
	}
	if c := scr.CellAt(0, 0); c != nil && c.Content == "▀" {
		t.Error("drew outside the target area")
	}
}
