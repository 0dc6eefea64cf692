package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferBoundsChecked(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(-1, 0, White)
	fb.SetPixel(4, 0, White)
	fb.SetPixel(0, 3, White)
	for i, c := range fb.Pixels {
		if c != 0 {
			t.Fatalf("pixel %d written by out-of-bounds Set", i)
		}
	}
	if got := fb.Pixel(10, 10); got != 0 {
		t.Errorf("out-of-bounds Pixel = %08x, want 0", got)
	}

	fb.SetPixel(3, 2, White)
	if fb.Pixels[2*fb.Stride+3] != White {
		t.Error("in-bounds Set did not write")
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.Clear(Black)
	for i, c := range fb.Pixels {
		if c != Black {
			t.Fatalf("pixel %d = %08x, want black", i, c)
		}
	}
}

func TestFramebufferDrawImageInterface(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Set(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	if got := fb.Pixel(1, 1); got != RGB(9, 8, 7) {
		t.Errorf("Set via color.Color = %08x", got)
	}
	if fb.Bounds().Dx() != 2 || fb.Bounds().Dy() != 2 {
		t.Errorf("Bounds = %v", fb.Bounds())
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(0, 0, 9, 9, White)
	for i := range 10 {
		if fb.Pixel(i, i) != White {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}
	// Lines leaving the buffer are clipped per pixel.
	fb.DrawLine(-5, 5, 20, 5, White)
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(Black)
	fb.SetPixel(2, 1, RGB(10, 20, 30))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := ToARGB(img.At(2, 1)); got != RGB(10, 20, 30) {
		t.Errorf("decoded pixel = %08x", got)
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepthBuffer(5, 4)
	for i, v := range d.Values {
		if !math.IsInf(v, 1) {
			t.Fatalf("new depth[%d] = %v, want +Inf", i, v)
		}
	}

	d.Set(2, 3, 0.5)
	if d.At(2, 3) != 0.5 {
		t.Errorf("At = %v, want 0.5", d.At(2, 3))
	}
	d.Set(-1, 0, 0.1)
	d.Set(5, 0, 0.1)
	if !math.IsInf(d.At(-1, 0), 1) || !math.IsInf(d.At(0, 4), 1) {
		t.Error("out-of-bounds At should report +Inf")
	}

	d.Reset()
	if !math.IsInf(d.At(2, 3), 1) {
		t.Error("Reset should restore +Inf")
	}
}

func TestRenderTargetResize(t *testing.T) {
	target := NewRenderTarget(8, 6)
	target.Clear(White)
	target.Depth.Set(1, 1, 0.25)

	tests := []struct {
		name  string
		w, h  int
		ok    bool
		wantW int
		wantH int
		stale bool
	}{
		{"zero height keeps buffers", 10, 0, false, 8, 6, true},
		{"zero width keeps buffers", 0, 10, false, 8, 6, true},
		{"negative keeps buffers", -3, -3, false, 8, 6, true},
		{"same size keeps buffers", 8, 6, true, 8, 6, true},
		{"grow", 12, 9, true, 12, 9, false},
		{"shrink", 3, 2, true, 3, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := target.Resize(tt.w, tt.h); got != tt.ok {
				t.Errorf("Resize = %v, want %v", got, tt.ok)
			}
			if target.Width() != tt.wantW || target.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", target.Width(), target.Height(), tt.wantW, tt.wantH)
			}
			n := tt.wantW * tt.wantH
			if len(target.Color.Pixels) != n || len(target.Depth.Values) != n {
				t.Errorf("len color = %d, depth = %d, want %d", len(target.Color.Pixels), len(target.Depth.Values), n)
			}
			if tt.stale {
				return
			}
			for i, v := range target.Depth.Values {
				if !math.IsInf(v, 1) {
					t.Fatalf("depth[%d] = %v after resize, want +Inf", i, v)
				}
			}
		})
	}
}
