package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"
	"os"
)

// ErrTextureSize is returned when a pixel slice does not match the
// declared texture dimensions.
var ErrTextureSize = errors.New("texture size mismatch")

// Texture is an immutable ARGB image sampled with nearest-neighbour
// lookups. Texture coordinates are clamped, never wrapped.
type Texture struct {
	width  int
	height int
	pixels []ARGB
}

// NewTexture wraps pixels (row-major, width*height entries) in a Texture.
// The slice is owned by the texture afterwards.
func NewTexture(width, height int, pixels []ARGB) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d pixels, got %d",
			ErrTextureSize, width, height, width*height, len(pixels))
	}
	return &Texture{width: width, height: height, pixels: pixels}, nil
}

// TextureFromImage copies img into a new Texture.
func TextureFromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]ARGB, width*height)
	for y := range height {
		for x := range width {
			pixels[y*width+x] = ToARGB(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return NewTexture(width, height, pixels)
}

// LoadTexture decodes a PNG or JPEG file into a Texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return TextureFromImage(img)
}

// NewCheckerTexture creates a checkerboard with cells of checkSize texels.
func NewCheckerTexture(width, height, checkSize int, c1, c2 ARGB) *Texture {
	if checkSize <= 0 {
		checkSize = 1
	}
	pixels := make([]ARGB, width*height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = c1
			} else {
				pixels[y*width+x] = c2
			}
		}
	}
	tex, err := NewTexture(width, height, pixels)
	if err != nil {
		// Only reachable with non-positive dimensions.
		return &Texture{width: 1, height: 1, pixels: []ARGB{c1}}
	}
	return tex
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Pixels returns the backing texel slice. Callers must not modify it.
func (t *Texture) Pixels() []ARGB { return t.pixels }

// Pixel returns the texel at (x, y), clamping the coordinates to the
// texture edges.
func (t *Texture) Pixel(x, y int) ARGB {
	x = clampInt(x, 0, t.width-1)
	y = clampInt(y, 0, t.height-1)
	return t.pixels[y*t.width+x]
}

// Sample returns the texel nearest to (u, v). u = 0 is the left column,
// v = 0 is the top row; both are clamped to [0, 1].
func (t *Texture) Sample(u, v float64) ARGB {
	return t.Pixel(texelIndex(u, t.width), texelIndex(v, t.height))
}

func texelIndex(c float64, size int) int {
	if math.IsNaN(c) {
		return 0
	}
	c = math.Round(c * float64(size-1))
	if c < 0 {
		return 0
	}
	if c > float64(size-1) {
		return size - 1
	}
	return int(c)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
