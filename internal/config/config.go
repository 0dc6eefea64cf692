// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/voxview/pkg/render"
)

// Config holds all viewer settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds output size and frame rate.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// CameraConfig holds the initial orbit.
type CameraConfig struct {
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	Distance float64 `yaml:"distance"`
	// Inertia enables spring-smoothed drag rotation in the terminal.
	Inertia bool `yaml:"inertia"`
}

// RenderConfig holds rasterizer switches.
type RenderConfig struct {
	FrustumCull            bool   `yaml:"frustum_cull"`
	DisableBackfaceCulling bool   `yaml:"disable_backface_culling"`
	ShowGrid               bool   `yaml:"show_grid"`
	ShowDebug              bool   `yaml:"show_debug"`
	ClearColor             string `yaml:"clear_color"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	TilesetRoot string `yaml:"tileset_root"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
			FPS:    30,
		},
		Camera: CameraConfig{
			Yaw:      render.DefaultYaw,
			Pitch:    render.DefaultPitch,
			Distance: render.DefaultDistance,
			Inertia:  true,
		},
		Render: RenderConfig{
			ShowDebug:  true,
			ClearColor: "#000000",
		},
		Assets: AssetsConfig{
			TilesetRoot: "tilesets",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that cannot be clamped silently.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport size %dx%d must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.FPS <= 0 {
		return fmt.Errorf("fps %d must be positive", c.Viewport.FPS)
	}
	if _, err := ParseColor(c.Render.ClearColor); err != nil {
		return err
	}
	return nil
}

// ClearColor returns the parsed clear color, or black when invalid.
func (c *Config) ClearColor() render.ARGB {
	col, err := ParseColor(c.Render.ClearColor)
	if err != nil {
		return render.Black
	}
	return col
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (render.ARGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return render.ARGB(v), nil
}
