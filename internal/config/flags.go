package config

import "github.com/spf13/pflag"

// Flag names shared by every command.
const (
	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagWidth    = "width"
	FlagHeight   = "height"
	FlagTilesets = "tilesets"
	FlagGrid     = "grid"
	FlagCull     = "cull"
	FlagLogFile  = "log-file"

	FlagSaveConfig = "save-config"
)

// RegisterFlags adds the override flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to config file")
	fs.Bool(FlagDebug, false, "enable debug logging")
	fs.Int(FlagWidth, 0, "viewport width in pixels")
	fs.Int(FlagHeight, 0, "viewport height in pixels")
	fs.String(FlagTilesets, "", "tileset root directory")
	fs.Bool(FlagGrid, false, "draw the map footprint grid")
	fs.Bool(FlagCull, false, "enable per-tile frustum culling")
	fs.String(FlagLogFile, "", "write logs to this file")
	fs.String(FlagSaveConfig, "", "write the effective config to this file")
}

// ConfigPath returns the explicit config path from fs, if any.
func ConfigPath(fs *pflag.FlagSet) string {
	path, _ := fs.GetString(FlagConfig)
	return path
}

// SavePath returns the --save-config value, empty when unset.
func SavePath(fs *pflag.FlagSet) string {
	path, _ := fs.GetString(FlagSaveConfig)
	return path
}

// ApplyFlags overrides cfg with every flag that was set explicitly.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed(FlagDebug) {
		if debug, _ := fs.GetBool(FlagDebug); debug {
			cfg.Logging.Level = "debug"
		}
	}
	if fs.Changed(FlagWidth) {
		if w, _ := fs.GetInt(FlagWidth); w > 0 {
			cfg.Viewport.Width = w
		}
	}
	if fs.Changed(FlagHeight) {
		if h, _ := fs.GetInt(FlagHeight); h > 0 {
			cfg.Viewport.Height = h
		}
	}
	if fs.Changed(FlagTilesets) {
		cfg.Assets.TilesetRoot, _ = fs.GetString(FlagTilesets)
	}
	if fs.Changed(FlagGrid) {
		cfg.Render.ShowGrid, _ = fs.GetBool(FlagGrid)
	}
	if fs.Changed(FlagCull) {
		cfg.Render.FrustumCull, _ = fs.GetBool(FlagCull)
	}
	if fs.Changed(FlagLogFile) {
		cfg.Logging.LogFile, _ = fs.GetString(FlagLogFile)
	}
}
