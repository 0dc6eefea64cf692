// voxview - software-rendered viewer for layered voxel tile maps.
//
// Commands:
//
//	view    - orbit a map in the terminal with half-block pixels
//	window  - orbit a map in a desktop window
//	render  - write a single frame to a PNG file
//	import  - pack glTF/GLB models into a tileset
//
// Without a map argument the viewers show a built-in demo area.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/voxview/internal/config"
	"github.com/taigrr/voxview/internal/logger"
	"github.com/taigrr/voxview/pkg/render"
	"github.com/taigrr/voxview/pkg/tilemap"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "voxview",
		Short:        "Software-rendered viewer for layered voxel tile maps",
		SilenceUsage: true,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(
		newViewCmd(),
		newWindowCmd(),
		newRenderCmd(),
		newImportCmd(),
	)
	return root
}

// app carries the resolved configuration and logger for one command.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

// newApp loads configuration for cmd. console controls whether logs go
// to stderr; the terminal viewer turns it off since it owns the screen.
func newApp(cmd *cobra.Command, console bool) (*app, error) {
	fs := cmd.Flags()
	cfg, err := config.Load(config.ConfigPath(fs))
	if err != nil {
		return nil, err
	}
	config.ApplyFlags(cfg, fs)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, console)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if path := config.SavePath(fs); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return nil, fmt.Errorf("save config: %w", err)
		}
		log.Info("config saved", zap.String("path", path))
	}
	return &app{cfg: cfg, log: log}, nil
}

// viewport builds a viewport from the configured camera and render
// switches.
func (a *app) viewport() *render.Viewport {
	c := a.cfg
	return render.NewViewport(
		render.WithLogger(logger.Named("render")),
		render.WithCamera(render.NewOrbitCameraAt(c.Camera.Yaw, c.Camera.Pitch, c.Camera.Distance)),
		render.WithClearColor(c.ClearColor()),
		render.WithFrustumCulling(c.Render.FrustumCull),
		render.WithBackfaceCulling(!c.Render.DisableBackfaceCulling),
		render.WithGrid(c.Render.ShowGrid, render.Gray),
	)
}

// loadScene opens the map named by args, or the demo area when args is
// empty.
func (a *app) loadScene(args []string) (*tilemap.Area, error) {
	if len(args) == 0 {
		a.log.Info("no map given, showing demo area")
		return tilemap.DemoArea(), nil
	}
	return tilemap.LoadArea(args[0], a.cfg.Assets.TilesetRoot, logger.Named("tilemap"))
}

// resetCamera restores the configured orbit.
func (a *app) resetCamera(c *render.OrbitCamera) {
	*c = *render.NewOrbitCameraAt(a.cfg.Camera.Yaw, a.cfg.Camera.Pitch, a.cfg.Camera.Distance)
}
