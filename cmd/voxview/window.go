package main

import (
	"errors"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/taigrr/voxview/internal/logger"
	"github.com/taigrr/voxview/pkg/render"
	"go.uber.org/zap"
)

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window [map]",
		Short: "Orbit a map in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			area, err := a.loadScene(args)
			if err != nil {
				return err
			}
			return a.runWindow(area, titleFor(args))
		},
	}
}

// runWindow opens a resizable window and blocks until it closes.
func (a *app) runWindow(scene render.Scene, title string) error {
	g := &windowGame{
		app:      a,
		scene:    scene,
		viewport: a.viewport(),
		debug:    a.cfg.Render.ShowDebug,
	}
	ebiten.SetWindowTitle("voxview - " + title)
	ebiten.SetWindowSize(a.cfg.Viewport.Width, a.cfg.Viewport.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.cfg.Viewport.FPS)

	a.log.Info("window viewer started", zap.String("scene", title))
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// windowGame adapts a Viewport to ebiten's game loop.
type windowGame struct {
	app      *app
	scene    render.Scene
	viewport *render.Viewport
	debug    bool

	width, height int
	dragging      bool
	lastX, lastY  int

	fbImg   *ebiten.Image
	scratch []byte
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.viewport.ToggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.app.resetCamera(g.viewport.Camera())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			g.viewport.OnDragRotate(float64(x-g.lastX), float64(y-g.lastY))
		}
		g.dragging = true
		g.lastX, g.lastY = x, y
	} else {
		g.dragging = false
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.viewport.OnScrollZoom(dy)
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.viewport.RenderFrame(g.width, g.height, g.scene)
	if fb.Width == 0 || fb.Height == 0 {
		return
	}

	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width || g.fbImg.Bounds().Dy() != fb.Height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
		g.scratch = make([]byte, fb.Width*fb.Height*4)
	}

	fb.WriteRGBA(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)

	if g.debug {
		ebitenutil.DebugPrint(screen, strings.Join(render.DebugLines(g.viewport), "\n"))
	}
}

// Layout renders at the window's own resolution. A minimized window
// reports zero and the previous frame is kept.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	g.viewport.OnResize(outsideWidth, outsideHeight)
	return max(g.width, 1), max(g.height, 1)
}
