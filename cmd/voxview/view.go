package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/voxview/internal/logger"
	"github.com/taigrr/voxview/pkg/render"
	"go.uber.org/zap"
)

// Arrow keys rotate as if dragged by this many pixels.
const keyDragPixels = 12

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [map]",
		Short: "Orbit a map in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			area, err := a.loadScene(args)
			if err != nil {
				return err
			}
			return a.runTerminal(cmd.Context(), area, titleFor(args))
		},
	}
}

func titleFor(args []string) string {
	if len(args) == 0 {
		return "demo"
	}
	return args[0]
}

// runTerminal drives the viewport from terminal input at the configured
// frame rate until the context ends or the user quits. Every terminal
// cell shows two pixels, so the framebuffer is twice as tall as the
// screen.
func (a *app) runTerminal(ctx context.Context, scene render.Scene, title string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, "\x1b[?1002h") // button-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	vp := a.viewport()
	overlay := newHUD(title)

	var inertia *dragInertia
	if a.cfg.Camera.Inertia {
		inertia = newDragInertia(a.cfg.Viewport.FPS)
	}
	drag := func(dx, dy float64) {
		if inertia != nil {
			inertia.Push(dx, dy)
			return
		}
		vp.OnDragRotate(dx, dy)
	}

	var mouseDown bool
	var lastX, lastY int

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Viewport.FPS))
	defer ticker.Stop()

	a.log.Info("terminal viewer started",
		zap.String("scene", title),
		zap.Int("columns", width),
		zap.Int("rows", height),
	)

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				vp.OnResize(width, height*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					return nil
				case ev.MatchString("left", "a"):
					drag(-keyDragPixels, 0)
				case ev.MatchString("right", "d"):
					drag(keyDragPixels, 0)
				case ev.MatchString("up", "w"):
					drag(0, -keyDragPixels)
				case ev.MatchString("down", "s"):
					drag(0, keyDragPixels)
				case ev.MatchString("+", "="):
					vp.OnScrollZoom(1)
				case ev.MatchString("-", "_"):
					vp.OnScrollZoom(-1)
				case ev.MatchString("g"):
					vp.ToggleGrid()
				case ev.MatchString("r"):
					if inertia != nil {
						inertia.Stop()
					}
					a.resetCamera(vp.Camera())
				case ev.MatchString("?", "shift+/"):
					overlay.visible = !overlay.visible
					term.Erase()
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastX, lastY = ev.X, ev.Y
				if inertia != nil {
					inertia.Stop()
				}

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					drag(float64(ev.X-lastX), float64(ev.Y-lastY)*2)
					lastX, lastY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					vp.OnScrollZoom(1)
				case uv.MouseWheelDown:
					vp.OnScrollZoom(-1)
				}
			}

		case now := <-ticker.C:
			if inertia != nil && inertia.Moving() {
				vp.OnDragRotate(inertia.Step())
			}

			fb := vp.RenderFrame(width, height*2, scene)
			fb.Draw(term, uv.Rect(0, 0, width, height))
			for i, line := range overlay.Lines(vp) {
				if i >= height {
					break
				}
				uv.NewStyledString(line).Draw(term, uv.Rect(0, i, width, 1))
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			overlay.Tick(now)
		}
	}
}
