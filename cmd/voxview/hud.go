package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/voxview/pkg/render"
)

var (
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0")).
			Background(lipgloss.Color("#202028")).
			Padding(0, 1)
	hudTitleStyle = hudStyle.
			Bold(true).
			Foreground(lipgloss.Color("#7FD4FF"))
	hudHintStyle = hudStyle.
			Faint(true)
)

const hudHint = "drag/arrows rotate  wheel/+- zoom  g grid  r reset  ? hud  q quit"

// hud tracks frame rate and formats the overlay shown above the map.
type hud struct {
	title     string
	visible   bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(title string) *hud {
	return &hud{title: title, visible: true, fpsTime: time.Now()}
}

// Tick counts one presented frame.
func (h *hud) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Lines returns the styled overlay rows for the viewport's last frame.
func (h *hud) Lines(v *render.Viewport) []string {
	if !h.visible {
		return nil
	}
	lines := []string{hudTitleStyle.Render(fmt.Sprintf("%s  %.0f fps", h.title, h.fps))}
	for _, l := range render.DebugLines(v) {
		lines = append(lines, hudStyle.Render(l))
	}
	return append(lines, hudHintStyle.Render(hudHint))
}

