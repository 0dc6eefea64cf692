package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// restVelocity is the speed, in pixels per tick, below which an axis
// stops.
const restVelocity = 0.05

// dragAxis carries drag velocity for one axis and lets a critically
// damped spring pull it back to zero.
type dragAxis struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newDragAxis(fps int) dragAxis {
	return dragAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// step returns this tick's motion and decays the velocity.
func (a *dragAxis) step() float64 {
	v := a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	if math.Abs(a.velocity) < restVelocity && math.Abs(a.accel) < restVelocity {
		a.velocity, a.accel = 0, 0
	}
	return v
}

// dragInertia smooths pointer drags into a gliding orbit. Drag deltas
// are pushed as velocity and drained one tick at a time.
type dragInertia struct {
	x, y dragAxis
	fps  int
}

func newDragInertia(fps int) *dragInertia {
	return &dragInertia{x: newDragAxis(fps), y: newDragAxis(fps), fps: fps}
}

// Push adds a drag of dx, dy pixels.
func (d *dragInertia) Push(dx, dy float64) {
	d.x.velocity += dx
	d.y.velocity += dy
}

// Step returns the drag to apply this tick.
func (d *dragInertia) Step() (dx, dy float64) {
	return d.x.step(), d.y.step()
}

// Moving reports whether any velocity remains.
func (d *dragInertia) Moving() bool {
	return d.x.velocity != 0 || d.y.velocity != 0
}

// Stop discards any remaining velocity.
func (d *dragInertia) Stop() {
	*d = *newDragInertia(d.fps)
}
