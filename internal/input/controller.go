package input

import (
	"log"

	"CalmBoard/internal/state"
)

// Recorder is the part of state.Recorder the controller drives.
type Recorder interface {
	Begin(color state.ColorToken, size float64)
	Extend(p state.Point) bool
	End()
	Color() state.ColorToken
	BrushSize() float64
}

// Surface is the part of render.Surface the controller drives.
type Surface interface {
	StrokeSegment(from *state.Point, to state.Point, color state.ColorToken, size float64) error
	Size() (width, height int)
}

// Geometry reports where the surface currently sits on screen.
type Geometry interface {
	Bounds() Rect
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func() Rect

func (f GeometryFunc) Bounds() Rect { return f() }

// State of the gesture state machine.
type State int

const (
	Idle State = iota
	Drawing
)

// Controller turns normalized input events into recorder and surface calls.
type Controller struct {
	recorder Recorder
	surface  Surface
	geometry Geometry

	state State
	last  state.Point
}

// NewController wires a controller to its collaborators.
func NewController(r Recorder, s Surface, g Geometry) *Controller {
	return &Controller{recorder: r, surface: s, geometry: g}
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

func (c *Controller) point(pos Position) state.Point {
	w, h := c.surface.Size()
	return Normalize(pos, c.geometry.Bounds(), float64(w), float64(h))
}

// Handle advances the state machine by one event.
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case Down:
		if c.state == Drawing {
			return
		}
		p := c.point(ev.Position)
		c.recorder.Begin(c.recorder.Color(), c.recorder.BrushSize())
		c.paint(nil, p)
		c.last = p
		c.state = Drawing
	case Move:
		if c.state != Drawing {
			return
		}
		p := c.point(ev.Position)
		c.recorder.Extend(p)
		prev := c.last
		c.paint(&prev, p)
		c.last = p
	case Up, Leave:
		if c.state != Drawing {
			return
		}
		c.recorder.End()
		c.state = Idle
	}
}

func (c *Controller) paint(from *state.Point, to state.Point) {
	err := c.surface.StrokeSegment(from, to, c.recorder.Color(), c.recorder.BrushSize())
	if err != nil {
		log.Printf("[INPUT] Failed to paint segment: %v", err)
	}
}
