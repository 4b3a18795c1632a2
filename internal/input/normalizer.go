package input

import "CalmBoard/internal/state"

// Position is a pointer location in viewport (window) coordinates.
type Position struct{ X, Y float64 }

// Rect is the on-screen bounding box of the drawing surface.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Normalize maps a viewport position to surface pixels, correcting for the
// difference between the displayed size and the backing raster size.
// Positions outside rect are extrapolated, not clamped.
func Normalize(pos Position, rect Rect, surfaceWidth, surfaceHeight float64) state.Point {
	sx, sy := 1.0, 1.0
	if rect.Width != 0 {
		sx = surfaceWidth / rect.Width
	}
	if rect.Height != 0 {
		sy = surfaceHeight / rect.Height
	}
	return state.Point{
		X: (pos.X - rect.Left) * sx,
		Y: (pos.Y - rect.Top) * sy,
	}
}
