package state

import "log"

// Recorder owns the ordered log of stroke samples and the set of colors
// used during the current drawing session. It performs no I/O and is not
// safe for concurrent use; callers serialize access on the UI goroutine.
type Recorder struct {
	session    string
	samples    []StrokeSample
	colorsUsed map[ColorToken]struct{}
	colorOrder []ColorToken

	currentColor ColorToken
	brushSize    float64
	drawing      bool
}

// NewRecorder creates a recorder with the default black brush. Process start
// behaves like a clear, so the starting color is already in the used set.
func NewRecorder() *Recorder {
	r := &Recorder{
		currentColor: DefaultColor,
		brushSize:    DefaultBrushSize,
	}
	r.reset()
	return r
}

func (r *Recorder) reset() {
	r.session = newSessionID()
	r.samples = nil
	r.colorsUsed = make(map[ColorToken]struct{})
	r.colorOrder = nil
	r.addColor(r.currentColor)
}

func (r *Recorder) addColor(c ColorToken) {
	if _, ok := r.colorsUsed[c]; ok {
		return
	}
	r.colorsUsed[c] = struct{}{}
	r.colorOrder = append(r.colorOrder, c)
}

// Begin starts a gesture with the given brush.
func (r *Recorder) Begin(color ColorToken, size float64) {
	r.currentColor = color
	r.brushSize = size
	r.drawing = true
}

// Extend appends a sample at p using the current brush. It reports whether a
// sample was recorded; outside a gesture it does nothing.
func (r *Recorder) Extend(p Point) bool {
	if !r.drawing {
		return false
	}
	r.samples = append(r.samples, StrokeSample{
		X:     p.X,
		Y:     p.Y,
		Color: r.currentColor,
		Size:  r.brushSize,
	})
	r.addColor(r.currentColor)
	return true
}

// End finishes the current gesture. Calling it outside a gesture is harmless.
func (r *Recorder) End() {
	r.drawing = false
}

// Clear drops every sample. The active color survives and becomes the only
// entry of the used set; the brush settings are untouched.
func (r *Recorder) Clear() {
	n := len(r.samples)
	r.reset()
	log.Printf("[STATE] Cleared %d samples, new session %s", n, r.session)
}

// SetColor changes the color for subsequent samples.
func (r *Recorder) SetColor(c ColorToken) { r.currentColor = c }

// SetBrushSize changes the width for subsequent samples.
func (r *Recorder) SetBrushSize(size float64) { r.brushSize = size }

func (r *Recorder) Color() ColorToken  { return r.currentColor }
func (r *Recorder) BrushSize() float64 { return r.brushSize }
func (r *Recorder) Drawing() bool      { return r.drawing }
func (r *Recorder) Len() int           { return len(r.samples) }

// Snapshot copies the current state.
func (r *Recorder) Snapshot() Snapshot {
	samples := make([]StrokeSample, len(r.samples))
	copy(samples, r.samples)
	colors := make([]ColorToken, len(r.colorOrder))
	copy(colors, r.colorOrder)
	return Snapshot{
		Session:      r.session,
		Samples:      samples,
		Colors:       colors,
		CurrentColor: r.currentColor,
		BrushSize:    r.brushSize,
		Drawing:      r.drawing,
	}
}
