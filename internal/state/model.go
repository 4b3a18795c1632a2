package state

// Point is a position in surface-local pixel coordinates.
type Point struct{ X, Y float64 }

// ColorToken identifies a chosen color, usually a hex code like "#ff0000".
type ColorToken string

// StrokeSample is one recorded point with the brush that was active when it was recorded.
type StrokeSample struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Color ColorToken `json:"color"`
	Size  float64    `json:"size"`
}

// Point returns the sample position.
func (s StrokeSample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// Snapshot is a copy of the drawing state taken at one instant.
// Nothing in a Snapshot aliases the Recorder that produced it.
type Snapshot struct {
	Session      string
	Samples      []StrokeSample
	Colors       []ColorToken // colors used, in first-use order
	CurrentColor ColorToken
	BrushSize    float64
	Drawing      bool
}

// Empty reports whether no samples were recorded.
func (s Snapshot) Empty() bool {
	return len(s.Samples) == 0
}

const (
	DefaultColor     ColorToken = "#000000"
	DefaultBrushSize float64    = 3
)
