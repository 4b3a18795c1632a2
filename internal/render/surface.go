package render

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/gogpu/gg"

	"CalmBoard/internal/state"
)

// DefaultBackground is the board color shown before anything is drawn.
const DefaultBackground state.ColorToken = "#ffffff"

// Surface owns the persistent raster that strokes are painted onto.
// The raster is a lossy projection of the recorded samples: it is never
// rebuilt from them, only composited onto.
type Surface struct {
	ctx        *gg.Context
	background gg.RGBA
}

// New allocates a surface of the given pixel size filled with background.
func New(width, height int, background state.ColorToken) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	s := &Surface{
		ctx:        gg.NewContext(width, height),
		background: gg.Hex(string(background)),
	}
	s.applyPen()
	s.Clear()
	return s, nil
}

func (s *Surface) applyPen() {
	s.ctx.SetLineCap(gg.LineCapRound)
	s.ctx.SetLineJoin(gg.LineJoinRound)
}

// Initialize resets the raster to the given size and fills it with the background.
func (s *Surface) Initialize(width, height int) error {
	if err := s.ctx.Resize(width, height); err != nil {
		return err
	}
	s.Clear()
	return nil
}

// StrokeSegment paints a round-capped line from from to to. A nil from only
// moves the pen to to and leaves no mark.
func (s *Surface) StrokeSegment(from *state.Point, to state.Point, color state.ColorToken, size float64) error {
	s.ctx.ClearPath()
	if from == nil {
		s.ctx.MoveTo(to.X, to.Y)
		return nil
	}
	s.ctx.SetHexColor(string(color))
	s.ctx.SetLineWidth(size)
	s.ctx.MoveTo(from.X, from.Y)
	s.ctx.LineTo(to.X, to.Y)
	if err := s.ctx.Stroke(); err != nil {
		return fmt.Errorf("stroke segment: %w", err)
	}
	return nil
}

// ResizePreserving changes the raster size and repaints the previous content
// at the origin. Pixels in the overlapping region keep their exact values;
// newly exposed pixels are filled with the background.
func (s *Surface) ResizePreserving(width, height int) error {
	oldW, oldH := s.ctx.Width(), s.ctx.Height()
	if width == oldW && height == oldH {
		return nil
	}
	old := make([]uint8, len(s.ctx.ResizeTarget().Data()))
	copy(old, s.ctx.ResizeTarget().Data())

	if err := s.ctx.Resize(width, height); err != nil {
		return err
	}
	s.applyPen()
	s.Clear()

	dst := s.ctx.ResizeTarget().Data()
	rowW := min(oldW, width) * 4
	for y := 0; y < min(oldH, height); y++ {
		copy(dst[y*width*4:y*width*4+rowW], old[y*oldW*4:y*oldW*4+rowW])
	}
	log.Printf("[RENDER] Resized surface %dx%d -> %dx%d", oldW, oldH, width, height)
	return nil
}

// Clear fills the whole raster with the background color.
func (s *Surface) Clear() {
	s.ctx.ClearPath()
	s.ctx.ClearWithColor(s.background)
}

// Size returns the raster dimensions in pixels.
func (s *Surface) Size() (width, height int) {
	return s.ctx.Width(), s.ctx.Height()
}

// Image returns a copy of the raster.
func (s *Surface) Image() *image.RGBA {
	return s.ctx.ResizeTarget().ToImage()
}

// EncodePNG writes the raster as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.ctx.EncodePNG(w)
}

// Close releases the drawing context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}
