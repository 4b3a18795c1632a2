package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"CalmBoard/internal/state"
)

func newTestSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h, DefaultBackground)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func isWhite(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R == 255 && c.G == 255 && c.B == 255 && c.A == 255
}

func TestNew_InvalidSize(t *testing.T) {
	for _, tt := range []struct{ w, h int }{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(tt.w, tt.h, DefaultBackground); err == nil {
			t.Errorf("New(%d, %d) should fail", tt.w, tt.h)
		}
	}
}

func TestNew_FillsBackground(t *testing.T) {
	s := newTestSurface(t, 20, 10)
	img := s.Image()
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if !isWhite(img, x, y) {
				t.Fatalf("pixel (%d,%d) = %v, want white", x, y, img.RGBAAt(x, y))
			}
		}
	}
	if w, h := s.Size(); w != 20 || h != 10 {
		t.Errorf("Size %dx%d, want 20x10", w, h)
	}
}

func TestStrokeSegment_SeedLeavesNoMark(t *testing.T) {
	s := newTestSurface(t, 50, 50)
	if err := s.StrokeSegment(nil, state.Point{X: 25, Y: 25}, "#ff0000", 10); err != nil {
		t.Fatalf("StrokeSegment: %v", err)
	}
	if !isWhite(s.Image(), 25, 25) {
		t.Error("seeding the path should not paint")
	}
}

func TestStrokeSegment_PaintsLine(t *testing.T) {
	s := newTestSurface(t, 60, 30)
	from := state.Point{X: 10, Y: 15}
	if err := s.StrokeSegment(&from, state.Point{X: 50, Y: 15}, "#ff0000", 6); err != nil {
		t.Fatalf("StrokeSegment: %v", err)
	}
	img := s.Image()
	c := img.RGBAAt(30, 15)
	if c.R < 200 || c.G > 60 || c.B > 60 {
		t.Errorf("pixel on the line = %v, want red", c)
	}
	if !isWhite(img, 30, 2) {
		t.Errorf("pixel away from the line = %v, want white", img.RGBAAt(30, 2))
	}
}

func TestResizePreserving(t *testing.T) {
	tests := []struct {
		name         string
		newW, newH   int
		checkExposed bool
	}{
		{"grow both", 120, 90, true},
		{"grow width", 120, 60, true},
		{"shrink both", 40, 30, false},
		{"same size", 80, 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSurface(t, 80, 60)
			from := state.Point{X: 5, Y: 5}
			_ = s.StrokeSegment(&from, state.Point{X: 70, Y: 50}, "#0000ff", 8)
			before := s.Image()

			if err := s.ResizePreserving(tt.newW, tt.newH); err != nil {
				t.Fatalf("ResizePreserving: %v", err)
			}
			after := s.Image()
			if w, h := s.Size(); w != tt.newW || h != tt.newH {
				t.Fatalf("Size %dx%d, want %dx%d", w, h, tt.newW, tt.newH)
			}
			for y := 0; y < min(60, tt.newH); y++ {
				for x := 0; x < min(80, tt.newW); x++ {
					if before.RGBAAt(x, y) != after.RGBAAt(x, y) {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, after.RGBAAt(x, y), before.RGBAAt(x, y))
					}
				}
			}
			if tt.checkExposed && !isWhite(after, tt.newW-1, tt.newH-1) {
				t.Errorf("exposed pixel = %v, want background", after.RGBAAt(tt.newW-1, tt.newH-1))
			}
		})
	}
}

func TestResizePreserving_InvalidSize(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	if err := s.ResizePreserving(0, 10); err == nil {
		t.Error("ResizePreserving(0, 10) should fail")
	}
	if w, h := s.Size(); w != 10 || h != 10 {
		t.Errorf("failed resize changed size to %dx%d", w, h)
	}
}

func TestSurface_Clear(t *testing.T) {
	s := newTestSurface(t, 40, 40)
	from := state.Point{X: 0, Y: 20}
	_ = s.StrokeSegment(&from, state.Point{X: 40, Y: 20}, "#000000", 10)
	s.Clear()
	img := s.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if !isWhite(img, x, y) {
				t.Fatalf("pixel (%d,%d) = %v after Clear, want white", x, y, img.RGBAAt(x, y))
			}
		}
	}
}

func TestSurface_Initialize(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	from := state.Point{X: 0, Y: 5}
	_ = s.StrokeSegment(&from, state.Point{X: 10, Y: 5}, "#000000", 4)
	if err := s.Initialize(30, 20); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !isWhite(s.Image(), 5, 5) {
		t.Error("Initialize should reset to background")
	}
}

func TestSurface_EncodePNG(t *testing.T) {
	s := newTestSurface(t, 16, 8)
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds %v, want 16x8", img.Bounds())
	}
}
