package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"CalmBoard/internal/analysis"
	"CalmBoard/internal/render"
	"CalmBoard/internal/state"
)

func testDocument(t *testing.T) Document {
	t.Helper()
	s, err := render.New(120, 80, render.DefaultBackground)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	defer s.Close()
	from := state.Point{X: 10, Y: 10}
	_ = s.StrokeSegment(&from, state.Point{X: 100, Y: 70}, "#ff0000", 4)
	var png bytes.Buffer
	if err := s.EncodePNG(&png); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	rec := state.NewRecorder()
	rec.Begin("#ff0000", 4)
	rec.Extend(state.Point{X: 100, Y: 70})
	rec.End()

	return Document{
		Image:    png.Bytes(),
		Width:    120,
		Height:   80,
		Snapshot: rec.Snapshot(),
		Feedback: &analysis.Feedback{Message: "Lovely 🌸", Encouragement: "Keep going", Tip: "Breathe"},
		Created:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, testDocument(t)); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with %%PDF-: %q", buf.Bytes()[:8])
	}
}

func TestWritePDF_InvalidSize(t *testing.T) {
	doc := testDocument(t)
	doc.Width = 0
	if err := WritePDF(&bytes.Buffer{}, doc); err == nil {
		t.Error("WritePDF should reject a zero-width raster")
	}
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.pdf")
	if err := SavePDF(path, testDocument(t)); err != nil {
		t.Fatalf("SavePDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exported file is empty")
	}
}

func TestLatin1(t *testing.T) {
	if got := latin1("Beautiful expression! 🌸"); got != "Beautiful expression!" {
		t.Errorf("latin1 = %q", got)
	}
	if got := latin1("café"); got != "café" {
		t.Errorf("latin1 = %q", got)
	}
}
