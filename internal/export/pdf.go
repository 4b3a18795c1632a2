package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"CalmBoard/internal/analysis"
	"CalmBoard/internal/state"
)

// Document is everything that goes into an exported page.
type Document struct {
	Image    []byte // PNG of the raster
	Width    int    // raster size in pixels
	Height   int
	Snapshot state.Snapshot
	Feedback *analysis.Feedback
	Created  time.Time
}

const (
	margin     = 10.0
	lineHeight = 6.0
)

// WritePDF renders doc as a single A4 page: the drawing scaled to fit the
// page width, followed by a short summary and the last feedback.
func WritePDF(w io.Writer, doc Document) error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", doc.Width, doc.Height)
	}
	orientation := "P"
	if doc.Width > doc.Height {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetTitle("CalmBoard drawing", true)
	p.SetCreator("CalmBoard", true)
	p.AddPage()
	tr := p.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := p.GetPageSize()
	imgW := pageW - 2*margin
	imgH := imgW * float64(doc.Height) / float64(doc.Width)
	if maxH := pageH - 2*margin - 8*lineHeight; imgH > maxH {
		imgH = maxH
		imgW = imgH * float64(doc.Width) / float64(doc.Height)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("drawing", opts, bytes.NewReader(doc.Image))
	p.ImageOptions("drawing", margin, margin, imgW, imgH, false, opts, 0, "")
	p.SetDrawColor(200, 200, 200)
	p.Rect(margin, margin, imgW, imgH, "D")

	p.SetY(margin + imgH + lineHeight)
	p.SetFont("Helvetica", "B", 12)
	p.Cell(0, lineHeight, fmt.Sprintf("Drawn %s", doc.Created.Format("2006-01-02 15:04")))
	p.Ln(lineHeight)
	p.SetFont("Helvetica", "", 10)
	colors := make([]string, len(doc.Snapshot.Colors))
	for i, c := range doc.Snapshot.Colors {
		colors[i] = string(c)
	}
	p.Cell(0, lineHeight, fmt.Sprintf("Samples: %d   Colors: %s", len(doc.Snapshot.Samples), strings.Join(colors, ", ")))
	p.Ln(lineHeight)

	if fb := doc.Feedback; fb != nil {
		p.Ln(lineHeight / 2)
		for _, line := range []string{fb.Message, fb.Encouragement, fb.Tip} {
			p.MultiCell(0, lineHeight, tr(latin1(line)), "", "L", false)
		}
	}

	if err := p.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return p.Output(w)
}

// SavePDF writes doc to path.
func SavePDF(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// latin1 drops runes the core PDF fonts cannot show, such as emoji.
func latin1(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r > 0xff {
			return -1
		}
		return r
	}, s))
}
