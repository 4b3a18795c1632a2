package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	core "CalmBoard/internal/app"
	"CalmBoard/internal/state"
)

// Palette offered by the toolbar.
var Palette = []state.ColorToken{
	"#000000", "#e53935", "#fb8c00", "#fdd835", "#43a047",
	"#1e88e5", "#8e24aa", "#ec407a", "#6d4c41", "#ffffff",
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Token    state.ColorToken
	OnTapped func(state.ColorToken)
}

func newColorSwatch(token state.ColorToken, tapped func(state.ColorToken)) *colorSwatch {
	s := &colorSwatch{Token: token, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(gg.Hex(string(s.Token)).Color())
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Token)
	}
}

// toolbar holds the controls that feed messages into the application context.
type toolbar struct {
	analyze *widget.Button
	status  *widget.Label
	content fyne.CanvasObject
}

func newToolbar(c *core.App, w fyne.Window, endpoint string) *toolbar {
	t := &toolbar{status: widget.NewLabel("Ready - analysis at " + endpoint)}

	swatches := make([]fyne.CanvasObject, 0, len(Palette))
	for _, token := range Palette {
		swatches = append(swatches, newColorSwatch(token, func(tok state.ColorToken) {
			c.Send(core.ColorChanged{Color: tok})
		}))
	}

	sizeLabel := widget.NewLabel(fmt.Sprintf("%.0f", state.DefaultBrushSize))
	sizeSlider := widget.NewSlider(1, 50)
	sizeSlider.SetValue(state.DefaultBrushSize)
	sizeSlider.OnChanged = func(v float64) {
		sizeLabel.SetText(fmt.Sprintf("%.0f", v))
		c.Send(core.BrushSizeChanged{Size: v})
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), sizeSlider)

	clearBtn := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		c.Send(core.ClearRequested{})
	})
	t.analyze = widget.NewButtonWithIcon("Analyze", theme.SearchIcon(), func() {
		c.Send(core.AnalyzeRequested{})
	})
	t.analyze.Importance = widget.HighImportance
	save := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		c.Send(core.SaveRequested{})
	})
	exportPDF := widget.NewButtonWithIcon("Export PDF", theme.DownloadIcon(), func() {
		dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			c.Send(core.ExportRequested{Path: path})
		}, w)
	})

	c.OnBusy = t.setBusy

	t.content = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Color:"),
			container.NewHBox(swatches...),
			widget.NewSeparator(),
			widget.NewLabel("Size:"),
			sliderContainer,
			sizeLabel,
			layout.NewSpacer(),
		),
		container.NewHBox(clearBtn, t.analyze, save, exportPDF, layout.NewSpacer(), t.status),
	)
	return t
}

func (t *toolbar) setBusy(busy bool) {
	if busy {
		t.analyze.Disable()
		t.status.SetText("Analyzing your drawing...")
		return
	}
	t.analyze.Enable()
	t.status.SetText("Ready")
}
