package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	core "CalmBoard/internal/app"
	"CalmBoard/internal/input"
)

// BoardWidget shows the raster and forwards pointer and touch input to the
// application's input adapter.
type BoardWidget struct {
	widget.BaseWidget
	core     *core.App
	image    *canvas.Image
	touching bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget() *BoardWidget {
	b := &BoardWidget{}
	b.image = &canvas.Image{FillMode: canvas.ImageFillStretch}
	b.ExtendBaseWidget(b)
	return b
}

// Bind attaches the application context. Input before Bind is dropped.
func (b *BoardWidget) Bind(c *core.App) {
	b.core = c
	c.OnRender = b.Redraw
	b.Redraw()
}

// Bounds reports the widget's on-screen rectangle in window coordinates.
func (b *BoardWidget) Bounds() input.Rect {
	pos := fyne.NewPos(0, 0)
	if app := fyne.CurrentApp(); app != nil {
		pos = app.Driver().AbsolutePositionForObject(b)
	}
	size := b.Size()
	return input.Rect{
		Left:   float64(pos.X),
		Top:    float64(pos.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

// Redraw copies the raster into the displayed image.
func (b *BoardWidget) Redraw() {
	if b.core == nil {
		return
	}
	b.image.Image = b.core.Image()
	b.image.Refresh()
}

func (b *BoardWidget) scale() float32 {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(b); c != nil {
			return c.Scale()
		}
	}
	return 1
}

func position(ev *fyne.PointEvent) input.Position {
	return input.Position{X: float64(ev.AbsolutePosition.X), Y: float64(ev.AbsolutePosition.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.core == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.core.Input.PointerDown(position(&e.PointEvent))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if b.core == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.core.Input.PointerUp()
}

func (b *BoardWidget) MouseOut() {
	if b.core != nil {
		b.core.Input.PointerLeave()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.core == nil {
		return
	}
	if b.touching {
		b.core.Input.TouchMove([]input.Position{position(&e.PointEvent)})
		return
	}
	b.core.Input.PointerMove(position(&e.PointEvent))
}

func (b *BoardWidget) DragEnd() {
	if b.core != nil {
		b.core.Input.PointerUp()
	}
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	if b.core == nil {
		return
	}
	b.touching = true
	b.core.Input.TouchStart([]input.Position{position(&e.PointEvent)})
}

func (b *BoardWidget) TouchUp(*mobile.TouchEvent) {
	b.endTouch()
}

func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) {
	b.endTouch()
}

func (b *BoardWidget) endTouch() {
	b.touching = false
	if b.core != nil {
		b.core.Input.TouchEnd()
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.image}
}

// Layout keeps the raster at the widget's size in device pixels.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.image.Resize(size)
	if r.board.core == nil || size.Width <= 0 || size.Height <= 0 {
		return
	}
	scale := r.board.scale()
	w := int(math.Round(float64(size.Width * scale)))
	h := int(math.Round(float64(size.Height * scale)))
	r.board.core.Send(core.Resized{Width: w, Height: h})
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.Redraw()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
