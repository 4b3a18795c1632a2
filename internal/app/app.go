package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"CalmBoard/internal/analysis"
	"CalmBoard/internal/export"
	"CalmBoard/internal/feedback"
	"CalmBoard/internal/input"
	"CalmBoard/internal/render"
	"CalmBoard/internal/state"
)

// Analyzer is the remote side of an analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, snap state.Snapshot) (analysis.Feedback, error)
	Save(ctx context.Context, snap state.Snapshot) (string, error)
}

// Options configures New.
type Options struct {
	Width, Height int
	Background    state.ColorToken
	Client        Analyzer
	View          feedback.View
	Geometry      input.Geometry
	// Dispatch runs f on the UI goroutine. Results of background requests
	// are always delivered through it.
	Dispatch func(f func())
	Clock    state.Clock
}

// App is the application context: it is built once at startup and owns the
// recorder, raster, input state machine, analysis client and presenter.
// All methods must be called on the UI goroutine.
type App struct {
	Recorder   *state.Recorder
	Surface    *render.Surface
	Controller *input.Controller
	Input      *input.Adapter
	Presenter  *feedback.Presenter

	client   Analyzer
	view     feedback.View
	dispatch func(func())
	clock    state.Clock
	ctx      context.Context
	cancel   context.CancelFunc
	busy     bool

	// OnRender is called after the raster changed.
	OnRender func()
	// OnBusy is called when an analysis starts or finishes.
	OnBusy func(busy bool)
}

// New builds the application context.
func New(opts Options) (*App, error) {
	if opts.Client == nil || opts.View == nil || opts.Geometry == nil {
		return nil, errors.New("app: client, view and geometry are required")
	}
	if opts.Background == "" {
		opts.Background = render.DefaultBackground
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}
	if opts.Clock == nil {
		opts.Clock = state.SystemClock
	}
	surface, err := render.New(opts.Width, opts.Height, opts.Background)
	if err != nil {
		return nil, err
	}

	a := &App{
		Recorder:  state.NewRecorder(),
		Surface:   surface,
		Presenter: feedback.NewPresenter(opts.View),
		client:    opts.Client,
		view:      opts.View,
		dispatch:  opts.Dispatch,
		clock:     opts.Clock,
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.Controller = input.NewController(a.Recorder, a.Surface, opts.Geometry)
	a.Input = input.NewAdapter(a.handleInput)
	return a, nil
}

func (a *App) handleInput(ev input.Event) {
	before := a.Recorder.Len()
	a.Controller.Handle(ev)
	if ev.Kind == input.Move && a.Recorder.Len() != before {
		a.rendered()
	}
}

func (a *App) rendered() {
	if a.OnRender != nil {
		a.OnRender()
	}
}

func (a *App) setBusy(busy bool) {
	a.busy = busy
	if a.OnBusy != nil {
		a.OnBusy(busy)
	}
}

// Busy reports whether an analysis request is in flight.
func (a *App) Busy() bool { return a.busy }

// Image returns a copy of the raster for display.
func (a *App) Image() *image.RGBA { return a.Surface.Image() }

// ColorChanged selects the brush color for the next samples.
func (a *App) ColorChanged(c state.ColorToken) {
	a.Recorder.SetColor(c)
}

// BrushSizeChanged selects the brush width for the next samples.
func (a *App) BrushSizeChanged(size float64) {
	a.Recorder.SetBrushSize(size)
}

// ClearRequested wipes the raster and the stroke log and hides the feedback card.
func (a *App) ClearRequested() {
	a.Recorder.Clear()
	a.Surface.Clear()
	a.Presenter.Hide()
	a.rendered()
}

// Resized follows a change of the backing raster size.
func (a *App) Resized(width, height int) {
	if err := a.Surface.ResizePreserving(width, height); err != nil {
		log.Printf("[APP] Ignoring resize to %dx%d: %v", width, height, err)
		return
	}
	a.rendered()
}

// AnalyzeRequested submits the current drawing. The payload is snapshotted
// now; strokes drawn while the request is in flight belong to the next one.
// While a request is in flight further requests are ignored.
func (a *App) AnalyzeRequested() {
	if a.busy {
		log.Println("[APP] Analysis already in flight, ignoring request")
		return
	}
	snap := a.Recorder.Snapshot()
	if snap.Empty() {
		a.Presenter.Present(analysis.Feedback{}, analysis.ErrEmptyDrawing)
		return
	}
	a.setBusy(true)
	go func() {
		fb, err := a.client.Analyze(a.ctx, snap)
		a.dispatch(func() {
			a.setBusy(false)
			a.Presenter.Present(fb, err)
		})
	}()
}

// SaveRequested asks the service to acknowledge the drawing.
func (a *App) SaveRequested() {
	snap := a.Recorder.Snapshot()
	if snap.Empty() {
		a.view.Notify(feedback.Notice(analysis.ErrEmptyDrawing))
		return
	}
	go func() {
		msg, err := a.client.Save(a.ctx, snap)
		a.dispatch(func() {
			if err != nil {
				log.Printf("[APP] Save failed: %v", err)
				a.view.Notify(feedback.Notice(err))
				return
			}
			a.view.Notify(msg)
		})
	}()
}

// ExportRequested writes the drawing, a summary and the last feedback to a PDF at path.
func (a *App) ExportRequested(path string) error {
	var png bytes.Buffer
	if err := a.Surface.EncodePNG(&png); err != nil {
		return fmt.Errorf("encode raster: %w", err)
	}
	w, h := a.Surface.Size()
	doc := export.Document{
		Image:    png.Bytes(),
		Width:    w,
		Height:   h,
		Snapshot: a.Recorder.Snapshot(),
		Created:  a.clock.Now(),
	}
	if fb, ok := a.Presenter.Last(); ok {
		doc.Feedback = &fb
	}
	if err := export.SavePDF(path, doc); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	log.Printf("[APP] Exported %d samples to %s", len(doc.Snapshot.Samples), path)
	return nil
}

// Close cancels in-flight requests and releases the raster.
func (a *App) Close() error {
	a.cancel()
	return a.Surface.Close()
}

// Message is a typed request from a control widget.
type Message interface{ isMessage() }

type (
	ColorChanged     struct{ Color state.ColorToken }
	BrushSizeChanged struct{ Size float64 }
	ClearRequested   struct{}
	AnalyzeRequested struct{}
	SaveRequested    struct{}
	ExportRequested  struct{ Path string }
	Resized          struct{ Width, Height int }
)

func (ColorChanged) isMessage()     {}
func (BrushSizeChanged) isMessage() {}
func (ClearRequested) isMessage()   {}
func (AnalyzeRequested) isMessage() {}
func (SaveRequested) isMessage()    {}
func (ExportRequested) isMessage()  {}
func (Resized) isMessage()          {}

// Send routes a control message to its handler.
func (a *App) Send(m Message) {
	switch m := m.(type) {
	case ColorChanged:
		a.ColorChanged(m.Color)
	case BrushSizeChanged:
		a.BrushSizeChanged(m.Size)
	case ClearRequested:
		a.ClearRequested()
	case AnalyzeRequested:
		a.AnalyzeRequested()
	case SaveRequested:
		a.SaveRequested()
	case ExportRequested:
		if err := a.ExportRequested(m.Path); err != nil {
			log.Printf("[APP] %v", err)
			a.view.Notify("Could not export the drawing.")
		}
	case Resized:
		a.Resized(m.Width, m.Height)
	default:
		log.Printf("[APP] Unknown message %T", m)
	}
}
