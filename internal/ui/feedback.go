package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"CalmBoard/internal/analysis"
)

// feedbackCard is the panel under the board that shows analysis feedback.
// It implements feedback.View.
type feedbackCard struct {
	window        fyne.Window
	message       *widget.Label
	encouragement *widget.Label
	tip           *widget.Label
	glow          *canvas.Rectangle
	card          *fyne.Container
	scroll        *container.Scroll
	fade          *fyne.Animation
}

func newFeedbackCard(w fyne.Window) *feedbackCard {
	f := &feedbackCard{
		window:        w,
		message:       widget.NewLabel(""),
		encouragement: widget.NewLabel(""),
		tip:           widget.NewLabel(""),
		glow:          canvas.NewRectangle(color.Transparent),
	}
	f.message.Wrapping = fyne.TextWrapWord
	f.message.TextStyle = fyne.TextStyle{Bold: true}
	f.encouragement.Wrapping = fyne.TextWrapWord
	f.tip.Wrapping = fyne.TextWrapWord
	f.tip.TextStyle = fyne.TextStyle{Italic: true}

	body := widget.NewCard("Your feedback", "", container.NewVBox(
		f.message,
		f.encouragement,
		widget.NewSeparator(),
		f.tip,
	))
	f.card = container.NewStack(f.glow, body)
	f.card.Hide()
	f.scroll = container.NewVScroll(f.card)
	f.scroll.SetMinSize(fyne.NewSize(0, 160))
	f.scroll.Hide()
	f.fade = canvas.NewColorRGBAAnimation(
		color.NRGBA{R: 0xff, G: 0xe0, B: 0xf0, A: 0xff},
		color.NRGBA{R: 0xff, G: 0xe0, B: 0xf0, A: 0x00},
		500*time.Millisecond,
		func(c color.Color) {
			f.glow.FillColor = c
			f.glow.Refresh()
		})
	return f
}

func (f *feedbackCard) ShowFeedback(fb analysis.Feedback) {
	f.message.SetText(fb.Message)
	f.encouragement.SetText(fb.Encouragement)
	f.tip.SetText(fb.Tip)
}

func (f *feedbackCard) Reveal() {
	f.scroll.Show()
	f.card.Show()
	f.scroll.ScrollToTop()
	f.fade.Stop()
	f.fade.Start()
}

func (f *feedbackCard) Notify(notice string) {
	dialog.ShowInformation("CalmBoard", notice, f.window)
}

func (f *feedbackCard) Hide() {
	f.fade.Stop()
	f.card.Hide()
	f.scroll.Hide()
}
