package feedback

import (
	"errors"
	"log"

	"CalmBoard/internal/analysis"
)

// Notices shown when an analysis cannot be displayed.
const (
	NoticeEmptyDrawing = "Please draw something first! 🎨"
	NoticeRejected     = "Error analyzing drawing. Please try again."
	NoticeTransport    = "Error connecting to server. Please try again."
)

// View is implemented by the presentation layer that owns the feedback card.
type View interface {
	// ShowFeedback fills the card's three text fields.
	ShowFeedback(fb analysis.Feedback)
	// Reveal makes the card visible, scrolls it into view and restarts its entrance animation.
	Reveal()
	// Notify shows a transient notice without touching the card.
	Notify(notice string)
	// Hide hides the card.
	Hide()
}

// Presenter holds the last successful feedback and drives a View.
type Presenter struct {
	view    View
	last    *analysis.Feedback
	visible bool
}

// NewPresenter returns a presenter with a hidden card.
func NewPresenter(v View) *Presenter {
	return &Presenter{view: v}
}

// Present shows fb, or a notice for err. A failure never changes the card's visibility.
func (p *Presenter) Present(fb analysis.Feedback, err error) {
	if err != nil {
		notice := Notice(err)
		log.Printf("[FEEDBACK] %v", err)
		p.view.Notify(notice)
		return
	}
	p.last = &fb
	p.visible = true
	p.view.ShowFeedback(fb)
	p.view.Reveal()
}

// Hide hides the card. The last feedback is kept.
func (p *Presenter) Hide() {
	p.visible = false
	p.view.Hide()
}

// Visible reports whether the card is showing.
func (p *Presenter) Visible() bool { return p.visible }

// Last returns the most recent feedback, if any.
func (p *Presenter) Last() (analysis.Feedback, bool) {
	if p.last == nil {
		return analysis.Feedback{}, false
	}
	return *p.last, true
}

// Notice maps an analysis error to the message shown to the user.
func Notice(err error) string {
	switch {
	case errors.Is(err, analysis.ErrEmptyDrawing):
		return NoticeEmptyDrawing
	case errors.Is(err, analysis.ErrRejected):
		return NoticeRejected
	default:
		return NoticeTransport
	}
}
