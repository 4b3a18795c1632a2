package feedback

import (
	"errors"
	"testing"

	"CalmBoard/internal/analysis"
)

type recordingView struct {
	shown   []analysis.Feedback
	reveals int
	notices []string
	hides   int
}

func (v *recordingView) ShowFeedback(fb analysis.Feedback) { v.shown = append(v.shown, fb) }
func (v *recordingView) Reveal()                          { v.reveals++ }
func (v *recordingView) Notify(n string)                  { v.notices = append(v.notices, n) }
func (v *recordingView) Hide()                            { v.hides++ }

func TestPresenter_Success(t *testing.T) {
	v := &recordingView{}
	p := NewPresenter(v)
	fb := analysis.Feedback{Message: "m", Encouragement: "e", Tip: "t"}

	p.Present(fb, nil)

	if len(v.shown) != 1 || v.shown[0] != fb {
		t.Errorf("shown %v, want [%v]", v.shown, fb)
	}
	if v.reveals != 1 {
		t.Errorf("reveals %d, want 1", v.reveals)
	}
	if !p.Visible() {
		t.Error("presenter should be visible")
	}
	if last, ok := p.Last(); !ok || last != fb {
		t.Errorf("Last = %v, %v", last, ok)
	}
}

func TestPresenter_FailureKeepsVisibility(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty", analysis.ErrEmptyDrawing, NoticeEmptyDrawing},
		{"rejected", &analysis.Error{Kind: analysis.KindRejected}, NoticeRejected},
		{"transport", &analysis.Error{Kind: analysis.KindTransport, Err: errors.New("refused")}, NoticeTransport},
		{"unknown", errors.New("boom"), NoticeTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &recordingView{}
			p := NewPresenter(v)
			p.Present(analysis.Feedback{Message: "first"}, nil)

			p.Present(analysis.Feedback{}, tt.err)

			if len(v.notices) != 1 || v.notices[0] != tt.want {
				t.Errorf("notices %v, want [%q]", v.notices, tt.want)
			}
			if !p.Visible() || v.hides != 0 || v.reveals != 1 {
				t.Errorf("failure changed visibility: visible=%v hides=%d reveals=%d", p.Visible(), v.hides, v.reveals)
			}
			if last, _ := p.Last(); last.Message != "first" {
				t.Errorf("Last %v, want the earlier feedback", last)
			}
		})
	}
}

func TestPresenter_Hide(t *testing.T) {
	v := &recordingView{}
	p := NewPresenter(v)
	p.Present(analysis.Feedback{Message: "m"}, nil)
	p.Hide()
	if p.Visible() || v.hides != 1 {
		t.Errorf("visible=%v hides=%d", p.Visible(), v.hides)
	}
}
