package analysis

import (
	"time"

	"CalmBoard/internal/state"
)

// TimestampLayout renders UTC times the way browsers print ISO-8601 dates.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload is the body submitted for analysis.
type Payload struct {
	Strokes   []state.StrokeSample `json:"strokes"`
	Colors    []state.ColorToken   `json:"colors"`
	Timestamp string               `json:"timestamp"`
}

// NewPayload builds a submission from a snapshot taken at now.
func NewPayload(s state.Snapshot, now time.Time) Payload {
	strokes := s.Samples
	if strokes == nil {
		strokes = []state.StrokeSample{}
	}
	colors := s.Colors
	if colors == nil {
		colors = []state.ColorToken{}
	}
	return Payload{
		Strokes:   strokes,
		Colors:    colors,
		Timestamp: now.UTC().Format(TimestampLayout),
	}
}

// Feedback is the three-part reply shown to the user.
type Feedback struct {
	Message       string `json:"message"`
	Encouragement string `json:"encouragement"`
	Tip           string `json:"tip"`
}

// Response is the envelope returned by the analysis service.
type Response struct {
	Success  bool      `json:"success"`
	Feedback *Feedback `json:"feedback,omitempty"`
	Message  string    `json:"message,omitempty"`
	Error    string    `json:"error,omitempty"`
}
