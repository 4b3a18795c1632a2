package state

import (
	"time"

	"github.com/google/uuid"
)

// Clock is the host-provided current-time source.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// newSessionID names a drawing session; a new one is minted on every clear.
func newSessionID() string {
	return uuid.NewString()
}
