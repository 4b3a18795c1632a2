package analysis

import "fmt"

// Kind classifies analysis failures.
type Kind int

const (
	// KindEmptyDrawing means nothing was drawn; no request was sent.
	KindEmptyDrawing Kind = iota + 1
	// KindTransport covers unreachable services, non-2xx statuses and unreadable bodies.
	KindTransport
	// KindRejected means the service answered with success:false.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindEmptyDrawing:
		return "empty drawing"
	case KindTransport:
		return "transport failure"
	case KindRejected:
		return "service rejected"
	}
	return "unknown"
}

// Error is returned by every failing Client call.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrEmptyDrawing = &Error{Kind: KindEmptyDrawing}
	ErrTransport    = &Error{Kind: KindTransport}
	ErrRejected     = &Error{Kind: KindRejected}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func transportError(reason string, err error) *Error {
	return &Error{Kind: KindTransport, Reason: reason, Err: err}
}
