package input

// Kind is the source-agnostic pointer vocabulary the Controller understands.
type Kind int

const (
	Down Kind = iota + 1
	Move
	Up
	Leave
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Leave:
		return "leave"
	}
	return "unknown"
}

// Event is a normalized input event. Position is only meaningful for Down and Move.
type Event struct {
	Kind     Kind
	Position Position
}

// Adapter maps mouse/pen and touch event vocabularies onto Events and hands
// them to a sink, normally Controller.Handle.
type Adapter struct {
	sink func(Event)
}

// NewAdapter returns an adapter delivering to sink.
func NewAdapter(sink func(Event)) *Adapter {
	return &Adapter{sink: sink}
}

func (a *Adapter) PointerDown(p Position) { a.sink(Event{Kind: Down, Position: p}) }
func (a *Adapter) PointerMove(p Position) { a.sink(Event{Kind: Move, Position: p}) }
func (a *Adapter) PointerUp()             { a.sink(Event{Kind: Up}) }
func (a *Adapter) PointerLeave()          { a.sink(Event{Kind: Leave}) }

// TouchStart honors only the primary (first) touch point.
func (a *Adapter) TouchStart(touches []Position) {
	if len(touches) == 0 {
		return
	}
	a.PointerDown(touches[0])
}

// TouchMove honors only the primary (first) touch point.
func (a *Adapter) TouchMove(touches []Position) {
	if len(touches) == 0 {
		return
	}
	a.PointerMove(touches[0])
}

// TouchEnd ends the gesture regardless of how many touches remain.
func (a *Adapter) TouchEnd() {
	a.PointerUp()
}
