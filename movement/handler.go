package movement

import "github.com/oomph-ac/kinematic/event"

// Handler receives the diagnostic events emitted while a body is ticked. HandleEvent is called from the
// goroutine running the tick and must not block.
type Handler interface {
	HandleEvent(ev event.Event)
}

// NopHandler discards every event.
type NopHandler struct{}

func (NopHandler) HandleEvent(event.Event) {}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev event.Event)

func (f HandlerFunc) HandleEvent(ev event.Event) {
	f(ev)
}
