package hsm

import "sync"

// Event is a ready-made message type: the engine itself is generic over
// M (spec Design Notes §9: "use a generic message type parameter, not a
// catch-all value type") and never requires *Event specifically, but
// most models are happy with name+payload messages, so one is provided.
type Event struct {
	name string
	id   string
	data any
}

func (e *Event) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

func (e *Event) Id() string {
	if e == nil {
		return ""
	}
	return e.id
}

func (e *Event) Data() any {
	if e == nil {
		return nil
	}
	return e.data
}

var eventPool = sync.Pool{New: func() any { return &Event{} }}

// NewEvent mints an Event from the pool, stamped with a fresh UUIDv7 id
// for trace correlation.
func NewEvent(name string, maybeData ...any) *Event {
	var data any
	if len(maybeData) > 0 {
		data = maybeData[0]
	}
	e := eventPool.Get().(*Event)
	e.name = name
	e.id = newID()
	e.data = data
	return e
}

// Release returns e to the pool. Callers that mint many short-lived
// events in a hot loop should call this once an Event is done with.
func Release(e *Event) {
	if e == nil {
		return
	}
	e.name, e.id, e.data = "", "", nil
	eventPool.Put(e)
}
