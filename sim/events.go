package sim

import "github.com/RustWorks/gravity-sim-v2/body"

// EventKind identifies lifecycle event types.
type EventKind string

const (
	EventSpawned EventKind = "spawned"
	EventMerged  EventKind = "merged"
	EventRemoved EventKind = "removed"
)

// Event reports a body lifecycle change. For merges, Handle is the survivor
// and Absorbed the body that was consumed; the UI uses these to drop stale
// selections.
type Event struct {
	Kind     EventKind
	Handle   body.Handle
	Absorbed body.Handle
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
