package input

import "sync"

// Queue collects events between frames. Push is called from window callbacks and
// Drain from the frame loop.
type Queue struct {
	mu     *sync.Mutex
	events []Event
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{mu: &sync.Mutex{}}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain returns all pending events in arrival order and empties the queue.
//
// Returns:
//   - []Event: the pending events, or nil if there are none
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
