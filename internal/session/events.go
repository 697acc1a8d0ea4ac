package session

import (
	"sync"

	"github.com/MKhiriev/go-replica-sync/models"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventStateChanged is sent after every transition; State holds the new state.
	EventStateChanged EventKind = iota + 1
	// EventCredentialRequired is sent when a challenge is raised; Prompt is set.
	EventCredentialRequired
	// EventCredentialResolved is sent when the pending challenge is resolved.
	// Err is ErrUserCancelled after a cancellation.
	EventCredentialResolved
	// EventListInstalled is sent when a new item list is visible in the table.
	EventListInstalled
	// EventItemChanged is sent after ToggleIgnore; Row is the toggled row.
	EventItemChanged
	// EventSyncProgress is sent after each item processed by the engine.
	EventSyncProgress
	// EventSyncDone is sent when the sync step ends; Report and Err are set.
	EventSyncDone
)

// Event is a notification delivered to the session Observer.
type Event struct {
	Kind     EventKind
	State    State
	Prompt   string
	Row      int
	Err      error
	Progress models.SyncProgress
	Report   *models.SyncReport
}

// Observer receives session events. Notify is called on a single goroutine in
// the order the events were produced.
type Observer interface {
	Notify(event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event Event)

func (f ObserverFunc) Notify(event Event) {
	f(event)
}

type nopObserver struct{}

func (nopObserver) Notify(Event) {}

// eventQueue decouples producers from the observer: push never blocks and
// events are delivered in push order by one goroutine.
type eventQueue struct {
	observer Observer

	mu      sync.Mutex
	cond    *sync.Cond
	pending []Event
	closed  bool
	done    chan struct{}
}

func newEventQueue(observer Observer) *eventQueue {
	if observer == nil {
		observer = nopObserver{}
	}
	q := &eventQueue{observer: observer, done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

func (q *eventQueue) push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.pending = append(q.pending, ev)
	q.cond.Signal()
}

func (q *eventQueue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, ev := range batch {
			q.observer.Notify(ev)
		}
	}
}

// close delivers the events already queued and stops the goroutine.
func (q *eventQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.cond.Signal()
	q.mu.Unlock()

	<-q.done
}
