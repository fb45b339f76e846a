package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Event struct {
	UserID   uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink receives every dispatched event. Errors are logged and never reach
// the request that produced the event.
type Sink interface {
	Handle(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks  []Sink
	inline []Sink
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(size int, sinks ...Sink) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

// WithInline adds sinks that run in the caller's goroutine on every
// Dispatch, before the event is queued. They are never dropped. Call it
// before the first Dispatch.
func (d *Dispatcher) WithInline(sinks ...Sink) *Dispatcher {
	d.inline = append(d.inline, sinks...)
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			handle(s, ev, 5*time.Second)
		}
	}
}

func handle(s Sink, ev Event, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Handle(ctx, ev); err != nil {
		log.Error().Err(err).
			Str("action", ev.Action).
			Uint("user_id", ev.UserID).
			Msg("audit sink failed")
	}
}

// Dispatch runs the inline sinks, then queues the event for the rest.
// Queueing never blocks: with the queue full the event is dropped.
// A nil Dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	for _, s := range d.inline {
		handle(s, ev, 2*time.Second)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
