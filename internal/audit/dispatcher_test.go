package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (s *recordingSink) Handle(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcher_FansOutAndDrains(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{err: errors.New("broker down")}
	d := NewDispatcher(10, a, b)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{UserID: 1, Action: "customer_created"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if a.count() != 5 || b.count() != 5 {
		t.Fatalf("sinks got %d and %d events, want 5 each", a.count(), b.count())
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(1, sink)

	// one event held by the worker, one in the queue, the rest dropped
	for i := 0; i < 10; i++ {
		d.Dispatch(Event{UserID: 1, Action: "pet_created"})
	}
	close(sink.block)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.Close(ctx)

	if n := sink.count(); n < 1 || n > 2 {
		t.Fatalf("sink got %d events, want 1 or 2", n)
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
	if err := d.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestDispatcher_InlineSinksSurviveFullQueue(t *testing.T) {
	queued := &recordingSink{block: make(chan struct{})}
	inline := &recordingSink{}
	d := NewDispatcher(1, queued).WithInline(inline)

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{UserID: 1, Action: "visit_created"})
	}

	// inline sinks have run by the time Dispatch returns
	if n := inline.count(); n != 10 {
		t.Fatalf("inline sink got %d events, want 10", n)
	}

	close(queued.block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.Close(ctx)
}
