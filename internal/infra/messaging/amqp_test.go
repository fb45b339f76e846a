package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
)

func TestEncodeEvent(t *testing.T) {
	id := uint(12)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	body, err := encodeEvent(audit.Event{
		UserID:   3,
		Action:   "visit_completed",
		Entity:   "visit",
		EntityID: &id,
		Metadata: map[string]string{"pet": "Rex"},
	}, at)
	if err != nil {
		t.Fatalf("encodeEvent: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["action"] != "visit_completed" || got["entity_id"] != float64(12) {
		t.Fatalf("message = %s", body)
	}
	if got["occurred_at"] != "2026-03-01T10:00:00Z" {
		t.Fatalf("occurred_at = %v", got["occurred_at"])
	}
}

type fakeChannel struct {
	closed    bool
	failNext  error
	published []amqp.Publishing
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	if err := c.failNext; err != nil {
		c.failNext = nil
		c.closed = true
		return err
	}
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }
func (c *fakeChannel) Close() error   { c.closed = true; return nil }

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error { c.closed = true; return nil }

// fakeBroker hands out a fresh channel per dial, or dialErr when set.
type fakeBroker struct {
	dials    int
	dialErr  error
	channels []*fakeChannel
}

func (b *fakeBroker) dial() (*link, error) {
	b.dials++
	if b.dialErr != nil {
		return nil, b.dialErr
	}
	ch := &fakeChannel{}
	b.channels = append(b.channels, ch)
	return &link{conn: &fakeConn{}, ch: ch}, nil
}

func connectedPublisher(t *testing.T, b *fakeBroker) *Publisher {
	t.Helper()
	p := newPublisher(AuditQueue, b.dial)
	l, err := b.dial()
	if err != nil {
		t.Fatal(err)
	}
	p.link = l
	return p
}

func TestPublisher_RedialsAfterBrokerClose(t *testing.T) {
	b := &fakeBroker{}
	p := connectedPublisher(t, b)
	ctx := context.Background()

	if err := p.Handle(ctx, audit.Event{Action: "customer_created"}); err != nil {
		t.Fatalf("first publish: %v", err)
	}

	// broker restart
	b.channels[0].closed = true

	if err := p.Handle(ctx, audit.Event{Action: "pet_created"}); err != nil {
		t.Fatalf("publish after restart: %v", err)
	}
	if b.dials != 2 {
		t.Fatalf("dials = %d, want 2", b.dials)
	}
	if got := b.channels[1].published; len(got) != 1 || got[0].Type != "pet_created" {
		t.Fatalf("new channel published %+v", got)
	}
}

func TestPublisher_RetriesOnceAfterPublishError(t *testing.T) {
	b := &fakeBroker{}
	p := connectedPublisher(t, b)
	b.channels[0].failNext = amqp.ErrClosed

	if err := p.Handle(context.Background(), audit.Event{Action: "visit_completed"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if b.dials != 2 || len(b.channels[1].published) != 1 {
		t.Fatalf("dials = %d, published on retry = %d", b.dials, len(b.channels[1].published))
	}
}

func TestPublisher_BacksOffAfterFailedDial(t *testing.T) {
	b := &fakeBroker{}
	p := connectedPublisher(t, b)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	ctx := context.Background()

	b.channels[0].closed = true
	b.dialErr = errors.New("connection refused")

	if err := p.Handle(ctx, audit.Event{Action: "a"}); err == nil {
		t.Fatal("expected error while broker is down")
	}
	if err := p.Handle(ctx, audit.Event{Action: "b"}); err == nil {
		t.Fatal("expected error inside backoff window")
	}
	if b.dials != 2 {
		t.Fatalf("dials = %d, want no redial inside backoff", b.dials)
	}

	b.dialErr = nil
	now = now.Add(ReconnectBackoff)

	if err := p.Handle(ctx, audit.Event{Action: "c"}); err != nil {
		t.Fatalf("publish after backoff: %v", err)
	}
	if b.dials != 3 {
		t.Fatalf("dials = %d, want 3", b.dials)
	}
}

func TestPublisher_ClosedRejects(t *testing.T) {
	b := &fakeBroker{}
	p := connectedPublisher(t, b)

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !b.channels[0].closed {
		t.Fatal("channel left open")
	}
	if err := p.Handle(context.Background(), audit.Event{Action: "a"}); err == nil {
		t.Fatal("expected error after Close")
	}
	if b.dials != 1 {
		t.Fatalf("dials = %d after Close", b.dials)
	}
}
