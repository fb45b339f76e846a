package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
)

const AuditQueue = "clinic.audit"

type auditMessage struct {
	UserID     uint      `json:"user_id"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReconnectBackoff is the pause after a failed dial before the next attempt.
const ReconnectBackoff = 5 * time.Second

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// link is one broker connection with its publishing channel.
type link struct {
	conn io.Closer
	ch   publishChannel
}

func (l *link) close() {
	_ = l.ch.Close()
	_ = l.conn.Close()
}

// Publisher forwards audit events to a durable RabbitMQ queue. A dropped
// connection is re-dialled on the next event; a failed publish is retried
// once on a fresh connection.
type Publisher struct {
	queue string
	dial  func() (*link, error)
	now   func() time.Time

	mu       sync.Mutex
	link     *link
	nextDial time.Time
	closed   bool
}

var _ audit.Sink = (*Publisher)(nil)

func NewPublisher(url, queue string) (*Publisher, error) {
	p := newPublisher(queue, func() (*link, error) { return dialLink(url, queue) })

	l, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.link = l
	return p, nil
}

func newPublisher(queue string, dial func() (*link, error)) *Publisher {
	return &Publisher{queue: queue, dial: dial, now: time.Now}
}

func dialLink(url, queue string) (*link, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", queue, err)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if err, ok := <-closed; ok && err != nil {
			log.Warn().Err(err).Str("queue", queue).Msg("audit broker connection lost")
		}
	}()

	return &link{conn: conn, ch: ch}, nil
}

func (p *Publisher) Handle(ctx context.Context, ev audit.Event) error {
	body, err := encodeEvent(ev, time.Now().UTC())
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         ev.Action,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("amqp publisher closed")
	}

	for attempt := 0; ; attempt++ {
		l, err := p.connectLocked()
		if err != nil {
			return err
		}

		err = l.ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
		if err == nil {
			return nil
		}

		p.dropLocked()
		if attempt > 0 {
			return fmt.Errorf("amqp publish: %w", err)
		}
	}
}

// connectLocked returns the live link, dialling a new one when the last
// one closed. After a failed dial it refuses until ReconnectBackoff passes.
func (p *Publisher) connectLocked() (*link, error) {
	if p.link != nil && !p.link.ch.IsClosed() {
		return p.link, nil
	}
	p.dropLocked()

	if now := p.now(); now.Before(p.nextDial) {
		return nil, errors.New("amqp broker unavailable, waiting to reconnect")
	}

	l, err := p.dial()
	if err != nil {
		p.nextDial = p.now().Add(ReconnectBackoff)
		return nil, err
	}

	log.Info().Str("queue", p.queue).Msg("audit broker reconnected")
	p.link = l
	return l, nil
}

func (p *Publisher) dropLocked() {
	if p.link != nil {
		p.link.close()
		p.link = nil
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.dropLocked()
	return nil
}

func encodeEvent(ev audit.Event, at time.Time) ([]byte, error) {
	return json.Marshal(auditMessage{
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   ev.Metadata,
		OccurredAt: at,
	})
}
