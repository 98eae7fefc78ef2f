// Package eventbus carries workflow step events between producers and workers.
package eventbus

import (
	"context"

	"github.com/dukex/crmflow/pkg/events"
)

// Event is any step event; its type selects the decoder on delivery.
type Event = events.Typed

// EventPublisher publishes under a partition key. Events sharing a key, such
// as all steps of one execution, keep their relative order on Kafka.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

// EventSubscriber routes delivered events by type. Handlers are registered
// with Handle before Subscribe starts consuming.
type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

// EventHandler processes one decoded event. A non-nil error nacks the
// message so the broker redelivers it.
type EventHandler func(ctx context.Context, event any) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}

var _ EventBus = (*WatermillEventBus)(nil)
