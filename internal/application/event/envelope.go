package event

import (
	"context"
	"time"

	appCtx "github.com/baechuer/devevent-service/internal/pkg/context"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

const (
	EventVersion  = 1
	EventProducer = "devevent-service"

	RoutingEventCreated   = "event.created"
	RoutingEventUpdated   = "event.updated"
	RoutingBookingCreated = "booking.created"
)

// DomainEventEnvelope is the stable contract for every message this service emits.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

func NewEnvelope[T any](ctx context.Context, now time.Time, payload T) DomainEventEnvelope[T] {
	return DomainEventEnvelope[T]{
		Version:    EventVersion,
		Producer:   EventProducer,
		MessageID:  uuid.NewString(),
		TraceID:    appCtx.GetRequestID(ctx),
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
}

// EventPayload is the business payload for event.created and event.updated.
type EventPayload struct {
	EventID string   `json:"event_id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Mode    string   `json:"mode"`
	Tags    []string `json:"tags"`
}

// Publish sends msg under its own message id and only logs on failure; the
// write it reports on is already committed.
func Publish[T any](ctx context.Context, pub EventPublisher, routingKey string, msg DomainEventEnvelope[T]) {
	if err := pub.PublishEvent(ctx, routingKey, msg.MessageID, msg); err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Str("message_id", msg.MessageID).Msg("publish domain event failed")
	}
}
