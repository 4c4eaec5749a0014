package kafka

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	StreamReservations = "reservations"
	StreamBilling      = "billing"
)

// Event is the envelope of every bookkeeping event.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publish sends one event to stream. Delivery failures are logged and swallowed: the
// mutation that raised the event has already been stored.
func Publish(ctx context.Context, client Client, stream, eventType, key string, data any) {
	message := Message{
		Key: key,
		Value: Event{
			Type:       eventType,
			OccurredAt: time.Now().UTC(),
			Data:       data,
		},
	}

	if err := client.SendMessages(ctx, client.Topic(stream), message); err != nil {
		log.Error().Err(err).Str("stream", stream).Str("event", eventType).Str("key", key).Msg("failed to publish event")
	}
}
