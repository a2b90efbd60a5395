package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing events to Kafka.
// Publishing is best effort: a broker failure is logged and absorbed so that a
// completed state change is never rolled back over a missed notification.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher over the given producer.
func NewKafkaEventPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, logger: logger}
}

// Publish serialises and sends domain events, keyed by aggregate ID so events
// for the same aggregate stay ordered.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		if err := p.producer.Send(ctx, []byte(evt.AggregateID()), payload); err != nil {
			p.logger.ErrorContext(ctx, "failed to publish domain event",
				"event_type", evt.EventType(),
				"aggregate_id", evt.AggregateID(),
				"error", err,
			)
			continue
		}

		p.logger.DebugContext(ctx, "published domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"payload_size", len(payload),
		)
	}
	return nil
}
