// Package kstream connects the search service to Kafka: search events go
// out on one topic, catalog change notices come in on another.
package kstream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"rental-search/internal/model"
	"rental-search/internal/observability"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter constructs an async producer for topic. Delivery failures are
// reported to logger from the writer's completion callback.
func NewWriter(broker, topic string, logger *observability.Logger) *kafka.Writer {
	if logger == nil {
		logger = observability.Nop()
	}
	log := logger.WithComponent("kstream")
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Str("topic", topic).Int("messages", len(messages)).Msg("kafka delivery failed")
			}
		},
	}
}

// SearchPublisher publishes one SearchPerformed event per search call.
// Publishing is fire-and-forget: a broken broker never fails a search.
type SearchPublisher struct {
	w      messageWriter
	logger *observability.Logger
}

// NewSearchPublisher wraps w.
func NewSearchPublisher(w messageWriter, logger *observability.Logger) *SearchPublisher {
	if logger == nil {
		logger = observability.Nop()
	}
	return &SearchPublisher{w: w, logger: logger.WithComponent("kstream")}
}

// PublishSearch sends evt, keyed by request id.
func (p *SearchPublisher) PublishSearch(ctx context.Context, evt model.SearchPerformed) {
	msg, err := searchMessage(evt)
	if err != nil {
		p.logger.WithContext(ctx).Error().Err(err).Msg("encode search event")
		return
	}
	// the request context may be cancelled as soon as the response is written
	if err := p.w.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		p.logger.WithContext(ctx).Warn().Err(err).Str("operation", evt.Operation).Msg("publish search event")
	}
}

// Close flushes pending messages.
func (p *SearchPublisher) Close() error {
	return p.w.Close()
}

func searchMessage(evt model.SearchPerformed) (kafka.Message, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}
	key := evt.RequestID
	if key == "" {
		key = uuid.NewString()
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}, nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

// PublishSearch does nothing.
func (NopPublisher) PublishSearch(context.Context, model.SearchPerformed) {}

// Close does nothing.
func (NopPublisher) Close() error { return nil }
