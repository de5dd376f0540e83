package kstream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"rental-search/internal/model"
	"rental-search/internal/observability"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Invalidator drops cached category snapshots.
type Invalidator interface {
	Invalidate(ctx context.Context, categories ...model.Category) error
}

// NewReader creates a consumer-group reader for topic.
func NewReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		CommitInterval: time.Second,
	})
}

// ConsumeListingChanges reads ListingsChanged notices and invalidates the
// snapshot of the affected category. A notice without a recognisable
// category invalidates every category. It returns nil when ctx is done.
func ConsumeListingChanges(ctx context.Context, r messageReader, inv Invalidator, logger *observability.Logger) error {
	if logger == nil {
		logger = observability.Nop()
	}
	log := logger.WithComponent("kstream")
	defer r.Close()

	log.Info().Msg("consuming catalog change notices")
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		categories, err := changedCategories(msg.Value)
		if err != nil {
			log.Warn().Err(err).Int("bytes", len(msg.Value)).Msg("skipping undecodable change notice")
			continue
		}
		if err := inv.Invalidate(ctx, categories...); err != nil {
			log.Warn().Err(err).Msg("cache invalidation failed")
			continue
		}
		log.Debug().Int("categories", len(categories)).Msg("cache invalidated")
	}
}

// changedCategories decodes a notice. An empty result means all categories.
func changedCategories(value []byte) ([]model.Category, error) {
	var evt model.ListingsChanged
	if err := json.Unmarshal(value, &evt); err != nil {
		return nil, err
	}
	if c, ok := model.ParseCategory(string(evt.Category)); ok {
		return []model.Category{c}, nil
	}
	return nil, nil
}
