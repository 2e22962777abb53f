package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/domain/activity"
)

// EventTypeHeader carries the activity type so consumers can route without decoding
const EventTypeHeader = "activity-type"

// ActivityEventProducer publishes activity entries, keyed by entry id
type ActivityEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewActivityEventProducer ensures the activity topic exists and opens an async writer
func NewActivityEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*ActivityEventProducer, error) {
	if cfg.ActivityTopic == "" {
		return nil, fmt.Errorf("kafka activity topic is not configured")
	}

	if err := ensureTopic(ctx, cfg.BrokerList(), cfg.ActivityTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure activity topic %s exists: %w", cfg.ActivityTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.BrokerList()...),
		Topic:        cfg.ActivityTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write activity events", "topic", cfg.ActivityTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote activity events", "topic", cfg.ActivityTopic, "count", len(messages))
			}
		},
	}

	return &ActivityEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.ActivityTopic,
	}, nil
}

// Publish marshals value as JSON and writes it under key
func (p *ActivityEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}
	return p.write(ctx, kafka.Message{Key: []byte(key), Value: jsonValue})
}

// PublishActivity writes entry to the activity topic
func (p *ActivityEventProducer) PublishActivity(ctx context.Context, entry activity.Entry) error {
	jsonValue, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}
	return p.write(ctx, kafka.Message{
		Key:   []byte(entry.ID),
		Value: jsonValue,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(entry.Type)},
		},
	})
}

func (p *ActivityEventProducer) write(ctx context.Context, msg kafka.Message) error {
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish activity event",
			"topic", p.topic,
			"key", string(msg.Key),
			"error", err,
		)
		return fmt.Errorf("failed to publish activity event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published activity event",
		"topic", p.topic,
		"key", string(msg.Key),
	)
	return nil
}

func (p *ActivityEventProducer) Close() error {
	p.logger.Info("Closing activity event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close activity kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
