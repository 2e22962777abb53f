package consumers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/supplier-ledger/internal/config"
)

type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Consumer defines the message queue consumer interface
type Consumer interface {
	Subscribe(ctx context.Context, topic string, groupID string, handler MessageHandler) error
	Close() error
}

// KafkaReader wraps kafka.Reader methods for testing
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer implements Consumer using Kafka
type KafkaConsumer struct {
	reader       KafkaReader
	logger       *slog.Logger
	retryBackoff time.Duration
	wg           sync.WaitGroup
}

// NewKafkaConsumer reads cfg.ActivityTopic as part of cfg.ConsumerGroup.
// A StartOffset of -1 starts new groups at the newest message, anything else at the oldest.
func NewKafkaConsumer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) *KafkaConsumer {
	startOffset := kafka.FirstOffset
	if cfg.StartOffset == kafka.LastOffset {
		startOffset = kafka.LastOffset
	}

	return &KafkaConsumer{
		logger:       logger,
		retryBackoff: time.Second,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.BrokerList(),
			Topic:       cfg.ActivityTopic,
			GroupID:     cfg.ConsumerGroup,
			MinBytes:    cfg.MinBytes,
			MaxBytes:    cfg.MaxBytes,
			MaxWait:     cfg.MaxWait,
			StartOffset: startOffset,
		}),
	}
}

// Subscribe processes messages with handler on a background goroutine until ctx is canceled.
// Offsets are committed only after the handler succeeds.
func (c *KafkaConsumer) Subscribe(ctx context.Context, topic string, groupID string, handler MessageHandler) error {
	c.logger.Info("Subscribed to Kafka topic",
		"topic", topic,
		"group_id", groupID,
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consume(ctx, topic, groupID, handler)
	}()

	return nil
}

func (c *KafkaConsumer) consume(ctx context.Context, topic, groupID string, handler MessageHandler) {
	for {
		if ctx.Err() != nil {
			c.logger.Info("Context canceled, stopping consumer",
				"topic", topic,
				"group_id", groupID,
			)
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Failed to fetch message from Kafka",
				"topic", topic,
				"group_id", groupID,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retryBackoff):
			}
			continue
		}

		c.logger.Debug("Received message from Kafka",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
		)

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			c.logger.Error("Failed to process message, will not commit offset",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
				"error", err,
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit message after successful processing",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"key", string(msg.Key),
				"error", err,
			)
		}
	}
}

// Wait blocks until every subscription goroutine has returned
func (c *KafkaConsumer) Wait() {
	c.wg.Wait()
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
