package producers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	topicReadAttempts = 5
	topicReadBackoff  = 2 * time.Second
)

// dialAny connects to the first reachable broker
func dialAny(ctx context.Context, brokers []string) (*kafka.Conn, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	var lastErr error
	for _, b := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", b)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ensureTopic creates topicName when no partitions can be read for it, retrying the read first
func ensureTopic(ctx context.Context, brokers []string, topicName string, numPartitions int, replicationFactor int, log *slog.Logger) error {
	conn, err := dialAny(ctx, brokers)
	if err != nil {
		return fmt.Errorf("failed to dial kafka: %w", err)
	}
	defer conn.Close()

	var partitions []kafka.Partition
	log.Info("Checking if Kafka topic exists", "topic", topicName)
	for i := 0; i < topicReadAttempts; i++ {
		partitions, err = conn.ReadPartitions(topicName)
		if err == nil && len(partitions) > 0 {
			log.Info("Kafka topic already exists", "topic", topicName, "partitions", len(partitions))
			return nil
		}
		log.Warn("Failed to read partitions, retrying...", "topic", topicName, "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(topicReadBackoff):
		}
	}

	topicConfig := kafka.TopicConfig{
		Topic:             topicName,
		NumPartitions:     max(numPartitions, 1),
		ReplicationFactor: max(replicationFactor, 1),
	}
	if err := conn.CreateTopics(topicConfig); err != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topicName, err)
	}
	log.Info("Successfully created Kafka topic", "topic", topicName)
	return nil
}
