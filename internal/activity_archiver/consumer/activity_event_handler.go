package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/platform/messaging/producers"
	"github.com/supplier-ledger/internal/platform/metrics"
)

// ActivityEventHandler copies published activity entries into the archive
type ActivityEventHandler struct {
	archive  activity.ArchiveRepository
	producer producers.DeadLetterPublisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewActivityEventHandler(
	logger *slog.Logger,
	archive activity.ArchiveRepository,
	producer producers.DeadLetterPublisher,
	m *metrics.Metrics,
) *ActivityEventHandler {
	return &ActivityEventHandler{
		archive:  archive,
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// HandleMessage archives one entry. Returning an error leaves the offset uncommitted.
func (h *ActivityEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	entry, err := decodeEntry(value)
	if err != nil {
		h.logger.Error("Failed to decode activity entry from Kafka message",
			"error", err,
			"message_key", string(key),
		)
		h.metrics.RecordActivityArchived(false)

		if h.producer != nil {
			dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, producers.ReasonUndecodableActivity)
			if dlqErr == nil {
				h.logger.Info("Published undecodable activity entry to DLQ", "message_key", string(key))
				return nil
			}
			h.logger.Error("Failed to publish message to DLQ after decode error",
				"dlq_error", dlqErr,
				"original_error", err,
				"message_key", string(key),
			)
		}
		return fmt.Errorf("failed to decode activity entry: %w", err)
	}

	if err := h.archive.Upsert(ctx, &entry); err != nil {
		h.metrics.RecordActivityArchived(false)
		h.logger.Error("Failed to archive activity entry",
			"activity_id", entry.ID,
			"type", entry.Type,
			"error", err,
		)
		return fmt.Errorf("archiving activity entry %s failed: %w", entry.ID, err)
	}

	h.metrics.RecordActivityArchived(true)
	h.logger.Debug("Archived activity entry", "activity_id", entry.ID, "type", entry.Type)
	return nil
}

var errMissingID = errors.New("activity entry has no id")

// decodeEntry rejects payloads without an id or with an unknown type
func decodeEntry(value []byte) (activity.Entry, error) {
	var entry activity.Entry
	if err := json.Unmarshal(value, &entry); err != nil {
		return activity.Entry{}, err
	}
	if entry.ID == "" {
		return activity.Entry{}, errMissingID
	}
	if !entry.Type.IsValid() {
		return activity.Entry{}, fmt.Errorf("%w: %q", activity.ErrUnknownType, entry.Type)
	}
	return entry, nil
}
