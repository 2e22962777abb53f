package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/domain/activity"
)

// MockKafkaWriter mocks KafkaWriter interface
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestActivityEventProducer_PublishActivity(t *testing.T) {
	logger := newTestLogger()
	topic := "test-activity"
	ctx := context.Background()

	entry := activity.Entry{
		ID:    "0190f7a2-0000-7000-8000-000000000001",
		Type:  activity.TypePayment,
		Title: "دفع جزئي: 17",
		Meta:  "100.00 د.ع",
		Date:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &ActivityEventProducer{logger: logger, writer: mockWriter, topic: topic}

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			var decoded activity.Entry
			if err := json.Unmarshal(msg.Value, &decoded); err != nil {
				return false
			}
			return string(msg.Key) == entry.ID &&
				decoded.Title == entry.Title &&
				decoded.Date.Equal(entry.Date) &&
				len(msg.Headers) == 1 &&
				msg.Headers[0].Key == EventTypeHeader &&
				string(msg.Headers[0].Value) == "payment"
		})).Return(nil).Once()

		err := producer.PublishActivity(ctx, entry)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("WriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &ActivityEventProducer{logger: logger, writer: mockWriter, topic: topic}

		writerErr := errors.New("broker unavailable")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerErr).Once()

		err := producer.PublishActivity(ctx, entry)
		require.Error(t, err)
		assert.ErrorIs(t, err, writerErr)
		mockWriter.AssertExpectations(t)
	})
}

func TestActivityEventProducer_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &ActivityEventProducer{logger: newTestLogger(), writer: mockWriter, topic: "t"}

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			return len(msgs) == 1 && string(msgs[0].Key) == "k" && string(msgs[0].Value) == `{"a":1}`
		})).Return(nil).Once()

		require.NoError(t, producer.Publish(ctx, "k", map[string]int{"a": 1}))
		mockWriter.AssertExpectations(t)
	})

	t.Run("MarshalError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &ActivityEventProducer{logger: newTestLogger(), writer: mockWriter, topic: "t"}

		err := producer.Publish(ctx, "k", make(chan int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal activity event")
		mockWriter.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})
}

func TestActivityEventProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := &ActivityEventProducer{logger: newTestLogger(), writer: mockWriter, topic: "t"}

	mockWriter.On("Close").Return(errors.New("close failed")).Once()
	err := producer.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close failed")
}

func TestNewActivityEventProducer_RequiresTopic(t *testing.T) {
	producer, err := NewActivityEventProducer(context.Background(), newTestLogger(), &config.KafkaConfig{Brokers: "localhost:9092"})
	require.Error(t, err)
	assert.Nil(t, producer)
}

func TestEnsureTopic_NoBrokers(t *testing.T) {
	err := ensureTopic(context.Background(), nil, "t", 1, 1, newTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kafka brokers configured")
}
