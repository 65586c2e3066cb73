// Package kafka publishes final per-state summaries to a Kafka topic so
// downstream dashboards can pick up each run's output without scraping the
// text report.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-tdv-report/internal/config"
	"github.com/couchcryptid/climate-tdv-report/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces summary messages to the configured topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured summary topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSummaryTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSummaries serializes and publishes all state summaries in a single
// WriteMessages call. The message key is the state code, so per-state
// ordering is stable across runs.
func (w *Writer) PublishSummaries(ctx context.Context, summaries []domain.StateSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(summaries))
	for i := range summaries {
		msg, err := serializeToMessage(summaries[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	w.logger.Info("publishing state summaries", "count", len(msgs), "topic", w.writer.Topic)
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a StateSummary into a Kafka message.
func serializeToMessage(s domain.StateSummary) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize state summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.Code),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "state", Value: []byte(s.Code)},
			{Key: "processed_at", Value: []byte(s.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
