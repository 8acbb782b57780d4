package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/sim-results-etl/internal/config"
	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// Writer publishes completed replicate results to the sink Kafka topic.
// It implements pipeline.ResultLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes one completed replicate result and publishes it, keyed by
// replicate id so all results of a replicate land on one partition.
func (w *Writer) Load(ctx context.Context, result domain.SimulationResult) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SimulationResult into a Kafka message.
func serializeToMessage(result domain.SimulationResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize replicate result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(result.Replicate)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "replicate", Value: []byte(strconv.Itoa(result.Replicate))},
			{Key: "completed_at", Value: []byte(result.CompletedAt.Format(time.RFC3339))},
		},
	}, nil
}
