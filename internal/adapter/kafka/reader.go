// Package kafka adapts the pipeline's extractor and loader ports to Kafka
// topics: stream fragments in from the source topic, completed replicate
// results out to the sink topic.
package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/sim-results-etl/internal/config"
	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// Reader consumes stream fragments from the source Kafka topic. Each message
// value is one fragment of engine stream text; fragment boundaries are
// whatever the producer happened to flush, including mid-line.
// It implements pipeline.ChunkExtractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaSourceTopic,
		GroupID: cfg.KafkaGroupID,
	})
	return &Reader{reader: r, logger: logger}
}

// Extract blocks until the next fragment arrives or the context is cancelled.
// Offsets are committed by the pipeline via the chunk's Commit hook once the
// fragment has been absorbed by the parser.
func (r *Reader) Extract(ctx context.Context) (domain.RawChunk, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return domain.RawChunk{}, err
	}

	return domain.RawChunk{
		Text:      string(msg.Value),
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Commit: func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		},
	}, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}
