// Package pipeline orchestrates the extract-parse-publish loop: stream
// fragments in, completed (optionally geocoded) replicate results out.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
	"github.com/couchcryptid/sim-results-etl/internal/geo"
	"github.com/couchcryptid/sim-results-etl/internal/observability"
	"github.com/couchcryptid/sim-results-etl/internal/stream"
)

// ChunkExtractor reads the next raw stream fragment from the source, blocking
// until one arrives or the context is cancelled.
type ChunkExtractor interface {
	Extract(ctx context.Context) (domain.RawChunk, error)
}

// ResultLoader writes a completed replicate result to the destination.
type ResultLoader interface {
	Load(ctx context.Context, result domain.SimulationResult) error
}

// Options carries the optional pieces of pipeline construction.
type Options struct {
	// Metadata enables geocoding of completed results when it has a
	// geographic bounding box. Nil disables geocoding.
	Metadata *domain.SimulationMetadata

	// SkipMalformed runs the parser in lenient mode.
	SkipMalformed bool
}

// Pipeline drives one engine run: it pulls chunks from the extractor, feeds
// the stream parser, and publishes each replicate as it completes.
type Pipeline struct {
	extractor   ChunkExtractor
	loader      ResultLoader
	parser      *stream.Parser
	metadata    *domain.SimulationMetadata
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	published   int
	lastSkipped int
}

// New creates a Pipeline around a fresh stream parser.
func New(e ChunkExtractor, l ResultLoader, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	p := &Pipeline{
		extractor: e,
		loader:    l,
		metadata:  opts.Metadata,
		logger:    logger,
		metrics:   metrics,
	}

	parserOpts := []stream.Option{
		stream.WithObserver(func(completed int) {
			metrics.ReplicatesCompleted.Inc()
			logger.Info("replicate completed", "completed_total", completed)
		}),
		stream.WithProgress(func(step int64) {
			logger.Debug("engine progress", "step", step)
		}),
	}
	if opts.SkipMalformed {
		parserOpts = append(parserOpts, stream.WithSkipMalformed(logger))
	}
	p.parser = stream.New(parserOpts...)
	return p
}

// CheckReadiness returns nil once at least one replicate has been published,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no replicate has completed yet")
	}
	return nil
}

// Run executes the consume loop until the context is cancelled or the stream
// fails. Extractor errors back off and retry; parse failures in strict mode
// and engine-reported errors end the run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "geocode", p.metadata != nil)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff for extractor failures: start at 200ms, double each
	// retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err(),
				"completed", p.parser.CompletedCount(),
				"open_replicates", p.parser.OpenReplicates())
			return nil
		default:
		}

		chunk, err := p.extractor.Extract(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, ErrStreamDone) {
				return p.finish(ctx)
			}
			p.logger.Error("extract chunk failed", "error", err)
			if !p.backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}
		backoff = 200 * time.Millisecond

		if err := p.processChunk(ctx, chunk); err != nil {
			return err
		}
	}
}

// ErrStreamDone is returned by extractors whose stream has a natural end,
// such as the remote engine client once the response body is exhausted.
var ErrStreamDone = errors.New("stream done")

func (p *Pipeline) processChunk(ctx context.Context, chunk domain.RawChunk) error {
	start := time.Now()

	p.metrics.ChunksConsumed.Inc()
	p.metrics.ChunkBytes.Add(float64(len(chunk.Text)))

	if err := p.parser.ProcessChunk(chunk.Text); err != nil {
		p.metrics.ParseErrors.Inc()
		p.logger.Error("stream parse failed", "error", err,
			"topic", chunk.Topic, "partition", chunk.Partition, "offset", chunk.Offset)
		return err
	}
	if skipped := p.parser.SkippedLines(); skipped > p.lastSkipped {
		p.metrics.ParseErrors.Add(float64(skipped - p.lastSkipped))
		p.lastSkipped = skipped
	}

	if err := p.publishNew(ctx); err != nil {
		return err
	}

	p.commitChunk(ctx, chunk)
	p.metrics.ChunkProcessingDuration.Observe(time.Since(start).Seconds())
	return nil
}

// finish flushes the parser's carry-over buffer and publishes anything it
// completes, then reports how the run ended.
func (p *Pipeline) finish(ctx context.Context) error {
	if err := p.parser.Flush(); err != nil {
		return err
	}
	if err := p.publishNew(ctx); err != nil {
		return err
	}
	p.logger.Info("stream finished",
		"completed", p.parser.CompletedCount(),
		"open_replicates", p.parser.OpenReplicates(),
		"skipped_lines", p.parser.SkippedLines())
	return nil
}

// publishNew geocodes and loads every result completed since the last call,
// in completion order.
func (p *Pipeline) publishNew(ctx context.Context) error {
	results := p.parser.CompletedResults()
	for ; p.published < len(results); p.published++ {
		result := results[p.published]

		if p.metadata != nil && p.metadata.HasDegrees() {
			if _, err := geo.AddPositions([]domain.SimulationResult{result}, *p.metadata); err != nil {
				return err
			}
			p.metrics.DatapointsGeocoded.Add(float64(len(result.Datapoints)))
		}

		if err := p.loader.Load(ctx, result); err != nil {
			return err
		}
		p.metrics.ResultsPublished.Inc()
		p.metrics.ReplicateDatapoints.Observe(float64(len(result.Datapoints)))
		p.ready.Store(true)
	}
	return nil
}

func (p *Pipeline) commitChunk(ctx context.Context, chunk domain.RawChunk) {
	if chunk.Commit == nil {
		return
	}
	if err := chunk.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", chunk.Topic, "partition", chunk.Partition, "offset", chunk.Offset)
	}
}

// backoffOrStop sleeps with the current backoff and advances it. Returns
// false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	next := *backoff * 2
	if next > maxBackoff {
		next = maxBackoff
	}
	*backoff = next
	return true
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
