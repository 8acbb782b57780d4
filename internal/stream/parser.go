// Package stream reconstructs per-replicate simulation results from an
// arbitrarily fragmented engine response stream.
//
// A Parser owns a carry-over buffer for the unterminated tail of the most
// recent chunk, a registry of in-progress replicate builders, and the ordered
// list of completed results. It is deliberately single-threaded: chunks must
// be pushed from one goroutine, and the completion observer runs synchronously
// inside ProcessChunk and must not re-enter the parser.
package stream

import (
	"log/slog"
	"strings"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
	"github.com/couchcryptid/sim-results-etl/internal/wire"
)

// Observer is invoked synchronously each time a replicate completes, with the
// running count of completed replicates. Counts are monotonic starting at 1.
type Observer func(completed int)

// ProgressFunc receives engine progress updates (current step number).
type ProgressFunc func(step int64)

// Option configures a Parser.
type Option func(*Parser)

// WithObserver registers the replicate-completion callback.
func WithObserver(fn Observer) Option {
	return func(p *Parser) { p.observer = fn }
}

// WithProgress registers a callback for [progress N] lines, which are
// otherwise discarded.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Parser) { p.progress = fn }
}

// WithSkipMalformed switches the parser from strict mode to lenient mode:
// malformed lines are logged and counted instead of failing ProcessChunk.
// Protocol violations and engine-reported errors still fail in either mode.
func WithSkipMalformed(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.skipMalformed = true
		p.logger = logger
	}
}

// Parser incrementally consumes engine stream fragments and emits completed
// replicate results. Create one per engine run and discard it afterwards; the
// replicate registry is scoped to the parser, never shared.
type Parser struct {
	buffer    string
	builders  map[int]*domain.SimulationResultBuilder
	finalized map[int]bool
	completed []domain.SimulationResult

	completedCount int
	skippedLines   int

	observer      Observer
	progress      ProgressFunc
	skipMalformed bool
	logger        *slog.Logger
}

// New creates a Parser ready to receive chunks.
func New(opts ...Option) *Parser {
	p := &Parser{
		builders:  map[int]*domain.SimulationResultBuilder{},
		finalized: map[int]bool{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessChunk appends a stream fragment and dispatches every line it
// completes, in arrival order. The trailing segment without a newline stays
// buffered until a later chunk (or Flush) terminates it, so a syntactically
// complete but unterminated line is never acted on early.
//
// In strict mode the first bad line stops processing and is returned; lines
// before it have already been dispatched and the buffer remains consistent,
// so the caller may resume with further chunks after handling the error.
func (p *Parser) ProcessChunk(text string) error {
	p.buffer += text

	for {
		line, rest, found := strings.Cut(p.buffer, "\n")
		if !found {
			return nil
		}
		// Pop the line before dispatching it, so a failure leaves the buffer
		// holding exactly the lines not yet processed plus the unterminated
		// tail. Every terminated line is dispatched exactly once either way.
		p.buffer = rest
		if err := p.processLine(line); err != nil {
			return err
		}
	}
}

// Flush dispatches the buffered carry-over text as if it had been terminated.
// Call it once, after the producer signals end of stream, to recover a final
// line the engine emitted without a trailing newline.
func (p *Parser) Flush() error {
	// Drain any terminated lines still pending after an earlier error.
	if err := p.ProcessChunk(""); err != nil {
		return err
	}
	line := p.buffer
	p.buffer = ""
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return p.processLine(line)
}

func (p *Parser) processLine(line string) error {
	resp, err := wire.ParseEngineResponse(line)
	if err != nil {
		if p.skipMalformed {
			p.skippedLines++
			p.logger.Warn("skipping malformed stream line", "error", err)
			return nil
		}
		return err
	}
	if resp == nil {
		return nil
	}

	switch resp.Type {
	case wire.ResponseDatum:
		return p.handleDatum(resp)
	case wire.ResponseEnd:
		return p.handleEnd(resp.Replicate)
	case wire.ResponseProgress:
		if p.progress != nil {
			p.progress(resp.StepCount)
		}
		return nil
	case wire.ResponseError:
		return &domain.EngineError{Message: resp.Message}
	default:
		return &domain.FormatError{Kind: "response line", Raw: line}
	}
}

func (p *Parser) handleDatum(resp *wire.ParsedResponse) error {
	if p.finalized[resp.Replicate] {
		return &domain.ProtocolViolation{
			Replicate: resp.Replicate,
			Detail:    "datum received after end marker",
		}
	}

	datum, err := wire.ParseDatumPayload(resp.DataLine)
	if err != nil {
		if p.skipMalformed {
			p.skippedLines++
			p.logger.Warn("skipping malformed datum payload", "replicate", resp.Replicate, "error", err)
			return nil
		}
		return err
	}

	builder, ok := p.builders[resp.Replicate]
	if !ok {
		builder = domain.NewSimulationResultBuilder(resp.Replicate)
		p.builders[resp.Replicate] = builder
	}
	builder.Add(datum)
	return nil
}

func (p *Parser) handleEnd(replicate int) error {
	if p.finalized[replicate] {
		return &domain.ProtocolViolation{Replicate: replicate, Detail: "replicate already completed"}
	}
	builder, ok := p.builders[replicate]
	if !ok {
		return &domain.ProtocolViolation{Replicate: replicate, Detail: "end marker for unknown replicate"}
	}

	delete(p.builders, replicate)
	p.finalized[replicate] = true

	p.completed = append(p.completed, builder.Build())
	p.completedCount++
	if p.observer != nil {
		p.observer(p.completedCount)
	}
	return nil
}

// Buffer returns the unterminated carry-over text held between chunks.
func (p *Parser) Buffer() string {
	return p.buffer
}

// CompletedResults returns all finalized results in completion order. The
// returned slice is a snapshot; elements are never mutated after completion.
func (p *Parser) CompletedResults() []domain.SimulationResult {
	out := make([]domain.SimulationResult, len(p.completed))
	copy(out, p.completed)
	return out
}

// CompletedCount returns how many replicates have finished so far.
func (p *Parser) CompletedCount() int {
	return p.completedCount
}

// SkippedLines returns how many malformed lines were dropped in lenient mode.
func (p *Parser) SkippedLines() int {
	return p.skippedLines
}

// OpenReplicates returns how many replicates have started but not yet ended.
func (p *Parser) OpenReplicates() int {
	return len(p.builders)
}
