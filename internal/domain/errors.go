package domain

import "fmt"

// FormatError reports malformed wire text: an engine value, a coordinate
// string, or a whole response line that does not match the protocol grammar.
// It always carries the offending raw text so callers can log or surface it.
type FormatError struct {
	Kind string // "engine value", "coordinate", "response line", "datum payload"
	Raw  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s format: %q", e.Kind, e.Raw)
}

// ProtocolViolation reports a response line that is well-formed but illegal in
// the current parser state, such as an end marker for a replicate that was
// never started or data arriving after a replicate already completed.
type ProtocolViolation struct {
	Replicate int
	Detail    string
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation for replicate %d: %s", e.Replicate, e.Detail)
}

// InvalidArgumentError reports a caller error on the geometry API, such as an
// unsupported cardinal direction token.
type InvalidArgumentError struct {
	Detail string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Detail
}

// EngineError carries a failure the engine itself reported on the stream via
// an [error] line. The simulation run that produced it is not recoverable.
type EngineError struct {
	Message string
}

func (e *EngineError) Error() string {
	return "engine error: " + e.Message
}
