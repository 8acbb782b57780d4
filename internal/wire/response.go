package wire

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

var (
	endRe      = regexp.MustCompile(`^\[end (\d+)\]$`)
	emptyRe    = regexp.MustCompile(`^\[(\d+)\]$`)
	errorRe    = regexp.MustCompile(`^\[error\] (.+)$`)
	progressRe = regexp.MustCompile(`^\[progress (\d+)\]$`)
	datumRe    = regexp.MustCompile(`^\[(\d+)\] (.+)$`)
)

// ResponseType classifies a parsed engine response line.
type ResponseType int

const (
	// ResponseDatum is a data point belonging to one replicate.
	ResponseDatum ResponseType = iota
	// ResponseEnd signals that a replicate has finished.
	ResponseEnd
	// ResponseProgress reports the engine's current step number.
	ResponseProgress
	// ResponseError carries an engine-side failure message.
	ResponseError
)

// ParsedResponse is one classified line from the engine stream.
type ParsedResponse struct {
	Type      ResponseType
	Replicate int    // DATUM and END lines
	DataLine  string // raw datum payload, DATUM lines only
	StepCount int64  // PROGRESS lines only
	Message   string // ERROR lines only
}

// ParseEngineResponse classifies a single stream line. It returns (nil, nil)
// for lines that carry no information: blank lines and bare "[N]" keep-alive
// markers. Lines matching no known shape yield a FormatError.
//
// Recognized shapes:
//
//	[end N]        replicate N completed
//	[progress N]   engine is at step N
//	[error] msg    engine-side failure
//	[N] payload    data point for replicate N
//	[N]            empty data point, ignored
func ParseEngineResponse(line string) (*ParsedResponse, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	if m := endRe.FindStringSubmatch(trimmed); m != nil {
		replicate, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, &domain.FormatError{Kind: "response line", Raw: line}
		}
		return &ParsedResponse{Type: ResponseEnd, Replicate: replicate}, nil
	}

	if emptyRe.MatchString(trimmed) {
		return nil, nil
	}

	if m := errorRe.FindStringSubmatch(trimmed); m != nil {
		return &ParsedResponse{Type: ResponseError, Message: m[1]}, nil
	}

	if m := progressRe.FindStringSubmatch(trimmed); m != nil {
		step, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, &domain.FormatError{Kind: "response line", Raw: line}
		}
		return &ParsedResponse{Type: ResponseProgress, StepCount: step}, nil
	}

	if m := datumRe.FindStringSubmatch(trimmed); m != nil {
		replicate, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, &domain.FormatError{Kind: "response line", Raw: line}
		}
		dataLine := m[2]
		if strings.TrimSpace(dataLine) == "" {
			return nil, nil
		}
		return &ParsedResponse{Type: ResponseDatum, Replicate: replicate, DataLine: dataLine}, nil
	}

	return nil, &domain.FormatError{Kind: "response line", Raw: line}
}
