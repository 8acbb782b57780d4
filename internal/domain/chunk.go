package domain

import (
	"context"
	"time"
)

// RawChunk is one unprocessed stream fragment from the source. Fragment
// boundaries are arbitrary — a chunk may end mid-line — which is exactly what
// the stream parser's carry-over buffer absorbs.
type RawChunk struct {
	Text      string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}
