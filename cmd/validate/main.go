// Command validate replays a captured engine stream file through the parser
// in randomized chunk sizes and reports what it reconstructs. Useful when
// chasing protocol bugs: a capture that parses cleanly here but misbehaves in
// the service points at the transport, not the stream.
//
// Usage:
//
//	go run ./cmd/validate -stream capture.txt [-grid grid.yaml] [-seed 7] [-lenient]
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"sort"

	"github.com/couchcryptid/sim-results-etl/internal/config"
	"github.com/couchcryptid/sim-results-etl/internal/geo"
	"github.com/couchcryptid/sim-results-etl/internal/stream"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	streamPath := flag.String("stream", "", "captured engine stream file")
	gridPath := flag.String("grid", "", "optional grid metadata YAML; enables geocoding check")
	seed := flag.Int64("seed", 1, "seed for randomized chunk boundaries")
	maxChunk := flag.Int("max-chunk", 64, "maximum chunk size in bytes")
	lenient := flag.Bool("lenient", false, "skip malformed lines instead of failing")
	flag.Parse()

	if *streamPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -stream")
	}

	data, err := os.ReadFile(*streamPath)
	if err != nil {
		return err
	}

	opts := []stream.Option{
		stream.WithObserver(func(completed int) {
			log.Printf("replicate completed (%d total)", completed)
		}),
	}
	if *lenient {
		opts = append(opts, stream.WithSkipMalformed(slog.Default()))
	}
	parser := stream.New(opts...)

	// Feed the capture in random-sized fragments, deliberately splitting
	// mid-line, to exercise the same reassembly the service performs.
	rng := rand.New(rand.NewSource(*seed))
	text := string(data)
	for len(text) > 0 {
		n := 1 + rng.Intn(*maxChunk)
		if n > len(text) {
			n = len(text)
		}
		if err := parser.ProcessChunk(text[:n]); err != nil {
			return fmt.Errorf("stream invalid: %w", err)
		}
		text = text[n:]
	}
	if err := parser.Flush(); err != nil {
		return fmt.Errorf("stream invalid at flush: %w", err)
	}

	results := parser.CompletedResults()

	if *gridPath != "" {
		metadata, err := config.LoadGridMetadata(*gridPath)
		if err != nil {
			return err
		}
		if _, err := geo.AddPositions(results, metadata); err != nil {
			return fmt.Errorf("geocoding failed: %w", err)
		}
		log.Printf("geocoding ok (patch size %g m)", metadata.PatchSizeMeters)
	}

	byReplicate := map[int]int{}
	for _, result := range results {
		byReplicate[result.Replicate] = len(result.Datapoints)
	}
	ids := make([]int, 0, len(byReplicate))
	for id := range byReplicate {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	log.Printf("completed replicates: %d", len(results))
	for _, id := range ids {
		log.Printf("  replicate %d: %d datapoints", id, byReplicate[id])
	}
	if open := parser.OpenReplicates(); open > 0 {
		log.Printf("WARNING: %d replicates never received an end marker", open)
	}
	if skipped := parser.SkippedLines(); skipped > 0 {
		log.Printf("WARNING: %d malformed lines skipped", skipped)
	}

	return nil
}
