// Command genmock generates a mock engine response stream plus the parsed
// results fixture the stream should produce. It uses the actual wire encoder
// and stream parser so fixtures always match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -stream-out data/mock/engine_stream.txt \
//	  -results-out data/mock/replicate_results.json \
//	  -replicates 3 -steps 5 -patches 4
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
	"github.com/couchcryptid/sim-results-etl/internal/stream"
	"github.com/couchcryptid/sim-results-etl/internal/wire"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	streamOut := flag.String("stream-out", "", "output path for the mock engine stream")
	resultsOut := flag.String("results-out", "", "output path for the parsed results JSON fixture")
	replicates := flag.Int("replicates", 3, "number of replicates to simulate")
	steps := flag.Int("steps", 5, "steps per replicate")
	patches := flag.Int("patches", 4, "reported patches per step")
	seed := flag.Int64("seed", 42, "seed for the interleaving order")
	flag.Parse()

	if *streamOut == "" || *resultsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -stream-out, -results-out")
	}

	// Freeze the clock so CompletedAt stamps in the fixture are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	streamText := buildStream(*replicates, *steps, *patches, rand.New(rand.NewSource(*seed)))

	parser := stream.New()
	if err := parser.ProcessChunk(streamText); err != nil {
		return fmt.Errorf("mock stream does not parse: %w", err)
	}
	results := parser.CompletedResults()

	if err := os.MkdirAll(filepath.Dir(*streamOut), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*streamOut, []byte(streamText), 0o600); err != nil {
		return fmt.Errorf("writing stream fixture: %w", err)
	}
	log.Printf("wrote stream fixture: %s", *streamOut)

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(*resultsOut), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*resultsOut, data, 0o600); err != nil {
		return fmt.Errorf("writing results fixture: %w", err)
	}
	log.Printf("wrote results fixture: %s (%d replicates)", *resultsOut, len(results))

	return nil
}

// buildStream emits datum lines interleaved across replicates the way a
// parallel engine would, with progress markers and the occasional keep-alive,
// ending each replicate with its end marker in random order.
func buildStream(replicates, steps, patches int, rng *rand.Rand) string {
	var sb strings.Builder

	for step := 0; step < steps; step++ {
		fmt.Fprintf(&sb, "[progress %d]\n", step)

		order := rng.Perm(replicates)
		for _, r := range order {
			if rng.Intn(10) == 0 {
				fmt.Fprintf(&sb, "[%d]\n", r) // keep-alive
			}
			for patch := 0; patch < patches; patch++ {
				datum := domain.OutputDatum{
					Target: "patches",
					Attributes: map[string]string{
						domain.AttrPositionX: strconv.Itoa(patch % 2),
						domain.AttrPositionY: strconv.Itoa(patch / 2),
						"step":               strconv.Itoa(step),
						"biomass":            strconv.FormatFloat(rng.Float64()*100, 'f', 3, 64),
					},
				}
				fmt.Fprintf(&sb, "[%d] %s\n", r, wire.FormatDatumPayload(datum))
			}
		}
	}

	for _, r := range rng.Perm(replicates) {
		fmt.Fprintf(&sb, "[end %d]\n", r)
	}

	return sb.String()
}
