package domain

import "time"

// Attribute keys the engine uses for grid-space positions and the keys the
// geocoder writes back. Attribute values stay strings on the wire; callers
// interpret them as needed.
const (
	AttrPositionX         = "position.x"
	AttrPositionY         = "position.y"
	AttrPositionLongitude = "position.longitude"
	AttrPositionLatitude  = "position.latitude"
)

// OutputDatum is one engine-reported observation: the target path naming the
// entity reported on, plus its attributes at that point in the replicate's
// timeline.
type OutputDatum struct {
	Target     string            `json:"target"`
	Attributes map[string]string `json:"attributes"`
}

// SimulationResult is the completed output of one replicate. Datapoints are in
// arrival order. Results are immutable once built; the geocoder is the one
// sanctioned exception and mutates attribute maps in place.
type SimulationResult struct {
	Replicate   int           `json:"replicate"`
	Datapoints  []OutputDatum `json:"datapoints"`
	CompletedAt time.Time     `json:"completed_at"`
}

// SimulationResultBuilder accumulates datapoints for one replicate until its
// end-of-replicate marker arrives. A builder belongs to exactly one stream
// parser and is discarded after Build.
type SimulationResultBuilder struct {
	replicate  int
	datapoints []OutputDatum
}

// NewSimulationResultBuilder creates an empty builder for the given replicate.
func NewSimulationResultBuilder(replicate int) *SimulationResultBuilder {
	return &SimulationResultBuilder{replicate: replicate}
}

// Add appends a datapoint, preserving arrival order.
func (b *SimulationResultBuilder) Add(datum OutputDatum) {
	b.datapoints = append(b.datapoints, datum)
}

// Len reports how many datapoints have accumulated so far.
func (b *SimulationResultBuilder) Len() int {
	return len(b.datapoints)
}

// Build finalizes the accumulated datapoints into an immutable result,
// stamping the completion time from the package clock.
func (b *SimulationResultBuilder) Build() SimulationResult {
	return SimulationResult{
		Replicate:   b.replicate,
		Datapoints:  b.datapoints,
		CompletedAt: clock.Now().UTC(),
	}
}
