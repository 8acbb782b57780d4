// Package domain models the result stream produced by a replicate-based
// simulation engine.
//
// # Data Source
//
// The engine executes a simulation as a number of independent replicates and
// reports results over a line-oriented text protocol. Lines arrive interleaved
// across replicates and may be fragmented arbitrarily by the transport, so the
// stream parser (internal/stream) reassembles them before anything in this
// package is constructed.
//
// # Wire Conventions
//
// Response lines (parsed by internal/wire):
//
//	[7] patches:position.x=3	position.y=4	step=12    data point for replicate 7
//	[end 7]                                            replicate 7 finished
//	[progress 120]                                     engine is at step 120
//	[error] something broke                            engine-reported failure
//	[3]                                                keep-alive, ignored
//
// Data point attributes are tab-delimited key=value pairs behind a target
// name; tabs inside attribute values are rewritten to spaces on the engine
// side, so the newline terminator is the only framing that matters.
//
// Engine values pair a magnitude with a unit token, e.g. "30 m" or
// "36.5 degrees". Coordinate strings carry two engine values labelled by a
// trailing token containing "latitude" or "longitude", in either order:
//
//	"36.519 degrees latitude, -118.672 degrees longitude"
//
// # Result Shape
//
// Each replicate yields a SimulationResult: the replicate id plus its data
// points in arrival order. A data point (OutputDatum) is a target path — the
// entity the engine is reporting on — and a flat attribute map whose keys
// include grid-space coordinates (position.x, position.y) and a step number.
// Geocoding (internal/geo) adds position.longitude and position.latitude to
// data points that carry both grid coordinates.
//
// # Grid Space
//
// The simulation grid places its origin at the top-left corner; x counts
// patches eastward and y counts patches southward. Patch size is given in
// meters by SimulationMetadata, which also records the geographic bounding
// box of the grid when the simulation was defined in degrees.
package domain
