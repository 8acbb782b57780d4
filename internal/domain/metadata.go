package domain

// SimulationMetadata describes the grid a simulation ran on: patch-space
// bounds, the size of one patch in meters, and — when the simulation was
// defined in degrees — the geographic bounding box of the grid. It is parsed
// by an external metadata layer and consumed read-only here.
type SimulationMetadata struct {
	StartX          float64
	StartY          float64
	EndX            float64
	EndY            float64
	PatchSizeMeters float64

	// Bounding box in degrees. The zero value means "not specified"; use
	// HasDegrees before relying on these.
	MinLongitude *float64
	MinLatitude  *float64
	MaxLongitude *float64
	MaxLatitude  *float64
}

// HasDegrees reports whether the grid's geographic bounding box is fully
// specified, which is the precondition for geocoding.
func (m SimulationMetadata) HasDegrees() bool {
	hasLongitude := m.MinLongitude != nil && m.MaxLongitude != nil
	hasLatitude := m.MinLatitude != nil && m.MaxLatitude != nil
	return hasLongitude && hasLatitude
}

// TopLeft returns the grid origin in degrees: minimum longitude, maximum
// latitude. Only valid when HasDegrees is true.
func (m SimulationMetadata) TopLeft() EarthPoint {
	return EarthPoint{Longitude: *m.MinLongitude, Latitude: *m.MaxLatitude}
}
