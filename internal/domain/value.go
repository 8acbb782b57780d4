package domain

// EngineValue is a numeric magnitude paired with its unit as reported by the
// engine, e.g. 30 "m" or 36.5 "degrees". Immutable once parsed.
type EngineValue struct {
	Value float64
	Units string
}

// CoordinatePair holds the longitude and latitude engine values parsed from a
// start or end coordinate string. The wire format allows either component to
// appear first; the parser normalizes the order.
type CoordinatePair struct {
	Longitude EngineValue
	Latitude  EngineValue
}

// EarthPoint is a geographic position in degrees. Positive longitude is east,
// positive latitude is north.
type EarthPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}
