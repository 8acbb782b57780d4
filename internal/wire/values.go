// Package wire parses the text formats the simulation engine puts on the
// stream: standalone engine values, coordinate strings, response lines, and
// datum payloads.
package wire

import (
	"strconv"
	"strings"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// ParseEngineValue parses a string of the form "<float> <unit>", e.g. "30 m".
// The unit may itself contain spaces ("degrees latitude"); everything after
// the first space belongs to it.
func ParseEngineValue(target string) (domain.EngineValue, error) {
	parts := strings.SplitN(strings.TrimSpace(target), " ", 2)
	if len(parts) != 2 {
		return domain.EngineValue{}, &domain.FormatError{Kind: "engine value", Raw: target}
	}
	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.EngineValue{}, &domain.FormatError{Kind: "engine value", Raw: target}
	}
	return domain.EngineValue{Value: value, Units: parts[1]}, nil
}

// ParseCoordinatePair parses a start or end coordinate string such as
//
//	"36.519 degrees latitude, -118.672 degrees longitude"
//
// The two comma-separated halves each carry a number, a unit, and a label;
// whichever half's label contains "latitude" is the latitude, the other is
// treated as longitude. Either order is accepted.
func ParseCoordinatePair(target string) (domain.CoordinatePair, error) {
	parts := strings.Split(strings.TrimSpace(target), ",")
	if len(parts) != 2 {
		return domain.CoordinatePair{}, &domain.FormatError{Kind: "coordinate", Raw: target}
	}

	firstParts := strings.Split(strings.TrimSpace(parts[0]), " ")
	secondParts := strings.Split(strings.TrimSpace(parts[1]), " ")
	if len(firstParts) < 3 || len(secondParts) < 3 {
		return domain.CoordinatePair{}, &domain.FormatError{Kind: "coordinate", Raw: target}
	}

	first, err := componentValue(firstParts)
	if err != nil {
		return domain.CoordinatePair{}, &domain.FormatError{Kind: "coordinate", Raw: target}
	}
	second, err := componentValue(secondParts)
	if err != nil {
		return domain.CoordinatePair{}, &domain.FormatError{Kind: "coordinate", Raw: target}
	}

	if strings.Contains(firstParts[2], "latitude") {
		return domain.CoordinatePair{Longitude: second, Latitude: first}, nil
	}
	return domain.CoordinatePair{Longitude: first, Latitude: second}, nil
}

func componentValue(tokens []string) (domain.EngineValue, error) {
	value, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return domain.EngineValue{}, err
	}
	return domain.EngineValue{Value: value, Units: tokens[1]}, nil
}
