// Package geo converts between Earth-space points and the simulation's
// grid-space patch offsets, and geocodes completed result sets.
package geo

import (
	"math"
	"strconv"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// earthRadiusMeters is the spherical-earth radius used throughout; distances
// and projections must agree on it for the round-trip property to hold.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle (Haversine) distance between two
// points. Symmetric in its arguments; zero when the points coincide.
func DistanceMeters(start, end domain.EarthPoint) float64 {
	lat1 := radians(start.Latitude)
	lat2 := radians(end.Latitude)
	deltaLat := radians(end.Latitude - start.Latitude)
	deltaLon := radians(end.Longitude - start.Longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// AtDistanceFrom returns the point reached by moving distanceMeters from
// start in one of the cardinal directions "N", "S", "E", or "W"
// (case-sensitive). Any other token is an InvalidArgumentError.
//
// North and south moves change only latitude. East and west moves change only
// longitude, scaled by 1/cos(latitude) for meridian convergence. The
// east/west math is an equirectangular approximation, not a great-circle
// bearing projection; DistanceMeters measures moves produced here back within
// a small tolerance, and downstream tests depend on that agreement, so do not
// swap in full bearing math.
func AtDistanceFrom(start domain.EarthPoint, distanceMeters float64, direction string) (domain.EarthPoint, error) {
	angular := degrees(distanceMeters / earthRadiusMeters)

	switch direction {
	case "N":
		return domain.EarthPoint{Longitude: start.Longitude, Latitude: start.Latitude + angular}, nil
	case "S":
		return domain.EarthPoint{Longitude: start.Longitude, Latitude: start.Latitude - angular}, nil
	case "E":
		return domain.EarthPoint{
			Longitude: start.Longitude + angular/math.Cos(radians(start.Latitude)),
			Latitude:  start.Latitude,
		}, nil
	case "W":
		return domain.EarthPoint{
			Longitude: start.Longitude - angular/math.Cos(radians(start.Latitude)),
			Latitude:  start.Latitude,
		}, nil
	default:
		return domain.EarthPoint{}, &domain.InvalidArgumentError{
			Detail: "direction must be one of N, S, E, W: " + strconv.Quote(direction),
		}
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
