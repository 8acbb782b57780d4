package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

var (
	losAngeles   = domain.EarthPoint{Longitude: -118.24, Latitude: 34.05}
	sanFrancisco = domain.EarthPoint{Longitude: -122.45, Latitude: 37.73}
)

func TestDistanceMeters_KnownDistance(t *testing.T) {
	distance := DistanceMeters(losAngeles, sanFrancisco)

	// LA to SF is about 558 km; spherical-earth Haversine should land within
	// 5% of the surveyed value.
	expected := 557787.0
	assert.InDelta(t, expected, distance, expected*0.05)
}

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	point := domain.EarthPoint{Longitude: 1.23, Latitude: 1.23}
	assert.InDelta(t, 0, DistanceMeters(point, point), 1e-6)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	forward := DistanceMeters(losAngeles, sanFrancisco)
	backward := DistanceMeters(sanFrancisco, losAngeles)
	assert.Equal(t, forward, backward)
}

func TestAtDistanceFrom_North(t *testing.T) {
	result, err := AtDistanceFrom(sanFrancisco, 5000, "N")
	require.NoError(t, err)

	assert.Greater(t, result.Latitude, sanFrancisco.Latitude)
	assert.InDelta(t, sanFrancisco.Longitude, result.Longitude, 1e-2)
}

func TestAtDistanceFrom_South(t *testing.T) {
	result, err := AtDistanceFrom(sanFrancisco, 5000, "S")
	require.NoError(t, err)

	assert.Less(t, result.Latitude, sanFrancisco.Latitude)
	assert.InDelta(t, sanFrancisco.Longitude, result.Longitude, 1e-2)
}

func TestAtDistanceFrom_East(t *testing.T) {
	result, err := AtDistanceFrom(sanFrancisco, 5000, "E")
	require.NoError(t, err)

	assert.Greater(t, result.Longitude, sanFrancisco.Longitude)
	assert.InDelta(t, sanFrancisco.Latitude, result.Latitude, 1e-2)
}

func TestAtDistanceFrom_West(t *testing.T) {
	result, err := AtDistanceFrom(sanFrancisco, 5000, "W")
	require.NoError(t, err)

	assert.Less(t, result.Longitude, sanFrancisco.Longitude)
	assert.InDelta(t, sanFrancisco.Latitude, result.Latitude, 1e-2)
}

func TestAtDistanceFrom_InvalidDirection(t *testing.T) {
	for _, direction := range []string{"X", "n", "NE", "", "North"} {
		t.Run(direction, func(t *testing.T) {
			_, err := AtDistanceFrom(sanFrancisco, 5000, direction)

			var invalidErr *domain.InvalidArgumentError
			require.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestAtDistanceFrom_ZeroDistance(t *testing.T) {
	result, err := AtDistanceFrom(sanFrancisco, 0, "N")
	require.NoError(t, err)
	assert.Equal(t, sanFrancisco, result)
}

// Projection and distance must agree: moving d meters in a cardinal
// direction and measuring back reproduces d. The east/west equirectangular
// approximation is calibrated to keep this inverse property tight.
func TestRoundTrip_ProjectionAgreesWithDistance(t *testing.T) {
	distances := []float64{1, 100, 1000, 5000, 50000}

	for _, direction := range []string{"N", "S", "E", "W"} {
		for _, d := range distances {
			result, err := AtDistanceFrom(sanFrancisco, d, direction)
			require.NoError(t, err)

			measured := DistanceMeters(sanFrancisco, result)
			tolerance := math.Max(d*1e-4, 1e-4)
			assert.InDelta(t, d, measured, tolerance,
				"direction %s distance %g", direction, d)
		}
	}
}
