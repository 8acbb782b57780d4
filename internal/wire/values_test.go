package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

func TestParseEngineValue(t *testing.T) {
	value, err := ParseEngineValue("30 m")
	require.NoError(t, err)
	assert.Equal(t, 30.0, value.Value)
	assert.Equal(t, "m", value.Units)
}

func TestParseEngineValue_MultiWordUnits(t *testing.T) {
	value, err := ParseEngineValue("36.5 degrees latitude")
	require.NoError(t, err)
	assert.Equal(t, 36.5, value.Value)
	assert.Equal(t, "degrees latitude", value.Units)
}

func TestParseEngineValue_Negative(t *testing.T) {
	value, err := ParseEngineValue("-118.672 degrees")
	require.NoError(t, err)
	assert.Equal(t, -118.672, value.Value)
}

func TestParseEngineValue_TrimsWhitespace(t *testing.T) {
	value, err := ParseEngineValue("  30 m")
	require.NoError(t, err)
	assert.Equal(t, 30.0, value.Value)
}

func TestParseEngineValue_MissingUnits(t *testing.T) {
	_, err := ParseEngineValue("30")

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "30", formatErr.Raw)
}

func TestParseEngineValue_NonNumeric(t *testing.T) {
	_, err := ParseEngineValue("thirty m")

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestParseCoordinatePair_LatitudeFirst(t *testing.T) {
	pair, err := ParseCoordinatePair("36.519 degrees latitude, -118.672 degrees longitude")
	require.NoError(t, err)

	assert.Equal(t, 36.519, pair.Latitude.Value)
	assert.Equal(t, -118.672, pair.Longitude.Value)
	assert.Equal(t, "degrees", pair.Latitude.Units)
	assert.Equal(t, "degrees", pair.Longitude.Units)
}

func TestParseCoordinatePair_LongitudeFirst(t *testing.T) {
	pair, err := ParseCoordinatePair("-118.672 degrees longitude, 36.519 degrees latitude")
	require.NoError(t, err)

	assert.Equal(t, 36.519, pair.Latitude.Value)
	assert.Equal(t, -118.672, pair.Longitude.Value)
}

func TestParseCoordinatePair_Malformed(t *testing.T) {
	cases := []struct {
		name   string
		target string
	}{
		{"no comma", "36.519 degrees latitude -118.672 degrees longitude"},
		{"too many commas", "1 a latitude, 2 b longitude, 3 c other"},
		{"too few tokens", "36.519 latitude, -118.672 longitude"},
		{"non-numeric component", "abc degrees latitude, -118.672 degrees longitude"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCoordinatePair(tc.target)

			var formatErr *domain.FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tc.target, formatErr.Raw)
		})
	}
}
