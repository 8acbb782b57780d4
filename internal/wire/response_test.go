package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

func TestParseEngineResponse_Datum(t *testing.T) {
	resp, err := ParseEngineResponse("[7] patches:position.x=3\tposition.y=4")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, ResponseDatum, resp.Type)
	assert.Equal(t, 7, resp.Replicate)
	assert.Equal(t, "patches:position.x=3\tposition.y=4", resp.DataLine)
}

func TestParseEngineResponse_End(t *testing.T) {
	resp, err := ParseEngineResponse("[end 12]")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, ResponseEnd, resp.Type)
	assert.Equal(t, 12, resp.Replicate)
}

func TestParseEngineResponse_Progress(t *testing.T) {
	resp, err := ParseEngineResponse("[progress 120]")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, ResponseProgress, resp.Type)
	assert.Equal(t, int64(120), resp.StepCount)
}

func TestParseEngineResponse_Error(t *testing.T) {
	resp, err := ParseEngineResponse("[error] simulation diverged at step 40")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, ResponseError, resp.Type)
	assert.Equal(t, "simulation diverged at step 40", resp.Message)
}

func TestParseEngineResponse_IgnoredLines(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"blank", ""},
		{"whitespace only", "   "},
		{"keep-alive", "[3]"},
		{"keep-alive with padding", "  [3]  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ParseEngineResponse(tc.line)
			require.NoError(t, err)
			assert.Nil(t, resp)
		})
	}
}

func TestParseEngineResponse_TrimsPadding(t *testing.T) {
	resp, err := ParseEngineResponse("  [end 3]  ")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, ResponseEnd, resp.Type)
}

func TestParseEngineResponse_Malformed(t *testing.T) {
	cases := []string{
		"no brackets at all",
		"[abc] data",
		"[end] missing number",
		"[progress] missing number",
		"end 3]",
	}

	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			_, err := ParseEngineResponse(line)

			var formatErr *domain.FormatError
			require.ErrorAs(t, err, &formatErr, "line %q", line)
			assert.Equal(t, line, formatErr.Raw)
		})
	}
}
