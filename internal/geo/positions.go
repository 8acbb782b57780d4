package geo

import (
	"strconv"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// AddPositions geocodes every datapoint carrying both position.x and
// position.y: starting at the grid's top-left corner, it moves east by
// x*patchSize meters and then south by y*patchSize meters, and writes
// position.longitude and position.latitude back onto the datapoint's
// attributes, overwriting prior values. Datapoints missing either grid
// coordinate are left alone.
//
// All replicates are assumed to share the one metadata. The results are
// mutated in place and also returned for call chaining.
func AddPositions(results []domain.SimulationResult, metadata domain.SimulationMetadata) ([]domain.SimulationResult, error) {
	if !metadata.HasDegrees() {
		return results, &domain.InvalidArgumentError{Detail: "metadata has no geographic bounding box"}
	}

	topLeft := metadata.TopLeft()

	for _, result := range results {
		for _, datum := range result.Datapoints {
			if err := geocodeDatum(datum, topLeft, metadata.PatchSizeMeters); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func geocodeDatum(datum domain.OutputDatum, topLeft domain.EarthPoint, patchSizeMeters float64) error {
	rawX, okX := datum.Attributes[domain.AttrPositionX]
	rawY, okY := datum.Attributes[domain.AttrPositionY]
	if !okX || !okY {
		return nil
	}

	x, err := strconv.ParseFloat(rawX, 64)
	if err != nil {
		return &domain.FormatError{Kind: "engine value", Raw: rawX}
	}
	y, err := strconv.ParseFloat(rawY, 64)
	if err != nil {
		return &domain.FormatError{Kind: "engine value", Raw: rawY}
	}

	east, err := AtDistanceFrom(topLeft, x*patchSizeMeters, "E")
	if err != nil {
		return err
	}
	point, err := AtDistanceFrom(east, y*patchSizeMeters, "S")
	if err != nil {
		return err
	}

	datum.Attributes[domain.AttrPositionLongitude] = strconv.FormatFloat(point.Longitude, 'f', -1, 64)
	datum.Attributes[domain.AttrPositionLatitude] = strconv.FormatFloat(point.Latitude, 'f', -1, 64)
	return nil
}
