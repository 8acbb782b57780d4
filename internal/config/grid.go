package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// gridFile is the YAML shape of a grid metadata document:
//
//	start_x: 0
//	start_y: 0
//	end_x: 100
//	end_y: 100
//	patch_size_meters: 30
//	min_longitude: -118.672
//	min_latitude: 36.419
//	max_longitude: -118.572
//	max_latitude: 36.519
//
// The four degree bounds are optional together; grids not defined in degrees
// omit them and cannot be geocoded.
type gridFile struct {
	StartX          float64  `yaml:"start_x"`
	StartY          float64  `yaml:"start_y"`
	EndX            float64  `yaml:"end_x"`
	EndY            float64  `yaml:"end_y"`
	PatchSizeMeters float64  `yaml:"patch_size_meters"`
	MinLongitude    *float64 `yaml:"min_longitude"`
	MinLatitude     *float64 `yaml:"min_latitude"`
	MaxLongitude    *float64 `yaml:"max_longitude"`
	MaxLatitude     *float64 `yaml:"max_latitude"`
}

// LoadGridMetadata reads simulation grid metadata from a YAML file.
func LoadGridMetadata(path string) (domain.SimulationMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SimulationMetadata{}, fmt.Errorf("read grid metadata: %w", err)
	}

	var gf gridFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return domain.SimulationMetadata{}, fmt.Errorf("parse grid metadata: %w", err)
	}

	if gf.PatchSizeMeters <= 0 {
		return domain.SimulationMetadata{}, fmt.Errorf("grid metadata: patch_size_meters must be positive, got %g", gf.PatchSizeMeters)
	}

	return domain.SimulationMetadata{
		StartX:          gf.StartX,
		StartY:          gf.StartY,
		EndX:            gf.EndX,
		EndY:            gf.EndY,
		PatchSizeMeters: gf.PatchSizeMeters,
		MinLongitude:    gf.MinLongitude,
		MinLatitude:     gf.MinLatitude,
		MaxLongitude:    gf.MaxLongitude,
		MaxLatitude:     gf.MaxLatitude,
	}, nil
}
