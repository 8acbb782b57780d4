package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func degrees(v float64) *float64 {
	return &v
}

func boundedMetadata() SimulationMetadata {
	return SimulationMetadata{
		StartX:          0,
		StartY:          0,
		EndX:            10,
		EndY:            10,
		PatchSizeMeters: 1000,
		MinLongitude:    degrees(-122.5),
		MaxLongitude:    degrees(-122.3),
		MinLatitude:     degrees(37.6),
		MaxLatitude:     degrees(37.8),
	}
}

func TestHasDegrees_AllCornersPresent(t *testing.T) {
	assert.True(t, boundedMetadata().HasDegrees())
}

func TestHasDegrees_MissingAnyCorner(t *testing.T) {
	strip := map[string]func(*SimulationMetadata){
		"min longitude": func(m *SimulationMetadata) { m.MinLongitude = nil },
		"max longitude": func(m *SimulationMetadata) { m.MaxLongitude = nil },
		"min latitude":  func(m *SimulationMetadata) { m.MinLatitude = nil },
		"max latitude":  func(m *SimulationMetadata) { m.MaxLatitude = nil },
	}

	for name, remove := range strip {
		t.Run(name, func(t *testing.T) {
			metadata := boundedMetadata()
			remove(&metadata)
			assert.False(t, metadata.HasDegrees())
		})
	}
}

func TestHasDegrees_NoBoundingBox(t *testing.T) {
	metadata := SimulationMetadata{PatchSizeMeters: 30}
	assert.False(t, metadata.HasDegrees())
}

func TestTopLeft(t *testing.T) {
	origin := boundedMetadata().TopLeft()

	assert.Equal(t, -122.5, origin.Longitude)
	assert.Equal(t, 37.8, origin.Latitude)
}
