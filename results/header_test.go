package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRaceCells() RaceCells {
	return RaceCells{
		RaceIDText:     "RACE 1 (828)",
		DateText:       "Race Meeting: 04/05/2025 Sha Tin",
		GoingText:      "GOOD TO FIRM",
		SurfaceText:    `Turf - "A+3" Course`,
		ConditionsText: "Class 4 - 1400M - (60-40)",
	}
}

// TestBuildHeader_FullMetadata verifies every derived header field from a
// complete metadata set
func TestBuildHeader_FullMetadata(t *testing.T) {
	h := BuildHeader(sampleRaceCells(), "ST", 1)

	require.NotNil(t, h.RaceDate)
	assert.Equal(t, "04/05/25", *h.RaceDate)
	require.NotNil(t, h.Season)
	assert.Equal(t, "24/25", *h.Season)
	assert.Equal(t, "ST", h.RaceCourse)
	assert.Equal(t, 1, h.RaceNo)
	require.NotNil(t, h.RaceID)
	assert.Equal(t, "828", *h.RaceID)
	require.NotNil(t, h.Distance)
	assert.Equal(t, 1400, *h.Distance)
	require.NotNil(t, h.DistanceGroup)
	assert.Equal(t, "Short", *h.DistanceGroup)
	require.NotNil(t, h.GoingType)
	assert.Equal(t, "GF", *h.GoingType)
	require.NotNil(t, h.Surface)
	assert.Equal(t, "TURF", *h.Surface)
	require.NotNil(t, h.CourseType)
	assert.Equal(t, "A+3", *h.CourseType)
	require.NotNil(t, h.Class)
	assert.Equal(t, "STD_4", h.Class.Category)
}

// TestBuildHeader_AllWeather verifies the all-weather surface collapses
// both surface and course type, and the going uses the AWT table
func TestBuildHeader_AllWeather(t *testing.T) {
	cells := sampleRaceCells()
	cells.SurfaceText = "ALL WEATHER TRACK"
	cells.GoingText = "WET SLOW"
	cells.ConditionsText = "Class 3 - 1650M"

	h := BuildHeader(cells, "ST", 5)

	require.NotNil(t, h.Surface)
	assert.Equal(t, "AWT", *h.Surface)
	require.NotNil(t, h.CourseType)
	assert.Equal(t, "AWT", *h.CourseType)
	require.NotNil(t, h.GoingType)
	assert.Equal(t, "WS", *h.GoingType)
	require.NotNil(t, h.DistanceGroup)
	assert.Equal(t, "Mid", *h.DistanceGroup)
}

// TestBuildHeader_MissingCells verifies assembly is total: missing cells
// become nil fields, never a failed header
func TestBuildHeader_MissingCells(t *testing.T) {
	h := BuildHeader(RaceCells{}, "HV", 3)

	require.NotNil(t, h)
	assert.Nil(t, h.RaceDate)
	assert.Nil(t, h.Season)
	assert.Nil(t, h.RaceID)
	assert.Nil(t, h.Distance)
	assert.Nil(t, h.DistanceGroup)
	assert.Nil(t, h.GoingType)
	assert.Nil(t, h.Surface)
	assert.Nil(t, h.CourseType)
	assert.Nil(t, h.Class)
	assert.Equal(t, "HV", h.RaceCourse)
	assert.Equal(t, 3, h.RaceNo)
}

// TestBuildHeader_MalformedDate verifies a garbled date cell nulls both
// the date and the season without raising
func TestBuildHeader_MalformedDate(t *testing.T) {
	cells := sampleRaceCells()
	cells.DateText = "sometime in spring"

	h := BuildHeader(cells, "ST", 1)

	assert.Nil(t, h.RaceDate)
	assert.Nil(t, h.Season)
	require.NotNil(t, h.Distance, "other fields are unaffected")
}
