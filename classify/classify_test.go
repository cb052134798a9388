package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGoing_TurfTable verifies turf going abbreviations
func TestGoing_TurfTable(t *testing.T) {
	g := Going("GOOD TO FIRM", SurfaceTurf)
	require.NotNil(t, g)
	assert.Equal(t, "GF", *g)

	g = Going("good", SurfaceTurf)
	require.NotNil(t, g)
	assert.Equal(t, "G", *g)
}

// TestGoing_AWTTable verifies the all-weather table is disjoint from turf
func TestGoing_AWTTable(t *testing.T) {
	g := Going("GOOD", SurfaceAWT)
	require.NotNil(t, g)
	assert.Equal(t, "GD", *g)

	g = Going("WET SLOW", SurfaceAWT)
	require.NotNil(t, g)
	assert.Equal(t, "WS", *g)
}

// TestGoing_Passthrough verifies unmapped going text survives unmodified
func TestGoing_Passthrough(t *testing.T) {
	g := Going("Muddy", SurfaceTurf)
	require.NotNil(t, g)
	assert.Equal(t, "Muddy", *g)
}

// TestGoing_Empty verifies empty going text yields nil
func TestGoing_Empty(t *testing.T) {
	assert.Nil(t, Going("", SurfaceTurf))
}

// TestSeason_Rollover verifies the meet year rolls over in September
func TestSeason_Rollover(t *testing.T) {
	assert.Equal(t, "24/25", Season(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "24/25", Season(time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "23/24", Season(time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)))
}

// TestDistanceGroup_ShaTinTurf verifies the turf threshold ladder
func TestDistanceGroup_ShaTinTurf(t *testing.T) {
	assert.Equal(t, "Sprint", DistanceGroup("ST", SurfaceTurf, 1000))
	assert.Equal(t, "Short", DistanceGroup("ST", SurfaceTurf, 1400))
	assert.Equal(t, "Mid", DistanceGroup("ST", SurfaceTurf, 1600))
	assert.Equal(t, "Long", DistanceGroup("ST", SurfaceTurf, 2000))
	assert.Equal(t, "Endurance", DistanceGroup("ST", SurfaceTurf, 2400))
}

// TestDistanceGroup_ShaTinAWT verifies the all-weather ladder, including
// the Sprint bucket at 1000 and under
func TestDistanceGroup_ShaTinAWT(t *testing.T) {
	assert.Equal(t, "Sprint", DistanceGroup("ST", SurfaceAWT, 1000))
	assert.Equal(t, "Short", DistanceGroup("ST", SurfaceAWT, 1200))
	assert.Equal(t, "Mid", DistanceGroup("ST", SurfaceAWT, 1650))
	assert.Equal(t, "Long", DistanceGroup("ST", SurfaceAWT, 2000))
	assert.Equal(t, "Endurance", DistanceGroup("ST", SurfaceAWT, 2200))
}

// TestDistanceGroup_HappyValley verifies the Happy Valley ladder
func TestDistanceGroup_HappyValley(t *testing.T) {
	assert.Equal(t, "Sprint", DistanceGroup("HV", SurfaceTurf, 1000))
	assert.Equal(t, "Short", DistanceGroup("HV", SurfaceTurf, 1200))
	assert.Equal(t, "Long", DistanceGroup("HV", SurfaceTurf, 2200))
}

// TestDistanceGroup_UnknownVenue verifies venues outside ST/HV are Unknown
func TestDistanceGroup_UnknownVenue(t *testing.T) {
	assert.Equal(t, "Unknown", DistanceGroup("CH", SurfaceTurf, 1200))
	assert.Equal(t, "Unknown", DistanceGroup("", SurfaceTurf, 1200))
}

// TestDrawGroup_Bands verifies the five fixed draw bands
func TestDrawGroup_Bands(t *testing.T) {
	assert.Equal(t, "Inner", DrawGroup(1, 14))
	assert.Equal(t, "Inner", DrawGroup(3, 14))
	assert.Equal(t, "InnerMid", DrawGroup(4, 14))
	assert.Equal(t, "Mid", DrawGroup(9, 14))
	assert.Equal(t, "OuterMid", DrawGroup(12, 14))
	assert.Equal(t, "Outer", DrawGroup(13, 14))
}

// TestDrawGroup_IgnoresFieldSize verifies the band is independent of
// field size
func TestDrawGroup_IgnoresFieldSize(t *testing.T) {
	assert.Equal(t, DrawGroup(5, 6), DrawGroup(5, 20))
	assert.Equal(t, "InnerMid", DrawGroup(5, 6))
}

// TestClassChange_Directions verifies the three-way comparison and the
// unknown case
func TestClassChange_Directions(t *testing.T) {
	assert.Equal(t, "UP", ClassChange("4", "3"))
	assert.Equal(t, "DOWN", ClassChange("3", "4"))
	assert.Equal(t, "SAME", ClassChange("4", "4"))
	assert.Equal(t, "UNKNOWN", ClassChange("", "4"))
	assert.Equal(t, "UNKNOWN", ClassChange("4", "G1"))
}
