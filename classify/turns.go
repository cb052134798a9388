package classify

import "strings"

type turnKey struct {
	course   string
	surface  string
	distance int
}

// turnTable enumerates the number of bends on the racing line for every
// venue/surface/distance combination that actually occurs. Half values are
// partial turns (a start inside a bend). Happy Valley has no all-weather
// track, so only turf rows exist for it; combinations outside the table do
// not race and are never interpolated.
var turnTable = map[turnKey]float64{
	// Sha Tin turf. The 1000m course is the straight.
	{CourseShaTin, SurfaceTurf, 1000}: 0,
	{CourseShaTin, SurfaceTurf, 1200}: 1,
	{CourseShaTin, SurfaceTurf, 1400}: 1.5,
	{CourseShaTin, SurfaceTurf, 1600}: 2,
	{CourseShaTin, SurfaceTurf, 1800}: 2.5,
	{CourseShaTin, SurfaceTurf, 2000}: 3,
	{CourseShaTin, SurfaceTurf, 2200}: 3.5,
	{CourseShaTin, SurfaceTurf, 2400}: 4,

	// Sha Tin all-weather.
	{CourseShaTin, SurfaceAWT, 1200}: 1,
	{CourseShaTin, SurfaceAWT, 1650}: 2,
	{CourseShaTin, SurfaceAWT, 1800}: 2.5,
	{CourseShaTin, SurfaceAWT, 2000}: 3,

	// Happy Valley turf.
	{CourseHappyValley, SurfaceTurf, 1000}: 1,
	{CourseHappyValley, SurfaceTurf, 1200}: 1.5,
	{CourseHappyValley, SurfaceTurf, 1650}: 2.5,
	{CourseHappyValley, SurfaceTurf, 1800}: 3,
	{CourseHappyValley, SurfaceTurf, 2200}: 3.5,
	{CourseHappyValley, SurfaceTurf, 2400}: 4,
}

// TurnCount looks up the number of bends for a venue, surface family and
// distance. Happy Valley collapses any surface input to turf. Combinations
// absent from the table return nil rather than an estimate.
func TurnCount(course, surface string, distance int) *float64 {
	course = strings.ToUpper(strings.TrimSpace(course))
	surface = strings.ToUpper(strings.TrimSpace(surface))
	if course == CourseHappyValley {
		surface = SurfaceTurf
	}
	if turns, ok := turnTable[turnKey{course, surface, distance}]; ok {
		return &turns
	}
	return nil
}

// IsStraight reports whether a turn count describes a straight course.
func IsStraight(turns float64) bool {
	return turns == 0
}

// IsFractionalTurn reports whether a turn count includes a partial bend.
func IsFractionalTurn(turns float64) bool {
	return turns != float64(int(turns))
}
