package results

import (
	"regexp"
	"strings"

	"racefeed/classify"
	"racefeed/parse"
)

// courseTypeAbbrev maps the rail/lane configuration text on the results
// page to its short form.
var courseTypeAbbrev = map[string]string{
	`"A" Course`:        "A",
	`"A+2" Course`:      "A+2",
	`"A+3" Course`:      "A+3",
	`"B" Course`:        "B",
	`"B+2" Course`:      "B+2",
	`"C" Course`:        "C",
	`"C+3" Course`:      "C+3",
	"ALL WEATHER TRACK": "AWT",
}

var raceIDPattern = regexp.MustCompile(`\((\d+)\)`)

// BuildHeader assembles the race-scoped header from the race's metadata
// cells. Construction is total: any missing or unparsable cell yields a
// nil field, never an aborted header.
func BuildHeader(cells RaceCells, course string, raceNo int) *Header {
	h := &Header{
		RaceCourse: course,
		RaceNo:     raceNo,
	}

	if m := raceIDPattern.FindStringSubmatch(parse.CleanText(cells.RaceIDText)); m != nil {
		h.RaceID = &m[1]
	}

	h.RaceDate = parse.Date(cells.DateText)
	if h.RaceDate != nil {
		if t := parse.DateValue(*h.RaceDate); t != nil {
			season := classify.Season(*t)
			h.Season = &season
		}
	}

	h.Surface, h.CourseType = splitSurface(cells.SurfaceText)
	h.Distance = parse.Distance(cells.ConditionsText)
	if h.Distance != nil {
		group := classify.DistanceGroup(course, surfaceFamily(h.Surface), *h.Distance)
		h.DistanceGroup = &group
	}

	going := parse.CleanText(cells.GoingText)
	h.GoingType = classify.Going(going, surfaceFamily(h.Surface))

	if label := parse.CleanText(cells.ConditionsText); label != "" {
		class := classify.RaceClass(label)
		h.Class = &class
	}

	return h
}

// splitSurface splits the surface cell into the surface family (TURF or
// AWT) and the course configuration in effect for the meeting. The
// all-weather track carries no rail variant, so both sides collapse to AWT.
func splitSurface(raw string) (surface, courseType *string) {
	text := parse.CleanText(raw)
	if text == "" {
		return nil, nil
	}
	if strings.Contains(strings.ToUpper(text), "ALL WEATHER TRACK") {
		awt := classify.SurfaceAWT
		return &awt, &awt
	}
	parts := strings.SplitN(text, "-", 2)
	if len(parts) < 2 {
		return nil, nil
	}
	turf := classify.SurfaceTurf
	config := parse.CleanText(parts[1])
	if abbrev, ok := courseTypeAbbrev[config]; ok {
		config = abbrev
	}
	return &turf, &config
}

func surfaceFamily(surface *string) string {
	if surface == nil {
		return classify.SurfaceTurf
	}
	return *surface
}
