// Package classify holds the table-driven categorical mappers applied to
// normalized race scalars: going abbreviations, season codes, distance
// groups, turn counts, draw groups and class-change direction. All mappers
// are pure lookups over fixed tables; closed-vocabulary domains return a
// documented "Unknown" value rather than nil.
package classify

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Racecourse codes for the two venues that appear in results.
const (
	CourseShaTin      = "ST"
	CourseHappyValley = "HV"
)

// Surface families.
const (
	SurfaceTurf = "TURF"
	SurfaceAWT  = "AWT"
)

// turfGoing and awtGoing are the disjoint abbreviation tables for the two
// surface families. Going text outside the tables passes through unchanged.
var turfGoing = map[string]string{
	"GOOD TO FIRM":     "GF",
	"GOOD":             "G",
	"GOOD TO YIELDING": "GY",
	"YIELDING":         "Y",
	"YIELDING TO SOFT": "YS",
	"SOFT":             "S",
	"FIRM":             "F",
	"HEAVY":            "H",
}

var awtGoing = map[string]string{
	"GOOD":     "GD",
	"WET SLOW": "WS",
	"SEALED":   "SE",
	"WET FAST": "WF",
	"FAST":     "FT",
	"SLOW":     "SL",
}

// Going abbreviates a going description for the given surface family.
// Unmapped text is returned as-is; empty text yields nil.
func Going(going string, surface string) *string {
	if going == "" {
		return nil
	}
	key := strings.ToUpper(strings.TrimSpace(going))
	table := turfGoing
	if surface == SurfaceAWT {
		table = awtGoing
	}
	if abbrev, ok := table[key]; ok {
		return &abbrev
	}
	return &going
}

// Season derives the two-part season code for a race date. The racing year
// rolls over at the start of September, so a September 2024 meeting and a
// June 2025 meeting both fall in "24/25".
func Season(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.September {
		return fmt.Sprintf("%02d/%02d", year%100, (year+1)%100)
	}
	return fmt.Sprintf("%02d/%02d", (year-1)%100, year%100)
}

// DistanceGroup buckets a race distance into one of five ordinal groups for
// the given venue and surface family. Each venue/surface combination has its
// own threshold ladder; anything outside the two known venues is "Unknown".
func DistanceGroup(course, surface string, distance int) string {
	course = strings.ToUpper(strings.TrimSpace(course))
	surface = strings.ToUpper(strings.TrimSpace(surface))

	switch course {
	case CourseShaTin:
		if surface == SurfaceAWT {
			switch {
			case distance <= 1000:
				return "Sprint"
			case distance <= 1200:
				return "Short"
			case distance <= 1650:
				return "Mid"
			case distance <= 2000:
				return "Long"
			default:
				return "Endurance"
			}
		}
		switch {
		case distance <= 1000:
			return "Sprint"
		case distance <= 1400:
			return "Short"
		case distance <= 1800:
			return "Mid"
		case distance <= 2200:
			return "Long"
		default:
			return "Endurance"
		}
	case CourseHappyValley:
		switch {
		case distance <= 1000:
			return "Sprint"
		case distance <= 1200:
			return "Short"
		case distance <= 1800:
			return "Mid"
		case distance <= 2200:
			return "Long"
		default:
			return "Endurance"
		}
	}
	return "Unknown"
}

// DrawGroup buckets a barrier draw into five fixed bands. The fieldSize
// parameter is accepted for interface compatibility with earlier
// field-size-relative grouping but is not consulted.
func DrawGroup(draw int, fieldSize int) string {
	_ = fieldSize
	switch {
	case draw <= 3:
		return "Inner"
	case draw <= 6:
		return "InnerMid"
	case draw <= 9:
		return "Mid"
	case draw <= 12:
		return "OuterMid"
	default:
		return "Outer"
	}
}

// ClassChange compares two numeric class levels and reports the direction
// of movement. A lower class number is a higher grade, so a drop in the
// number is "UP". Either side failing to parse yields "UNKNOWN".
func ClassChange(previous, current string) string {
	prev, errPrev := strconv.Atoi(strings.TrimSpace(previous))
	curr, errCurr := strconv.Atoi(strings.TrimSpace(current))
	if errPrev != nil || errCurr != nil {
		return "UNKNOWN"
	}
	switch {
	case curr < prev:
		return "UP"
	case curr > prev:
		return "DOWN"
	default:
		return "SAME"
	}
}
