package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Class short-codes. Griffin and Restricted are detected as overlays on top
// of the primary category but, when present, override the short-code.
const (
	ClassStandard   = "STD"
	ClassGriffin    = "GRF"
	ClassGroup      = "GRP"
	ClassRestricted = "RST"
	ClassAge        = "AGE"
)

// GriffinLevel is the fixed class level assigned to griffin races, which
// carry no explicit class number on the results page.
const GriffinLevel = 6

// ClassFeatures is the fully resolved class-feature group for one race.
// Group and Age promote their counter (group number, age in years) into
// Level and repurpose the original counter field as a binary flag.
type ClassFeatures struct {
	Type       string // short-code: STD, GRF, GRP, RST, AGE
	Level      int
	Group      int // binary flag once promoted
	Restricted int
	Year       int // binary flag once promoted
	Griffin    int
	Category   string // composite "<Type>_<Level>"
	Label      string // human-readable class label
	ML         int    // machine-readable numeric label
	Grade      *int   // group race grade 1-3, nil otherwise
}

var (
	classNumber = regexp.MustCompile(`class (\d+)`)
	yearNumber  = regexp.MustCompile(`(\d+) year`)
)

// groupWords maps the embedded word-number of a group race to its grade.
var groupWords = []struct {
	word  string
	grade int
}{
	{"one", 1},
	{"two", 2},
	{"three", 3},
}

// RaceClass classifies a free-text class label into the five-way class
// encoding. The primary category is one of group / numbered class / age /
// standard; griffin and restricted are independent overlays that override
// the short-code when set (griffin winning over restricted). Total: any
// text, including empty, yields a fully populated ClassFeatures.
func RaceClass(label string) ClassFeatures {
	f := ClassFeatures{Type: ClassStandard}
	text := strings.ToLower(strings.TrimSpace(label))

	f.Restricted = boolFlag(strings.Contains(text, "restricted"))
	f.Griffin = boolFlag(strings.Contains(text, "griffin"))

	switch {
	case strings.Contains(text, "group"):
		f.Type = ClassGroup
		for _, w := range groupWords {
			if strings.Contains(text, w.word) {
				grade := w.grade
				f.Grade = &grade
				f.Group = w.grade
				break
			}
		}
	default:
		if m := classNumber.FindStringSubmatch(text); m != nil {
			f.Level, _ = strconv.Atoi(m[1])
		} else if m := yearNumber.FindStringSubmatch(text); m != nil {
			f.Type = ClassAge
			f.Year, _ = strconv.Atoi(m[1])
		}
	}

	// Overlay overrides. Griffin races always classify as GRF with the
	// fixed level, no matter what else the label says.
	if f.Griffin == 1 {
		f.Type = ClassGriffin
		f.Level = GriffinLevel
	} else if f.Restricted == 1 {
		f.Type = ClassRestricted
	}

	// Promote the category counter into Level and leave a binary flag in
	// its place.
	switch f.Type {
	case ClassGroup:
		f.Level = f.Group
		f.Group = 1
	case ClassAge:
		f.Level = f.Year
		f.Year = 1
	}

	f.Category = fmt.Sprintf("%s_%d", f.Type, f.Level)
	f.Label, f.ML = classLabels(f.Type, f.Level)
	return f
}

// classLabels derives the human-readable label and the numeric ML label for
// a resolved class type and level.
func classLabels(classType string, level int) (string, int) {
	switch classType {
	case ClassGroup:
		return fmt.Sprintf("G%d", level), level
	case ClassAge:
		return fmt.Sprintf("%dYO", level), level
	case ClassGriffin:
		return "GRIFFIN", GriffinLevel
	case ClassRestricted:
		return fmt.Sprintf("%dR", level), level
	default:
		return strconv.Itoa(level), level
	}
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
