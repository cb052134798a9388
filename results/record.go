// Package results assembles canonical race-result records from the raw
// cells of one results page: a race-scoped header built once per race and
// one flat record per runner, merged from the header and the runner's row.
package results

import (
	"strconv"

	"racefeed/classify"
)

// Columns is the fixed, ordered column set of the canonical schema. Every
// emitted record carries every column; nil fields serialize as empty.
var Columns = []string{
	"RaceDate", "Season", "RaceCourse", "RaceNo", "RaceID",
	"Distance", "DistanceGroup", "GoingType", "Surface", "CourseType",
	"ClassType", "Class", "ClassML", "ClassGriffin", "ClassGroup",
	"ClassRestricted", "ClassYear", "ClassCategory",
	"HorseNumber", "HorseID", "HorseName", "Jockey", "Trainer",
	"ActualWeight", "DeclaredHorseWeight", "Draw", "LBW",
	"RunningPosition", "FinishTime", "WinOdds", "Placing", "RaceGrade",
}

// Record is one canonical row per (race, runner). Every field that can be
// missing upstream is a pointer; nil means the raw cell was absent or
// unparsable. The only non-null special cases are the winner's LBW
// sentinel and the fixed griffin class level.
type Record struct {
	RaceDate      *string
	Season        *string
	RaceCourse    string
	RaceNo        int
	RaceID        *string
	Distance      *int
	DistanceGroup *string
	GoingType     *string
	Surface       *string
	CourseType    *string

	ClassType       *string
	Class           *string
	ClassML         *int
	ClassGriffin    *int
	ClassGroup      *int
	ClassRestricted *int
	ClassYear       *int
	ClassCategory   *string

	HorseNumber         *int
	HorseID             *string
	HorseName           *string
	Jockey              *string
	Trainer             *string
	ActualWeight        *int
	DeclaredHorseWeight *int
	Draw                *int
	LBW                 *string
	RunningPosition     *string
	FinishTime          *float64
	WinOdds             *float64
	Placing             *int
	RaceGrade           *int
}

// Header is the race-scoped aggregate shared by every runner in one race.
// It is built once from the race's metadata cells and is immutable
// afterward. Class is nil when the class cell was missing entirely.
type Header struct {
	RaceDate      *string
	Season        *string
	RaceCourse    string
	RaceNo        int
	RaceID        *string
	Distance      *int
	DistanceGroup *string
	GoingType     *string
	Surface       *string
	CourseType    *string
	Class         *classify.ClassFeatures
}

// Fields returns the record's values in Columns order as CSV-ready text.
func (r *Record) Fields() []string {
	return []string{
		strText(r.RaceDate),
		strText(r.Season),
		r.RaceCourse,
		strconv.Itoa(r.RaceNo),
		strText(r.RaceID),
		intText(r.Distance),
		strText(r.DistanceGroup),
		strText(r.GoingType),
		strText(r.Surface),
		strText(r.CourseType),
		strText(r.ClassType),
		strText(r.Class),
		intText(r.ClassML),
		intText(r.ClassGriffin),
		intText(r.ClassGroup),
		intText(r.ClassRestricted),
		intText(r.ClassYear),
		strText(r.ClassCategory),
		intText(r.HorseNumber),
		strText(r.HorseID),
		strText(r.HorseName),
		strText(r.Jockey),
		strText(r.Trainer),
		intText(r.ActualWeight),
		intText(r.DeclaredHorseWeight),
		intText(r.Draw),
		strText(r.LBW),
		strText(r.RunningPosition),
		floatText(r.FinishTime),
		floatText(r.WinOdds),
		intText(r.Placing),
		intText(r.RaceGrade),
	}
}

func strText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intText(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatText(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
