package results

import (
	"racefeed/parse"
)

// BuildRecord merges the race header with one runner's raw cells into a
// canonical record. Rows whose horse number cell is absent or non-numeric
// identify nothing and are skipped: the return is nil, not an error.
func BuildRecord(h *Header, cells RunnerCells) *Record {
	horseNumber := parse.Int(cells.HorseNumberText)
	if horseNumber == nil {
		return nil
	}

	r := &Record{
		RaceDate:      h.RaceDate,
		Season:        h.Season,
		RaceCourse:    h.RaceCourse,
		RaceNo:        h.RaceNo,
		RaceID:        h.RaceID,
		Distance:      h.Distance,
		DistanceGroup: h.DistanceGroup,
		GoingType:     h.GoingType,
		Surface:       h.Surface,
		CourseType:    h.CourseType,
	}

	if h.Class != nil {
		r.ClassType = strPtr(h.Class.Type)
		r.Class = strPtr(h.Class.Label)
		r.ClassML = intPtr(h.Class.ML)
		r.ClassGriffin = intPtr(h.Class.Griffin)
		r.ClassGroup = intPtr(h.Class.Group)
		r.ClassRestricted = intPtr(h.Class.Restricted)
		r.ClassYear = intPtr(h.Class.Year)
		r.ClassCategory = strPtr(h.Class.Category)
		r.RaceGrade = h.Class.Grade
	}

	r.Placing = parse.Int(cells.PlacingText)
	r.HorseNumber = horseNumber
	r.HorseID = textPtr(cells.HorseID)
	r.HorseName = textPtr(cells.HorseName)
	r.Jockey = textPtr(cells.JockeyText)
	r.Trainer = textPtr(cells.TrainerText)
	r.ActualWeight = parse.Weight(cells.ActualWeightText)
	r.DeclaredHorseWeight = parse.Weight(cells.DeclaredWtText)
	r.Draw = parse.Int(cells.DrawText)
	r.LBW = parse.Margin(cells.MarginText, r.Placing)
	r.RunningPosition = textPtr(cells.RunningPosition)
	r.FinishTime = parse.FinishTime(cells.FinishTimeText)
	r.WinOdds = parse.Float(cells.WinOddsText)

	return r
}

// ApplyWinnerMargins is the batch-wide pass forcing the winner's LBW to
// the fixed sentinel after a date range has been collected. Margin parsing
// already applies the same rule per row; this pass is the column-wide
// backstop and the two must agree.
func ApplyWinnerMargins(records []*Record) {
	for _, r := range records {
		if r.Placing != nil && *r.Placing == 1 {
			sentinel := parse.WinnerMargin
			r.LBW = &sentinel
		}
	}
}

// textPtr cleans a raw cell and returns nil for placeholder values.
func textPtr(raw string) *string {
	text := parse.CleanText(raw)
	if text == "" {
		return nil
	}
	return &text
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
