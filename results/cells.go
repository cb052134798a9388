package results

// RaceCells carries the raw metadata cell text for one race, produced at
// the extraction boundary. A missing cell is an empty string; assembly
// turns it into a nil header field rather than failing.
type RaceCells struct {
	RaceIDText     string // header banner, e.g. `RACE 1 (828)`
	DateText       string // free text containing a D/M/Y date
	GoingText      string // going description
	SurfaceText    string // e.g. `Turf - "A+3" Course` or `ALL WEATHER TRACK`
	ConditionsText string // class and distance, e.g. `Class 4 - 1400M - (60-40)`
}

// RunnerCells carries the raw row cell text for one runner. Positional
// table indexing stops at the extraction boundary; everything downstream
// reads named fields.
type RunnerCells struct {
	PlacingText      string
	HorseNumberText  string
	HorseName        string
	HorseID          string // from the horse link href, already isolated
	JockeyText       string
	TrainerText      string
	ActualWeightText string
	DeclaredWtText   string
	DrawText         string
	MarginText       string
	RunningPosition  string
	FinishTimeText   string
	WinOddsText      string
}
