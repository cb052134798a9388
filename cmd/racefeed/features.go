package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"racefeed/classify"
	"racefeed/config"
	"racefeed/fieldsize"
	"racefeed/store"
)

// featureColumns is the derived-feature export schema: the race/runner key
// plus the geometry and draw features computed from stored records.
var featureColumns = []string{
	"RaceDate", "RaceCourse", "RaceNo", "HorseNumber",
	"Distance", "Surface", "TurnCount", "IsStraight", "IsFractionalTurn",
	"Draw", "DrawGroup", "FieldSize",
}

func handleFeatures(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("features", flag.ExitOnError)
	out := fs.String("out", "features.csv", "Output CSV file")
	from := fs.String("from", "", "Earliest race date to include (YYYY-MM-DD)")
	to := fs.String("to", "", "Latest race date to include (YYYY-MM-DD)")
	fs.Parse(args)

	fromDate, err := parseDateFlag(*from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -from date: %v\n", err)
		os.Exit(1)
	}
	toDate, err := parseDateFlag(*to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -to date: %v\n", err)
		os.Exit(1)
	}

	recordStore, err := store.NewStore(settings.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open record store: %v\n", err)
		os.Exit(1)
	}
	defer recordStore.Close()

	index, err := fieldsize.NewIndex(settings.FieldSizeFile, recordStore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load field size index: %v\n", err)
		os.Exit(1)
	}

	stored, err := recordStore.ListRecords(fromDate, toDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list records: %v\n", err)
		os.Exit(1)
	}
	if len(stored) == 0 {
		fmt.Println("No records stored. Run 'racefeed scrape' first.")
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(featureColumns); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write header: %v\n", err)
		os.Exit(1)
	}

	for _, sr := range stored {
		if err := w.Write(featureRow(sr, index)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write row: %v\n", err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to flush output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote %d feature rows to %s\n", len(stored), *out)
}

// featureRow derives the geometry and draw features for one stored record.
// Every feature degrades to an empty field when its inputs are missing.
func featureRow(sr store.StoredRecord, index *fieldsize.Index) []string {
	r := sr.Record

	row := make([]string, 0, len(featureColumns))
	row = append(row,
		strOrEmpty(r.RaceDate),
		r.RaceCourse,
		strconv.Itoa(r.RaceNo),
		intOrEmpty(r.HorseNumber),
		intOrEmpty(r.Distance),
		strOrEmpty(r.Surface),
	)

	turnCount, isStraight, isFractional := "", "", ""
	if r.Distance != nil && r.Surface != nil {
		if turns := classify.TurnCount(r.RaceCourse, *r.Surface, *r.Distance); turns != nil {
			turnCount = strconv.FormatFloat(*turns, 'g', -1, 64)
			isStraight = strconv.FormatBool(classify.IsStraight(*turns))
			isFractional = strconv.FormatBool(classify.IsFractionalTurn(*turns))
		}
	}
	row = append(row, turnCount, isStraight, isFractional)

	fieldSize := sr.FieldSize
	if fieldSize == nil && r.RaceDate != nil {
		fieldSize = index.Get(*r.RaceDate, r.RaceCourse, r.RaceNo)
	}

	draw, drawGroup := "", ""
	if r.Draw != nil {
		draw = strconv.Itoa(*r.Draw)
		size := 0
		if fieldSize != nil {
			size = *fieldSize
		}
		drawGroup = classify.DrawGroup(*r.Draw, size)
	}
	row = append(row, draw, drawGroup, intOrEmpty(fieldSize))

	return row
}

// parseDateFlag turns an optional YYYY-MM-DD flag into a bound; empty
// means unbounded.
func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
