package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"racefeed/config"
	"racefeed/fetch"
	"racefeed/results"
	"racefeed/scrape"
	"racefeed/store"
)

func handleScrape(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	from := fs.String("from", "", "First date to scrape (YYYY-MM-DD)")
	to := fs.String("to", "", "Last date to scrape (YYYY-MM-DD, default: same as -from)")
	outDir := fs.String("out", settings.OutputDir, "CSV export directory")
	fs.Parse(args)

	if *from == "" {
		fmt.Fprintf(os.Stderr, "Error: -from is required\n")
		fs.Usage()
		os.Exit(1)
	}
	fromDate, err := time.Parse("2006-01-02", *from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -from date: %v\n", err)
		os.Exit(1)
	}
	toDate := fromDate
	if *to != "" {
		toDate, err = time.Parse("2006-01-02", *to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -to date: %v\n", err)
			os.Exit(1)
		}
	}
	if toDate.Before(fromDate) {
		fmt.Fprintf(os.Stderr, "Error: -to date is before -from date\n")
		os.Exit(1)
	}

	recordStore, err := store.NewStore(settings.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open record store: %v\n", err)
		os.Exit(1)
	}
	defer recordStore.Close()

	client := fetch.NewClient(fetch.Config{
		BaseURL:     settings.BaseURL,
		Pause:       time.Duration(settings.PauseSeconds) * time.Second,
		MaxAttempts: settings.MaxAttempts,
	})
	service := scrape.NewService(client)

	run, err := recordStore.BeginRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to record run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scrape run %s\n", run.RunID)

	totalRaces := 0
	totalRunners := 0
	var sample []*results.Record

	for date := fromDate; !date.After(toDate); date = date.AddDate(0, 0, 1) {
		result := service.ScrapeDate(date, settings.Courses, settings.RacesPerCourse)
		if len(result.Records) == 0 {
			continue
		}

		csvPath := filepath.Join(*outDir, fmt.Sprintf("races_%s.csv", date.Format("2006_01_02")))
		if err := results.ExportCSV(csvPath, result.Records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to export CSV for %s: %v\n", date.Format("2006-01-02"), err)
			os.Exit(1)
		}
		if err := recordStore.SaveRecords(result.Records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save records for %s: %v\n", date.Format("2006-01-02"), err)
			os.Exit(1)
		}

		fmt.Printf("✓ %s: %d races, %d runners -> %s\n",
			date.Format("02/01/06"), result.RacesFound, len(result.Records), csvPath)

		totalRaces += result.RacesFound
		totalRunners += len(result.Records)
		if sample == nil {
			sample = result.Records
		}
	}

	if err := recordStore.FinishRun(run.RunID, totalRaces, totalRunners); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to finish run ledger entry: %v\n", err)
	}

	if totalRunners == 0 {
		fmt.Println("No results collected.")
		return
	}

	fmt.Println()
	fmt.Printf("Scraped %d races, %d runners\n", totalRaces, totalRunners)
	printSample(sample)
}

// printSample renders the first few records so a run can be eyeballed.
func printSample(records []*results.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", "Course", "Race", "Horse", "Placing", "LBW", "Time"})

	n := min(len(records), 3)
	for _, r := range records[:n] {
		t.AppendRow(table.Row{
			deref(r.RaceDate), r.RaceCourse, r.RaceNo,
			deref(r.HorseName), derefInt(r.Placing), deref(r.LBW),
			derefFloat(r.FinishTime),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}

func derefFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}
