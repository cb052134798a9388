// Package scrape drives the per-meeting collection loop: every race of
// every configured course for a date is fetched, extracted and assembled
// into canonical records. Failures are unit-of-work scoped -- one race's
// error is logged and the loop continues with the next race.
package scrape

import (
	"errors"
	"log"
	"time"

	"racefeed/fetch"
	"racefeed/results"
)

// Service runs the synchronous scrape loop. No concurrency: the site is
// rate-limited by the fetch client's fixed pause.
type Service struct {
	client *fetch.Client
}

// DateResult is the outcome of scraping one date across all courses.
type DateResult struct {
	Records     []*results.Record
	RacesFound  int
	RacesFailed int
	RacesEmpty  int
}

// NewService creates a scrape service over the given page client.
func NewService(client *fetch.Client) *Service {
	return &Service{client: client}
}

// ScrapeDate collects every race of the given courses for one date. A
// winner-margin override pass runs over the collected rows before they are
// returned, so the sentinel holds column-wide as well as per row.
func (s *Service) ScrapeDate(date time.Time, courses []string, racesPerCourse int) *DateResult {
	result := &DateResult{}

	for _, course := range courses {
		for raceNo := 1; raceNo <= racesPerCourse; raceNo++ {
			records, err := s.scrapeRace(date, course, raceNo)
			if errors.Is(err, results.ErrNoResults) {
				// Normal terminal state: the meeting had fewer races, or
				// none at all at this course.
				result.RacesEmpty++
				continue
			}
			if err != nil {
				log.Printf("ERROR: failed %s R%d on %s: %v", course, raceNo, date.Format("02/01/06"), err)
				result.RacesFailed++
				continue
			}
			if len(records) == 0 {
				result.RacesEmpty++
				continue
			}

			log.Printf("INFO: %s %s R%d: %d runners", date.Format("02/01/06"), course, raceNo, len(records))
			result.Records = append(result.Records, records...)
			result.RacesFound++
		}
	}

	results.ApplyWinnerMargins(result.Records)
	return result
}

// scrapeRace fetches and assembles one race. Rows that fail structurally
// are skipped; the race itself fails only if the page cannot be fetched or
// parsed at all.
func (s *Service) scrapeRace(date time.Time, course string, raceNo int) ([]*results.Record, error) {
	html, err := s.client.RacePage(date, course, raceNo)
	if err != nil {
		return nil, err
	}

	race, runners, err := results.ExtractRace(html)
	if err != nil {
		return nil, err
	}

	header := results.BuildHeader(race, course, raceNo)

	var records []*results.Record
	for _, cells := range runners {
		record := results.BuildRecord(header, cells)
		if record == nil {
			// Identity cell absent or non-numeric: not a runner row.
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
