package results

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoResults marks a page whose body signals that no race took place for
// the requested (date, course, race number). This is a normal terminal
// state for that race, not a failure.
var ErrNoResults = errors.New("no results for race")

// minRowCells is the smallest cell count a structurally complete runner
// row can have on the results table.
const minRowCells = 12

var horseIDPattern = regexp.MustCompile(`HorseId=([^&]+)`)

// ExtractRace pulls the race metadata cells and one RunnerCells per table
// row out of a results page. Structural oddities degrade to empty cell
// text; only an unparsable document or a no-result page is an error.
func ExtractRace(html string) (RaceCells, []RunnerCells, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return RaceCells{}, nil, err
	}
	if strings.Contains(doc.Text(), "No result") {
		return RaceCells{}, nil, ErrNoResults
	}

	race := RaceCells{
		RaceIDText:     doc.Find(`td[colspan="16"]`).First().Text(),
		DateText:       doc.Find("span.f_fl.f_fs13").First().Text(),
		GoingText:      doc.Find(`td[colspan="14"]`).Eq(0).Text(),
		SurfaceText:    doc.Find(`td[colspan="14"]`).Eq(1).Text(),
		ConditionsText: doc.Find(`td[style*="width"]`).First().Text(),
	}

	var runners []RunnerCells
	doc.Find("table.f_tac tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < minRowCells {
			return
		}

		horseLink := cols.Eq(2).Find("a.local").First()
		horseID := ""
		if href, ok := horseLink.Attr("href"); ok {
			if m := horseIDPattern.FindStringSubmatch(href); m != nil {
				horseID = m[1]
			}
		}
		horseName := horseLink.Text()
		if horseName == "" {
			horseName = cols.Eq(2).Text()
		}

		runners = append(runners, RunnerCells{
			PlacingText:      cols.Eq(0).Text(),
			HorseNumberText:  cols.Eq(1).Text(),
			HorseName:        horseName,
			HorseID:          horseID,
			JockeyText:       cols.Eq(3).Text(),
			TrainerText:      cols.Eq(4).Text(),
			ActualWeightText: cols.Eq(5).Text(),
			DeclaredWtText:   cols.Eq(6).Text(),
			DrawText:         cols.Eq(7).Text(),
			MarginText:       cols.Eq(8).Text(),
			RunningPosition:  runningPosition(cols.Eq(9).Text()),
			FinishTimeText:   cols.Eq(10).Text(),
			WinOddsText:      cols.Eq(11).Text(),
		})
	})

	return race, runners, nil
}

// runningPosition drops the leading token of the running position cell,
// which repeats the finishing position before the sectional positions.
func runningPosition(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) <= 1 {
		return raw
	}
	return strings.Join(fields[1:], " ")
}
