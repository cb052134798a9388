package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racefeed/results"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "races.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(raceNo, horseNumber, placing int) *results.Record {
	date := "04/05/25"
	lbw := "1.5"
	odds := 8.1
	return &results.Record{
		RaceDate:    &date,
		RaceCourse:  "ST",
		RaceNo:      raceNo,
		HorseNumber: &horseNumber,
		Placing:     &placing,
		LBW:         &lbw,
		WinOdds:     &odds,
	}
}

// TestSaveRecords_Roundtrip verifies a saved batch reads back in insert
// order with nil fields preserved as NULL
func TestSaveRecords_Roundtrip(t *testing.T) {
	s := testStore(t)

	batch := []*results.Record{
		testRecord(1, 3, 1),
		testRecord(1, 7, 2),
	}
	require.NoError(t, s.SaveRecords(batch))

	stored, err := s.ListRecords(nil, nil)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	first := stored[0].Record
	assert.Equal(t, "ST", first.RaceCourse)
	assert.Equal(t, 1, first.RaceNo)
	require.NotNil(t, first.HorseNumber)
	assert.Equal(t, 3, *first.HorseNumber)
	require.NotNil(t, first.WinOdds)
	assert.InDelta(t, 8.1, *first.WinOdds, 1e-9)

	assert.Nil(t, first.Season, "unset fields come back nil")
	assert.Nil(t, first.Jockey)
	assert.Nil(t, stored[0].FieldSize, "field size starts unset")

	require.NotNil(t, stored[1].Record.HorseNumber)
	assert.Equal(t, 7, *stored[1].Record.HorseNumber)
}

// TestQueryFieldSize_DateNormalization verifies lookups match regardless
// of the date separator the caller uses
func TestQueryFieldSize_DateNormalization(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveRecords([]*results.Record{testRecord(2, 5, 1)}))

	n, err := s.SetFieldSize(RaceKey{Date: "04/05/25", Course: "ST", RaceNo: 2}, 14)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.QueryFieldSize("04-05-25", "ST", 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 14, *got)

	got, err = s.QueryFieldSize("04/05/25", "ST", 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 14, *got)
}

// TestQueryFieldSize_Unknown verifies an unknown race yields nil, nil
func TestQueryFieldSize_Unknown(t *testing.T) {
	s := testStore(t)

	got, err := s.QueryFieldSize("01-01-25", "HV", 9)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestSetFieldSize_OnlyFillsUnset verifies the update touches only rows
// whose field size is still NULL
func TestSetFieldSize_OnlyFillsUnset(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveRecords([]*results.Record{
		testRecord(3, 1, 1),
		testRecord(3, 2, 2),
	}))

	key := RaceKey{Date: "04/05/25", Course: "ST", RaceNo: 3}
	n, err := s.SetFieldSize(key, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.SetFieldSize(key, 13)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "already-set rows are left alone")

	missing, err := s.RacesMissingFieldSize()
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// TestRacesMissingFieldSize verifies distinct race keys come back for
// rows not yet backfilled
func TestRacesMissingFieldSize(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveRecords([]*results.Record{
		testRecord(1, 1, 1),
		testRecord(1, 2, 2),
		testRecord(4, 6, 1),
	}))

	missing, err := s.RacesMissingFieldSize()
	require.NoError(t, err)
	assert.ElementsMatch(t, []RaceKey{
		{Date: "04/05/25", Course: "ST", RaceNo: 1},
		{Date: "04/05/25", Course: "ST", RaceNo: 4},
	}, missing)
}

// TestListRecords_DateRange verifies the inclusive bounds and that
// undated rows drop out once a bound is set
func TestListRecords_DateRange(t *testing.T) {
	s := testStore(t)

	early := "27/04/25"
	late := "11/05/25"
	num := 1
	require.NoError(t, s.SaveRecords([]*results.Record{
		{RaceDate: &early, RaceCourse: "ST", RaceNo: 1, HorseNumber: &num},
		{RaceDate: &late, RaceCourse: "HV", RaceNo: 1, HorseNumber: &num},
		{RaceCourse: "HV", RaceNo: 2, HorseNumber: &num},
	}))

	all, err := s.ListRecords(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3, "open bounds include undated rows")

	from, err := time.Parse("2006-01-02", "2025-05-01")
	require.NoError(t, err)
	bounded, err := s.ListRecords(&from, nil)
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, late, *bounded[0].Record.RaceDate)

	to, err := time.Parse("2006-01-02", "2025-04-30")
	require.NoError(t, err)
	bounded, err = s.ListRecords(nil, &to)
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, early, *bounded[0].Record.RaceDate)
}

// TestRunLedger verifies a run can be opened and closed with its counts
func TestRunLedger(t *testing.T) {
	s := testStore(t)

	run, err := s.BeginRun()
	require.NoError(t, err)
	require.NotNil(t, run)

	require.NoError(t, s.FinishRun(run.RunID, 22, 281))

	var races, runners int
	var finished *string
	err = s.db.QueryRow(
		"SELECT races_scraped, runners_saved, finished_at FROM scrape_runs WHERE run_id = ?",
		run.RunID.String(),
	).Scan(&races, &runners, &finished)
	require.NoError(t, err)
	assert.Equal(t, 22, races)
	assert.Equal(t, 281, runners)
	assert.NotNil(t, finished)
}
