// Package store is the SQLite persisted store for canonical race records:
// the batch sink for scraped rows, the fallback source for field-size
// lookups and the target of the field-size backfill job.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"racefeed/parse"
	"racefeed/results"
)

// Store wraps the SQLite database holding race records and the scrape-run
// ledger.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at the given path and ensures
// the schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS race_records (
		race_date TEXT,
		season TEXT,
		race_course TEXT NOT NULL,
		race_no INTEGER NOT NULL,
		race_id TEXT,
		distance INTEGER,
		distance_group TEXT,
		going_type TEXT,
		surface TEXT,
		course_type TEXT,
		class_type TEXT,
		class TEXT,
		class_ml INTEGER,
		class_griffin INTEGER,
		class_group INTEGER,
		class_restricted INTEGER,
		class_year INTEGER,
		class_category TEXT,
		horse_number INTEGER,
		horse_id TEXT,
		horse_name TEXT,
		jockey TEXT,
		trainer TEXT,
		actual_weight INTEGER,
		declared_horse_weight INTEGER,
		draw INTEGER,
		lbw TEXT,
		running_position TEXT,
		finish_time REAL,
		win_odds REAL,
		placing INTEGER,
		race_grade INTEGER,
		field_size INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_race_records_race
		ON race_records (race_date, race_course, race_no);

	CREATE TABLE IF NOT EXISTS scrape_runs (
		run_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		races_scraped INTEGER DEFAULT 0,
		runners_saved INTEGER DEFAULT 0
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecords inserts a batch of canonical records inside one transaction.
func (s *Store) SaveRecords(records []*results.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO race_records (
			race_date, season, race_course, race_no, race_id,
			distance, distance_group, going_type, surface, course_type,
			class_type, class, class_ml, class_griffin, class_group,
			class_restricted, class_year, class_category,
			horse_number, horse_id, horse_name, jockey, trainer,
			actual_weight, declared_horse_weight, draw, lbw,
			running_position, finish_time, win_odds, placing, race_grade
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.RaceDate, r.Season, r.RaceCourse, r.RaceNo, r.RaceID,
			r.Distance, r.DistanceGroup, r.GoingType, r.Surface, r.CourseType,
			r.ClassType, r.Class, r.ClassML, r.ClassGriffin, r.ClassGroup,
			r.ClassRestricted, r.ClassYear, r.ClassCategory,
			r.HorseNumber, r.HorseID, r.HorseName, r.Jockey, r.Trainer,
			r.ActualWeight, r.DeclaredHorseWeight, r.Draw, r.LBW,
			r.RunningPosition, r.FinishTime, r.WinOdds, r.Placing, r.RaceGrade,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// QueryFieldSize returns at most one field-size value for a race. Date
// separators are normalized "/"->"-" on both sides of the comparison, so
// callers may pass either form. A race with no recorded field size yields
// nil, not an error.
func (s *Store) QueryFieldSize(date, course string, raceNo int) (*int, error) {
	query := `
		SELECT field_size FROM race_records
		WHERE replace(race_date, '/', '-') = ? AND race_course = ? AND race_no = ?
			AND field_size IS NOT NULL
		LIMIT 1
	`

	var fieldSize int
	err := s.db.QueryRow(query, strings.ReplaceAll(date, "/", "-"), course, raceNo).Scan(&fieldSize)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query field size: %w", err)
	}
	return &fieldSize, nil
}

// RaceKey identifies one race in the store.
type RaceKey struct {
	Date   string
	Course string
	RaceNo int
}

// RacesMissingFieldSize lists the distinct races whose rows have no field
// size set. Used by the backfill batch job.
func (s *Store) RacesMissingFieldSize() ([]RaceKey, error) {
	query := `
		SELECT DISTINCT race_date, race_course, race_no FROM race_records
		WHERE field_size IS NULL AND race_date IS NOT NULL
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list races: %w", err)
	}
	defer rows.Close()

	var keys []RaceKey
	for rows.Next() {
		var k RaceKey
		if err := rows.Scan(&k.Date, &k.Course, &k.RaceNo); err != nil {
			return nil, fmt.Errorf("failed to scan race key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// SetFieldSize bulk-updates the field size for every row of one race that
// currently has it unset. Returns the number of rows updated.
func (s *Store) SetFieldSize(key RaceKey, fieldSize int) (int, error) {
	query := `
		UPDATE race_records SET field_size = ?
		WHERE race_date = ? AND race_course = ? AND race_no = ?
			AND field_size IS NULL
	`

	res, err := s.db.Exec(query, fieldSize, key.Date, key.Course, key.RaceNo)
	if err != nil {
		return 0, fmt.Errorf("failed to set field size: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// StoredRecord is a canonical record read back from the store, together
// with its persisted field size (nil when never backfilled).
type StoredRecord struct {
	Record    *results.Record
	FieldSize *int
}

// ListRecords returns stored records in insert order, optionally bounded
// by an inclusive race-date range. Nil bounds are open; when a bound is
// set, records whose date is missing or unparsable are excluded.
func (s *Store) ListRecords(from, to *time.Time) ([]StoredRecord, error) {
	query := `
		SELECT race_date, season, race_course, race_no, race_id,
			distance, distance_group, going_type, surface, course_type,
			class_type, class, class_ml, class_griffin, class_group,
			class_restricted, class_year, class_category,
			horse_number, horse_id, horse_name, jockey, trainer,
			actual_weight, declared_horse_weight, draw, lbw,
			running_position, finish_time, win_odds, placing, race_grade,
			field_size
		FROM race_records ORDER BY rowid
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var stored []StoredRecord
	for rows.Next() {
		var r results.Record
		var sr StoredRecord
		err := rows.Scan(
			&r.RaceDate, &r.Season, &r.RaceCourse, &r.RaceNo, &r.RaceID,
			&r.Distance, &r.DistanceGroup, &r.GoingType, &r.Surface, &r.CourseType,
			&r.ClassType, &r.Class, &r.ClassML, &r.ClassGriffin, &r.ClassGroup,
			&r.ClassRestricted, &r.ClassYear, &r.ClassCategory,
			&r.HorseNumber, &r.HorseID, &r.HorseName, &r.Jockey, &r.Trainer,
			&r.ActualWeight, &r.DeclaredHorseWeight, &r.Draw, &r.LBW,
			&r.RunningPosition, &r.FinishTime, &r.WinOdds, &r.Placing, &r.RaceGrade,
			&sr.FieldSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		sr.Record = &r
		if !inDateRange(r.RaceDate, from, to) {
			continue
		}
		stored = append(stored, sr)
	}
	return stored, rows.Err()
}

// inDateRange applies the optional race-date bounds. Dates are stored as
// DD/MM/YY text, so the comparison parses rather than string-compares.
func inDateRange(raceDate *string, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if raceDate == nil {
		return false
	}
	t := parse.DateValue(*raceDate)
	if t == nil {
		return false
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// Run is one entry in the scrape-run ledger.
type Run struct {
	RunID        uuid.UUID
	StartedAt    time.Time
	FinishedAt   *time.Time
	RacesScraped int
	RunnersSaved int
}

// BeginRun records the start of a scrape run and returns its ledger entry.
func (s *Store) BeginRun() (*Run, error) {
	run := &Run{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}

	query := "INSERT INTO scrape_runs (run_id, started_at) VALUES (?, ?)"
	_, err := s.db.Exec(query, run.RunID.String(), run.StartedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// FinishRun closes a ledger entry with its final counts.
func (s *Store) FinishRun(runID uuid.UUID, racesScraped, runnersSaved int) error {
	query := `
		UPDATE scrape_runs SET finished_at = ?, races_scraped = ?, runners_saved = ?
		WHERE run_id = ?
	`

	_, err := s.db.Exec(query, time.Now().Format(time.RFC3339), racesScraped, runnersSaved, runID.String())
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}
