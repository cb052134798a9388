package fieldsize

import (
	"fmt"
	"log"

	"racefeed/store"
)

// Backfill scans the persisted store for races whose rows have no field
// size and fills them in-place using the index's resolution order. It is a
// standalone batch job, not part of the per-record read path. Returns the
// number of rows updated.
func Backfill(idx *Index, s *store.Store) (int, error) {
	races, err := s.RacesMissingFieldSize()
	if err != nil {
		return 0, fmt.Errorf("failed to scan for missing field sizes: %w", err)
	}

	updated := 0
	for _, race := range races {
		size := idx.Get(race.Date, race.Course, race.RaceNo)
		if size == nil {
			log.Printf("WARN: no field size known for %s %s R%d", race.Date, race.Course, race.RaceNo)
			continue
		}
		n, err := s.SetFieldSize(race, *size)
		if err != nil {
			return updated, fmt.Errorf("failed to backfill %s %s R%d: %w", race.Date, race.Course, race.RaceNo, err)
		}
		updated += n
	}
	return updated, nil
}
