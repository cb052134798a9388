// Package fieldsize resolves the number of declared runners for a race.
// An in-memory index is populated once from a supplementary lookup file;
// per-key misses fall back to the persisted store. The index only ever
// gains keys and is never invalidated within a process.
package fieldsize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// FallbackStore is the persisted-store query the index falls back to on a
// cache miss. Implemented by store.Store.
type FallbackStore interface {
	QueryFieldSize(date, course string, raceNo int) (*int, error)
}

type raceKey struct {
	date   string
	course string
	raceNo int
}

// Index maps (date, course, race number) to field size. Construct with
// NewIndex; the data sources are injected, not global.
type Index struct {
	sizes map[raceKey]int
	store FallbackStore
}

// NewIndex builds an index backed by the given fallback store. The bulk
// file at path is loaded eagerly; a missing file leaves the index empty
// and everything resolves through the store. Malformed rows in the bulk
// file are skipped silently.
func NewIndex(path string, store FallbackStore) (*Index, error) {
	idx := &Index{
		sizes: make(map[raceKey]int),
		store: store,
	}

	if path == "" {
		return idx, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open field size file: %w", err)
	}
	defer f.Close()

	if err := idx.load(f); err != nil {
		return nil, err
	}
	return idx, nil
}

// load reads the bulk source: CSV rows of date, course, race number, field
// size. Rows that don't parse are dropped without comment.
func (idx *Index) load(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Malformed row, e.g. a stray quote. Same treatment as a row
			// whose fields don't parse: drop it and keep loading.
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read field size file: %w", err)
		}
		if len(row) < 4 {
			continue
		}

		raceNo, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}
		size, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			continue
		}

		key := raceKey{
			date:   normalizeDate(row[0]),
			course: strings.ToUpper(strings.TrimSpace(row[1])),
			raceNo: raceNo,
		}
		idx.sizes[key] = size
	}
}

// Get resolves the field size for one race, or nil when neither the bulk
// source nor the store knows it. Misses are not cached: repeated misses
// repeat the fallback query, which is acceptable for batch-oriented calls.
func (idx *Index) Get(date, course string, raceNo int) *int {
	key := raceKey{
		date:   normalizeDate(date),
		course: strings.ToUpper(strings.TrimSpace(course)),
		raceNo: raceNo,
	}
	if size, ok := idx.sizes[key]; ok {
		return &size
	}
	if idx.store == nil {
		return nil
	}

	size, err := idx.store.QueryFieldSize(date, course, raceNo)
	if err != nil {
		log.Printf("WARN: field size fallback query failed for %s %s R%d: %v", date, course, raceNo, err)
		return nil
	}
	if size != nil {
		idx.sizes[key] = *size
	}
	return size
}

// normalizeDate makes "/" and "-" separated dates compare equal.
func normalizeDate(date string) string {
	return strings.ReplaceAll(strings.TrimSpace(date), "/", "-")
}
